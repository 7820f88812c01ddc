package domain

import (
	"context"
	"errors"

	"github.com/fpt/go-crewgen-cli/pkg/message"
)

var ErrEmptyResponse = errors.New("empty response from reasoning backend")

// LLM represents the base language model interface for basic chat functionality.
// The caller never trusts the output shape; replies are validated at the
// boundary by whoever parses them.
type LLM interface {
	// Chat sends a conversation to the LLM and returns the reply
	Chat(ctx context.Context, messages []message.Message) (message.Message, error)
}
