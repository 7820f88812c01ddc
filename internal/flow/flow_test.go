package flow

import (
	"context"
	"fmt"

	"github.com/fpt/go-crewgen-cli/pkg/message"
)

// scriptedLLM returns canned replies in order. Used in place of a real
// backend so tests are deterministic and offline.
type scriptedLLM struct {
	replies []string
	calls   int
	err     error
}

func (s *scriptedLLM) Chat(ctx context.Context, messages []message.Message) (message.Message, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.calls >= len(s.replies) {
		return nil, fmt.Errorf("scripted backend exhausted after %d calls", s.calls)
	}
	reply := s.replies[s.calls]
	s.calls++
	return message.NewAssistantMessage(reply), nil
}

// recordingRunner captures the command an execution gate would run
type recordingRunner struct {
	name   string
	args   []string
	calls  int
	output []byte
	err    error
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.calls++
	r.name = name
	r.args = args
	return r.output, r.err
}
