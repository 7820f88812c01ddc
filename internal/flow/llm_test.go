package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
	"github.com/fpt/go-crewgen-cli/pkg/message"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare json", `{"kind": "crew"}`, `{"kind": "crew"}`},
		{"fenced with language", "```json\n{\"kind\": \"crew\"}\n```", `{"kind": "crew"}`},
		{"fenced without language", "```\n{\"kind\": \"crew\"}\n```", `{"kind": "crew"}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
		{"python fence", "```python\nprint('hi')\n```", "print('hi')"},
		{"not json passes through", "hello", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestChatTextEmptyReply(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"   "}}
	_, err := chatText(context.Background(), llm, time.Second, "system", "user")
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("Expected ErrEmptyResponse, got %v", err)
	}
}

func TestChatTextTimeout(t *testing.T) {
	blocked := blockingLLM{}
	_, err := chatText(context.Background(), blocked, 10*time.Millisecond, "system", "user")
	if err == nil {
		t.Fatal("Expected a timeout error")
	}
}

// blockingLLM waits for context cancellation, simulating a hung backend
type blockingLLM struct{}

func (blockingLLM) Chat(ctx context.Context, _ []message.Message) (message.Message, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
