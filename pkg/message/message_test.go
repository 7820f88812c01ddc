package message

import (
	"strings"
	"testing"
)

func TestMessageConstructors(t *testing.T) {
	testCases := []struct {
		msg      Message
		expected MessageType
	}{
		{NewSystemMessage("instructions"), MessageTypeSystem},
		{NewUserMessage("question"), MessageTypeUser},
		{NewAssistantMessage("answer"), MessageTypeAssistant},
	}

	for _, tc := range testCases {
		if tc.msg.Type() != tc.expected {
			t.Errorf("Expected type %s, got %s", tc.expected, tc.msg.Type())
		}
		if tc.msg.Content() == "" {
			t.Error("Expected content to be preserved")
		}
	}
}

func TestTruncatedString(t *testing.T) {
	short := NewUserMessage("a short line")
	if got := TruncatedString(short); got != "a short line" {
		t.Errorf("Short message must pass through, got %q", got)
	}

	multiline := NewUserMessage("line one\nline two")
	if got := TruncatedString(multiline); strings.Contains(got, "\n") {
		t.Errorf("Newlines must be flattened, got %q", got)
	}

	long := NewUserMessage(strings.Repeat("x", 300))
	got := TruncatedString(long)
	if len(got) != 123 || !strings.HasSuffix(got, "...") {
		t.Errorf("Long message must be truncated with an ellipsis, got %d chars", len(got))
	}
}
