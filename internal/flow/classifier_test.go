package flow

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestClassifierKinds(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  RequestKind
	}{
		{"crew request", `{"kind": "crew", "reasoning": "multiple agents needed"}`, KindCrew},
		{"tool request", `{"kind": "tool"}`, KindTool},
		{"generic code request", `{"kind": "code"}`, KindGenericCode},
		{"fenced reply", "```json\n{\"kind\": \"crew\"}\n```", KindCrew},
		{"unknown label", `{"kind": "poem"}`, KindUndetermined},
		{"empty kind", `{"kind": ""}`, KindUndetermined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := NewClassifier(&scriptedLLM{replies: []string{tt.reply}}, time.Second)
			kind, err := classifier.Classify(context.Background(), "do something")
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if kind != tt.want {
				t.Errorf("Expected kind %s, got %s", tt.want, kind)
			}
		})
	}
}

func TestClassifierMalformedReply(t *testing.T) {
	classifier := NewClassifier(&scriptedLLM{replies: []string{"this is not JSON"}}, time.Second)
	kind, err := classifier.Classify(context.Background(), "do something")
	if err == nil {
		t.Fatal("Expected an error for a non-JSON reply")
	}
	if kind != KindUndetermined {
		t.Errorf("Expected KindUndetermined, got %s", kind)
	}
}

func TestClassifierBackendFailure(t *testing.T) {
	backendErr := errors.New("connection refused")
	classifier := NewClassifier(&scriptedLLM{err: backendErr}, time.Second)
	kind, err := classifier.Classify(context.Background(), "do something")
	if err == nil {
		t.Fatal("Expected the backend error to propagate")
	}
	if !errors.Is(err, backendErr) {
		t.Errorf("Expected wrapped backend error, got %v", err)
	}
	if kind != KindUndetermined {
		t.Errorf("Expected KindUndetermined, got %s", kind)
	}
}

func TestClassifierNoRetry(t *testing.T) {
	llm := &scriptedLLM{replies: []string{`{"kind": "nonsense"}`}}
	classifier := NewClassifier(llm, time.Second)
	if _, err := classifier.Classify(context.Background(), "gibberish"); err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if llm.calls != 1 {
		t.Errorf("Expected exactly 1 backend call, got %d", llm.calls)
	}
}
