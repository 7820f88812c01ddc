package flow

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestApprovalGateDecisions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Decision
	}{
		{"yes runs", "yes\n", DecisionApproveRun},
		{"short yes", "y\n", DecisionApproveRun},
		{"uppercase yes", "YES\n", DecisionApproveRun},
		{"whitespace tolerated", "  yes  \n", DecisionApproveRun},
		{"save persists", "save\n", DecisionApproveSave},
		{"short save", "s\n", DecisionApproveSave},
		{"no rejects", "no\nmake it shorter\n", DecisionReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			gate := NewApprovalGate(strings.NewReader(tt.input), &out)
			st := NewFlowState("request")
			st.GeneratedSource = "print('hi')"

			decision, err := gate.RequestApproval(st, "summary")
			if err != nil {
				t.Fatalf("RequestApproval failed: %v", err)
			}
			if decision != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, decision)
			}
			if st.ApprovalDecision != tt.want {
				t.Errorf("Decision not recorded in state: %s", st.ApprovalDecision)
			}
		})
	}
}

func TestApprovalGateRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	gate := NewApprovalGate(strings.NewReader("maybe\nsure\nyes\n"), &out)
	st := NewFlowState("request")
	st.GeneratedSource = "print('hi')"

	decision, err := gate.RequestApproval(st, "summary")
	if err != nil {
		t.Fatalf("RequestApproval failed: %v", err)
	}
	if decision != DecisionApproveRun {
		t.Errorf("Expected DecisionApproveRun after re-prompts, got %s", decision)
	}
	if got := strings.Count(out.String(), "Approve?"); got != 3 {
		t.Errorf("Expected 3 prompts, got %d", got)
	}
}

func TestApprovalGateCollectsFeedbackOnReject(t *testing.T) {
	var out bytes.Buffer
	gate := NewApprovalGate(strings.NewReader("no\nuse fewer agents\n"), &out)
	st := NewFlowState("request")
	st.GeneratedSource = "print('hi')"

	decision, err := gate.RequestApproval(st, "summary")
	if err != nil {
		t.Fatalf("RequestApproval failed: %v", err)
	}
	if decision != DecisionReject {
		t.Errorf("Expected DecisionReject, got %s", decision)
	}
	if st.Feedback != "use fewer agents" {
		t.Errorf("Expected feedback recorded, got %q", st.Feedback)
	}
}

func TestApprovalGateEOFIsNotApproval(t *testing.T) {
	var out bytes.Buffer
	gate := NewApprovalGate(strings.NewReader("maybe\n"), &out)
	st := NewFlowState("request")
	st.GeneratedSource = "print('hi')"

	decision, err := gate.RequestApproval(st, "summary")
	if !errors.Is(err, ErrApprovalInputClosed) {
		t.Fatalf("Expected ErrApprovalInputClosed, got %v", err)
	}
	if decision != DecisionPending {
		t.Errorf("Expected DecisionPending, got %s", decision)
	}
	if st.ApprovalDecision != DecisionPending {
		t.Errorf("State must stay pending on EOF, got %s", st.ApprovalDecision)
	}
}

func TestApprovalGateShowsSource(t *testing.T) {
	var out bytes.Buffer
	gate := NewApprovalGate(strings.NewReader("yes\n"), &out)
	st := NewFlowState("request")
	st.GeneratedSource = "print('unique-marker')"

	if _, err := gate.RequestApproval(st, "the summary text"); err != nil {
		t.Fatalf("RequestApproval failed: %v", err)
	}
	shown := out.String()
	if !strings.Contains(shown, "print('unique-marker')") {
		t.Error("Generated source must be shown before the decision")
	}
	if !strings.Contains(shown, "the summary text") {
		t.Error("Review summary must be shown before the decision")
	}
}

func TestConfirmRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes confirms", "yes\n", true},
		{"no declines", "no\n", false},
		{"reprompt until valid", "dunno\nn\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			gate := NewApprovalGate(strings.NewReader(tt.input), &out)
			confirmed, err := gate.ConfirmRun("Really?")
			if err != nil {
				t.Fatalf("ConfirmRun failed: %v", err)
			}
			if confirmed != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, confirmed)
			}
		})
	}
}

func TestConfirmRunEOF(t *testing.T) {
	var out bytes.Buffer
	gate := NewApprovalGate(strings.NewReader(""), &out)
	confirmed, err := gate.ConfirmRun("Really?")
	if !errors.Is(err, ErrApprovalInputClosed) {
		t.Fatalf("Expected ErrApprovalInputClosed, got %v", err)
	}
	if confirmed {
		t.Error("EOF must never confirm")
	}
}
