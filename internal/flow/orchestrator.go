package flow

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	pkgErrors "github.com/pkg/errors"

	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
	pkgLogger "github.com/fpt/go-crewgen-cli/pkg/logger"
)

// Orchestrator drives one full session: classify, generate, review, gate,
// dispatch. The supervisor model only writes the review summary shown to
// the human; it never makes the approval decision, and losing it degrades
// the summary, not the session.
type Orchestrator struct {
	classifier *Classifier
	pipeline   *Pipeline
	approval   *ApprovalGate
	execution  *ExecutionGate
	supervisor domain.LLM // optional
	timeout    time.Duration
	out        io.Writer
	logger     *pkgLogger.Logger
}

// NewOrchestrator wires the session components together. supervisor may be
// nil, in which case the review summary is assembled mechanically.
func NewOrchestrator(classifier *Classifier, pipeline *Pipeline, approval *ApprovalGate, execution *ExecutionGate, supervisor domain.LLM, timeout time.Duration, out io.Writer) *Orchestrator {
	return &Orchestrator{
		classifier: classifier,
		pipeline:   pipeline,
		approval:   approval,
		execution:  execution,
		supervisor: supervisor,
		timeout:    timeout,
		out:        out,
		logger:     pkgLogger.NewComponentLogger("orchestrator"),
	}
}

// RunSession processes one raw request end to end. A session ends in one of
// four ways: dispatched (run or saved), rejected, pending tool creation, or
// failed. Only a code-bearing pipeline state reaches the approval gate.
func (o *Orchestrator) RunSession(ctx context.Context, rawRequest string) error {
	rawRequest = strings.TrimSpace(rawRequest)
	if rawRequest == "" {
		return ErrClassificationAmbiguous
	}

	st := NewFlowState(rawRequest)

	kind, err := o.classifier.Classify(ctx, rawRequest)
	if err != nil {
		return err
	}
	if kind == KindUndetermined {
		fmt.Fprintln(o.out, "I couldn't tell what you want built. Describe a crew, a tool, or a piece of code.")
		return ErrClassificationAmbiguous
	}
	st.RequestKind = kind
	o.logger.InfoWithIcon("🚦", "Session started", "kind", string(kind))

	finalState, err := o.pipeline.Run(ctx, st)
	if err != nil {
		return pkgErrors.Wrap(err, "generation pipeline failed")
	}

	switch finalState {
	case StateToolCreationPending:
		fmt.Fprintln(o.out, "None of the available tools fit. Describe the tool you need and I will generate it.")
		return nil
	case StateFailed:
		return ErrGenerationIncomplete
	}

	if !finalState.CodeBearing() {
		return pkgErrors.Errorf("pipeline ended in unexpected state %s", finalState)
	}
	if st.GeneratedSource == "" {
		return pkgErrors.Wrap(ErrGenerationIncomplete, "code-bearing state with no source")
	}

	summary := o.reviewSummary(ctx, st)

	decision, err := o.approval.RequestApproval(st, summary)
	if err != nil {
		return err
	}
	o.logger.InfoWithIcon("🗳️", "Decision recorded", "decision", string(decision))

	return o.execution.Dispatch(ctx, st)
}

// reviewSummary asks the supervisor for a human-oriented summary of the
// proposal. Any supervisor failure falls back to a mechanical summary; the
// approval gate must always have something to show.
func (o *Orchestrator) reviewSummary(ctx context.Context, st *FlowState) string {
	if o.supervisor != nil {
		system, user := reviewPrompt(st)
		summary, err := chatText(ctx, o.supervisor, o.timeout, system, user)
		if err == nil {
			return summary
		}
		o.logger.WarnWithIcon("⚠️", "Supervisor review failed, using mechanical summary", "error", err)
	}
	return mechanicalSummary(st)
}

func mechanicalSummary(st *FlowState) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Request kind: %s\n", st.RequestKind)
	if st.RequirementsSummary != "" {
		fmt.Fprintf(&sb, "Requirements: %s\n", st.RequirementsSummary)
	}
	for _, agent := range st.AgentDefinitions {
		fmt.Fprintf(&sb, "Agent: %s (%s)\n", agent.Role, agent.Goal)
	}
	for _, task := range st.TaskDefinitions {
		fmt.Fprintf(&sb, "Task: %s\n", task.Description)
	}
	if len(st.SelectedToolNames) > 0 {
		fmt.Fprintf(&sb, "Tools: %s\n", strings.Join(st.SelectedToolNames, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}
