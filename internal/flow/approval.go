package flow

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	pkgLogger "github.com/fpt/go-crewgen-cli/pkg/logger"
)

// ApprovalGate is the mandatory human checkpoint between generation and
// anything that runs or persists. Only three answers are valid: "yes" runs
// the artifact, "save" persists it without running, "no" rejects it. Any
// other input re-prompts without consuming the proposal.
type ApprovalGate struct {
	scanner *bufio.Scanner
	out     io.Writer
	logger  *pkgLogger.Logger
}

// NewApprovalGate creates an approval gate reading decisions from in and
// writing the proposal and prompts to out. One scanner for the lifetime of
// the gate, so a buffered line is never lost between prompts.
func NewApprovalGate(in io.Reader, out io.Writer) *ApprovalGate {
	return &ApprovalGate{
		scanner: bufio.NewScanner(in),
		out:     out,
		logger:  pkgLogger.NewComponentLogger("approval"),
	}
}

// RequestApproval shows the review summary and the generated source, then
// loops until a valid decision arrives. On "no" it collects one line of
// feedback into the state. EOF before a valid decision counts as no
// decision at all, never as an implicit approval.
func (g *ApprovalGate) RequestApproval(st *FlowState, reviewSummary string) (Decision, error) {
	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, "===== Review =====")
	fmt.Fprintln(g.out, reviewSummary)
	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, "===== Generated code =====")
	fmt.Fprintln(g.out, st.GeneratedSource)
	fmt.Fprintln(g.out, "==========================")

	for {
		fmt.Fprint(g.out, "Approve? (yes = run, save = save without running, no = reject): ")
		if !g.scanner.Scan() {
			if err := g.scanner.Err(); err != nil {
				return DecisionPending, err
			}
			return DecisionPending, ErrApprovalInputClosed
		}

		switch strings.ToLower(strings.TrimSpace(g.scanner.Text())) {
		case "yes", "y":
			st.ApprovalDecision = DecisionApproveRun
			return DecisionApproveRun, nil
		case "save", "s":
			st.ApprovalDecision = DecisionApproveSave
			return DecisionApproveSave, nil
		case "no", "n":
			st.ApprovalDecision = DecisionReject
			fmt.Fprint(g.out, "What would you like changed? ")
			if g.scanner.Scan() {
				st.Feedback = strings.TrimSpace(g.scanner.Text())
			}
			return DecisionReject, nil
		default:
			g.logger.Debug("Invalid approval input, re-prompting", "input", g.scanner.Text())
			fmt.Fprintln(g.out, "Please answer yes, save, or no.")
		}
	}
}

// ConfirmRun asks a bare yes/no question, used as the second confirmation
// before running generated generic code. Only an explicit yes proceeds.
func (g *ApprovalGate) ConfirmRun(prompt string) (bool, error) {
	for {
		fmt.Fprintf(g.out, "%s (yes/no): ", prompt)
		if !g.scanner.Scan() {
			if err := g.scanner.Err(); err != nil {
				return false, err
			}
			return false, ErrApprovalInputClosed
		}

		switch strings.ToLower(strings.TrimSpace(g.scanner.Text())) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		default:
			fmt.Fprintln(g.out, "Please answer yes or no.")
		}
	}
}
