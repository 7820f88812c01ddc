package flow

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	pkgErrors "github.com/pkg/errors"

	pkgLogger "github.com/fpt/go-crewgen-cli/pkg/logger"
)

// Artifact filenames, fixed per request kind so a session's output is
// deterministic and a re-run overwrites the previous artifact.
const (
	crewArtifactName    = "generated_crew.py"
	toolArtifactName    = "generated_tool.py"
	genericArtifactName = "generated_code.py"
)

// commandRunner runs an external command and returns its combined output.
// Injectable so tests never spawn a real interpreter.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ExecutionGate dispatches an approved artifact: save to disk, run through
// the interpreter, or discard. Running generated generic code additionally
// requires a second explicit confirmation; declining it downgrades the
// decision to a save. Execution failures are reported to the user, not
// propagated as session errors.
type ExecutionGate struct {
	out       io.Writer
	confirm   *ApprovalGate
	outputDir string
	runner    commandRunner
	logger    *pkgLogger.Logger
}

// NewExecutionGate creates an execution gate writing artifacts under
// outputDir and asking risk confirmations through the approval gate.
func NewExecutionGate(out io.Writer, confirm *ApprovalGate, outputDir string) *ExecutionGate {
	return &ExecutionGate{
		out:       out,
		confirm:   confirm,
		outputDir: outputDir,
		runner:    execRunner{},
		logger:    pkgLogger.NewComponentLogger("execution"),
	}
}

// Dispatch acts on the state's approval decision. Every path that touches
// the interpreter or the filesystem goes through here; reject only logs the
// feedback for the user to act on in a follow-up request.
func (g *ExecutionGate) Dispatch(ctx context.Context, st *FlowState) error {
	switch st.ApprovalDecision {
	case DecisionReject:
		g.logger.InfoWithIcon("🚫", "Proposal rejected", "feedback", st.Feedback)
		fmt.Fprintln(g.out, "Discarded. Refine your request and try again.")
		return nil
	case DecisionApproveSave:
		return g.save(st)
	case DecisionApproveRun:
		return g.run(ctx, st)
	}
	return pkgErrors.Errorf("no decision to dispatch: %s", st.ApprovalDecision)
}

func (g *ExecutionGate) save(st *FlowState) error {
	path, err := writeArtifact(g.outputDir, artifactName(st.RequestKind), st.GeneratedSource)
	if err != nil {
		return pkgErrors.Wrap(err, "failed to save artifact")
	}
	g.logger.InfoWithIcon("💾", "Artifact saved", "path", path)
	fmt.Fprintf(g.out, "Saved to %s\n", path)
	return nil
}

func (g *ExecutionGate) run(ctx context.Context, st *FlowState) error {
	switch st.RequestKind {
	case KindTool:
		// A tool is a building block, not a program; running it standalone
		// makes no sense, so an approved run saves it for later use.
		fmt.Fprintln(g.out, "Custom tools are saved for use in a crew, not run standalone.")
		return g.save(st)
	case KindGenericCode:
		fmt.Fprintln(g.out, "WARNING: this code was machine-generated and has not been reviewed.")
		fmt.Fprintln(g.out, "It will run with your full user permissions.")
		confirmed, err := g.confirm.ConfirmRun("Really execute it now?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(g.out, "Not running. Saving instead.")
			return g.save(st)
		}
	case KindCrew:
		fmt.Fprintln(g.out, "Note: running the crew will call external APIs and may incur costs.")
	}

	path, err := writeArtifact(g.outputDir, artifactName(st.RequestKind), st.GeneratedSource)
	if err != nil {
		return pkgErrors.Wrap(err, "failed to write artifact before run")
	}

	g.logger.InfoWithIcon("▶️", "Running artifact", "path", path)
	output, runErr := g.runner.Run(ctx, "python3", path)
	fmt.Fprintln(g.out, "===== Output =====")
	fmt.Fprintln(g.out, string(output))
	if runErr != nil {
		// A failing script is a result to show, not a session failure
		g.logger.WarnWithIcon("⚠️", "Artifact exited with error", "error", runErr)
		fmt.Fprintf(g.out, "Execution failed: %v\n", runErr)
	}
	return nil
}

func artifactName(kind RequestKind) string {
	switch kind {
	case KindTool:
		return toolArtifactName
	case KindGenericCode:
		return genericArtifactName
	}
	return crewArtifactName
}

func writeArtifact(dir, name, source string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source+"\n"), 0644); err != nil {
		return "", err
	}
	return path, nil
}
