// Package flow implements the generation-and-approval control flow: request
// classification, the ordered generation pipeline, tool selection against the
// credentialed catalog, and the human approval and execution gates.
package flow

import "errors"

// RequestKind classifies what the user asked to generate
type RequestKind string

const (
	KindCrew         RequestKind = "crew" // multi-agent workflow
	KindTool         RequestKind = "tool" // single reusable capability
	KindGenericCode  RequestKind = "code" // arbitrary script, no agents
	KindUndetermined RequestKind = "undetermined"
)

// Decision is the outcome of the human approval gate
type Decision string

const (
	DecisionPending     Decision = "pending"
	DecisionApproveRun  Decision = "approve_run"
	DecisionApproveSave Decision = "approve_save"
	DecisionReject      Decision = "reject"
)

// PipelineState names the states of the generation state machine
type PipelineState string

const (
	StateAnalyzing            PipelineState = "ANALYZING"
	StateAgentsDefined        PipelineState = "AGENTS_DEFINED"
	StateTasksDefined         PipelineState = "TASKS_DEFINED"
	StateToolsSelected        PipelineState = "TOOLS_SELECTED"
	StateCodeGenerated        PipelineState = "CODE_GENERATED"
	StateToolCodeGenerated    PipelineState = "TOOL_CODE_GENERATED"
	StateGenericCodeGenerated PipelineState = "GENERIC_CODE_GENERATED"
	StateToolCreationPending  PipelineState = "TOOL_CREATION_PENDING"
	StateFailed               PipelineState = "FAILED"
)

// CodeBearing reports whether a terminal state carries a generated artifact
// that must pass through the approval gate.
func (s PipelineState) CodeBearing() bool {
	switch s {
	case StateCodeGenerated, StateToolCodeGenerated, StateGenericCodeGenerated:
		return true
	}
	return false
}

// AgentSpec describes one generated agent
type AgentSpec struct {
	Role      string   `json:"role" jsonschema:"title=Role,description=Short descriptive title for the agent"`
	Goal      string   `json:"goal" jsonschema:"title=Goal,description=The agent's objective in a single clear sentence"`
	Backstory string   `json:"backstory" jsonschema:"title=Backstory,description=Brief paragraph providing context and personality"`
	Tools     []string `json:"tools,omitempty" jsonschema:"title=Tools,description=Names of tools this agent needs"`
}

// TaskSpec describes one generated task
type TaskSpec struct {
	Description    string `json:"description" jsonschema:"title=Description,description=Clear and specific description of the task"`
	ExpectedOutput string `json:"expected_output" jsonschema:"title=Expected Output,description=What successful completion of the task looks like"`
}

// FlowState is the single mutable record threaded through one session.
// Fields are only ever set, never reverted; the approval decision is set
// once and is terminal. One instance per session, owned by the orchestrator.
type FlowState struct {
	RawRequest          string
	RequirementsSummary string
	RequestKind         RequestKind
	AgentDefinitions    []AgentSpec
	TaskDefinitions     []TaskSpec
	SelectedToolNames   []string
	PendingToolCreation bool
	GeneratedSource     string
	ApprovalDecision    Decision
	Feedback            string
}

// NewFlowState creates the session state for a raw request
func NewFlowState(rawRequest string) *FlowState {
	return &FlowState{
		RawRequest:       rawRequest,
		RequestKind:      KindUndetermined,
		ApprovalDecision: DecisionPending,
	}
}

// SelectionOutcome tags the variant of a tool selection result
type SelectionOutcome int

const (
	// SelectionSelected means one or more usable tools were chosen
	SelectionSelected SelectionOutcome = iota
	// SelectionCreateRequired means no usable tool fits; a custom tool is needed
	SelectionCreateRequired
	// SelectionError means the selection reply was malformed or out of catalog
	SelectionError
)

// SelectionResult is the tagged output of the tool selector. Raw backend
// reply text never propagates past the selector boundary.
type SelectionResult struct {
	Outcome SelectionOutcome
	Names   []string // set for SelectionSelected
	Reason  string   // set for SelectionError
}

// Selected builds a successful selection result
func Selected(names []string) SelectionResult {
	return SelectionResult{Outcome: SelectionSelected, Names: names}
}

// CreateRequired builds the no-suitable-tool result
func CreateRequired() SelectionResult {
	return SelectionResult{Outcome: SelectionCreateRequired}
}

// SelectionFailed builds an error result with a diagnostic reason
func SelectionFailed(reason string) SelectionResult {
	return SelectionResult{Outcome: SelectionError, Reason: reason}
}

// Flow error taxonomy. Ambiguous classification and selection errors are
// terminal for the session and never silently retried against the backend.
var (
	ErrClassificationAmbiguous = errors.New("request classification is ambiguous")
	ErrGenerationIncomplete    = errors.New("generation step produced no usable output")
	ErrApprovalInputClosed     = errors.New("approval input closed before a valid decision")
)
