package flow

import (
	"context"
	"encoding/json"
	"time"

	pkgErrors "github.com/pkg/errors"

	"github.com/fpt/go-crewgen-cli/internal/catalog"
	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
	pkgLogger "github.com/fpt/go-crewgen-cli/pkg/logger"
)

// Pipeline runs the ordered generation steps for one classified request.
// Crew requests step through analysis, agent definition, task definition,
// tool selection, and code generation; tool and generic-code requests take
// shorter paths. Every step either advances the state or fails the session;
// there is no partial progress past a failed step.
type Pipeline struct {
	worker   domain.LLM
	selector *Selector
	catalog  *catalog.Catalog
	snapshot func([]catalog.ToolRecord) catalog.Environment
	timeout  time.Duration
	logger   *pkgLogger.Logger
}

// NewPipeline creates a generation pipeline. The snapshot function takes a
// fresh credential-presence reading per run; pass nil for the OS environment.
func NewPipeline(worker domain.LLM, selector *Selector, cat *catalog.Catalog, snapshot func([]catalog.ToolRecord) catalog.Environment, timeout time.Duration) *Pipeline {
	if snapshot == nil {
		snapshot = catalog.EnvironmentFromOS
	}
	return &Pipeline{
		worker:   worker,
		selector: selector,
		catalog:  cat,
		snapshot: snapshot,
		timeout:  timeout,
		logger:   pkgLogger.NewComponentLogger("pipeline"),
	}
}

// Run executes the generation path for the state's request kind and returns
// the terminal pipeline state. The FlowState is mutated in place as steps
// complete.
func (p *Pipeline) Run(ctx context.Context, st *FlowState) (PipelineState, error) {
	switch st.RequestKind {
	case KindCrew:
		return p.runCrewPath(ctx, st)
	case KindTool:
		return p.runToolPath(ctx, st)
	case KindGenericCode:
		return p.runGenericCodePath(ctx, st)
	}
	return StateFailed, ErrClassificationAmbiguous
}

func (p *Pipeline) runCrewPath(ctx context.Context, st *FlowState) (PipelineState, error) {
	p.logger.InfoWithIcon("📋", "Analyzing requirements", "state", string(StateAnalyzing))
	if err := p.analyzeRequirements(ctx, st); err != nil {
		return StateFailed, err
	}

	p.logger.InfoWithIcon("🤖", "Defining agents", "state", string(StateAgentsDefined))
	if err := p.defineAgents(ctx, st); err != nil {
		return StateFailed, err
	}

	p.logger.InfoWithIcon("📝", "Defining tasks", "state", string(StateTasksDefined))
	if err := p.defineTasks(ctx, st); err != nil {
		return StateFailed, err
	}

	p.logger.InfoWithIcon("🧰", "Selecting tools", "state", string(StateToolsSelected))
	usable := catalog.Usable(p.catalog.ListAll(), p.snapshot(p.catalog.ListAll()))
	result, err := p.selector.Select(ctx, st.RequirementsSummary, usable)
	if err != nil {
		return StateFailed, err
	}

	switch result.Outcome {
	case SelectionError:
		return StateFailed, pkgErrors.Errorf("tool selection failed: %s", result.Reason)
	case SelectionCreateRequired:
		st.PendingToolCreation = true
		return StateToolCreationPending, nil
	}
	st.SelectedToolNames = result.Names

	p.logger.InfoWithIcon("⚙️", "Generating crew code")
	system, user := crewCodePrompt(st)
	source, err := p.generateSource(ctx, system, user)
	if err != nil {
		return StateFailed, err
	}
	st.GeneratedSource = source
	return StateCodeGenerated, nil
}

func (p *Pipeline) runToolPath(ctx context.Context, st *FlowState) (PipelineState, error) {
	p.logger.InfoWithIcon("📋", "Analyzing requirements", "state", string(StateAnalyzing))
	if err := p.analyzeRequirements(ctx, st); err != nil {
		return StateFailed, err
	}

	p.logger.InfoWithIcon("⚙️", "Generating custom tool code")
	system, user := toolCodePrompt(st.RequirementsSummary)
	source, err := p.generateSource(ctx, system, user)
	if err != nil {
		return StateFailed, err
	}
	st.GeneratedSource = source
	return StateToolCodeGenerated, nil
}

func (p *Pipeline) runGenericCodePath(ctx context.Context, st *FlowState) (PipelineState, error) {
	p.logger.InfoWithIcon("⚙️", "Generating code")
	system, user := genericCodePrompt(st.RawRequest)
	source, err := p.generateSource(ctx, system, user)
	if err != nil {
		return StateFailed, err
	}
	st.GeneratedSource = source
	return StateGenericCodeGenerated, nil
}

func (p *Pipeline) analyzeRequirements(ctx context.Context, st *FlowState) error {
	system, user := requirementsPrompt(st.RawRequest)
	summary, err := chatText(ctx, p.worker, p.timeout, system, user)
	if err != nil {
		return pkgErrors.Wrap(err, "requirements analysis failed")
	}
	st.RequirementsSummary = summary
	return nil
}

func (p *Pipeline) defineAgents(ctx context.Context, st *FlowState) error {
	system, user := agentsPrompt(st.RequirementsSummary)
	text, err := chatText(ctx, p.worker, p.timeout, system, user)
	if err != nil {
		return pkgErrors.Wrap(err, "agent definition failed")
	}

	var reply agentListReply
	if err := json.Unmarshal([]byte(extractJSON(text)), &reply); err != nil {
		return pkgErrors.Wrap(err, "agent definition reply is not valid JSON")
	}
	if len(reply.Agents) == 0 {
		return pkgErrors.Wrap(ErrGenerationIncomplete, "no agents defined")
	}
	st.AgentDefinitions = reply.Agents
	return nil
}

func (p *Pipeline) defineTasks(ctx context.Context, st *FlowState) error {
	system, user := tasksPrompt(st.RequirementsSummary, st.AgentDefinitions)
	text, err := chatText(ctx, p.worker, p.timeout, system, user)
	if err != nil {
		return pkgErrors.Wrap(err, "task definition failed")
	}

	var reply taskListReply
	if err := json.Unmarshal([]byte(extractJSON(text)), &reply); err != nil {
		return pkgErrors.Wrap(err, "task definition reply is not valid JSON")
	}
	if len(reply.Tasks) == 0 {
		return pkgErrors.Wrap(ErrGenerationIncomplete, "no tasks defined")
	}
	st.TaskDefinitions = reply.Tasks
	return nil
}

func (p *Pipeline) generateSource(ctx context.Context, system, user string) (string, error) {
	text, err := chatText(ctx, p.worker, p.timeout, system, user)
	if err != nil {
		return "", pkgErrors.Wrap(err, "code generation failed")
	}
	source := extractSource(text)
	if source == "" {
		return "", pkgErrors.Wrap(ErrGenerationIncomplete, "empty generated source")
	}
	return source, nil
}
