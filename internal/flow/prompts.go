package flow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/fpt/go-crewgen-cli/internal/catalog"
)

// classificationReply is the structured reply expected from the classifier
type classificationReply struct {
	Kind      string `json:"kind" jsonschema:"title=Request Kind,enum=crew,enum=tool,enum=code,description=crew for a multi-agent workflow; tool for a single reusable capability; code for an arbitrary script"`
	Reasoning string `json:"reasoning,omitempty" jsonschema:"title=Reasoning,description=Brief explanation of the classification"`
}

// selectionReply is the structured reply expected from the tool selector
type selectionReply struct {
	Tools          []string `json:"tools" jsonschema:"title=Selected Tools,description=Names of the selected tools; must come from the provided list"`
	NoSuitableTool bool     `json:"no_suitable_tool,omitempty" jsonschema:"title=No Suitable Tool,description=Set true when none of the provided tools fit the requirements"`
}

// agentListReply is the structured reply expected from agent definition
type agentListReply struct {
	Agents []AgentSpec `json:"agents" jsonschema:"title=Agents,description=The agent definitions for the crew"`
}

// taskListReply is the structured reply expected from task definition
type taskListReply struct {
	Tasks []TaskSpec `json:"tasks" jsonschema:"title=Tasks,description=The task definitions for the agents"`
}

// replySchemaJSON renders the JSON schema of a reply type for inclusion in a
// prompt, so the backend knows the exact shape to produce.
func replySchemaJSON(v any) string {
	reflector := &jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(v)
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

const jsonReplyInstruction = "Respond with a single JSON object matching this schema, and nothing else:\n"

func classificationPrompt(rawRequest string) (system, user string) {
	system = "You classify requests for a code generation assistant. " +
		"Decide whether the user wants a multi-agent crew, a single reusable tool, or a generic code snippet. " +
		"If the request is empty, nonsensical, or does not describe something to build, reply with an empty kind.\n\n" +
		jsonReplyInstruction + replySchemaJSON(&classificationReply{})
	user = fmt.Sprintf("Classify the following request:\n%s", rawRequest)
	return system, user
}

func requirementsPrompt(rawRequest string) (system, user string) {
	system = "You are an expert analyst skilled in breaking down complex problems into actionable requirements. " +
		"Identify the overall goal, the specific actions needed, any required data sources, and the expected output format. " +
		"Reply with a clear and concise summary of the requirements in plain text."
	user = fmt.Sprintf("Analyze the following user request:\n%s", rawRequest)
	return system, user
}

func agentsPrompt(requirementsSummary string) (system, user string) {
	system = "You are a specialist in defining AI agents. " +
		"Based on analyzed requirements, define the necessary agents. For each agent provide:\n" +
		"* Role: a short descriptive title (e.g. \"Market Research Analyst\")\n" +
		"* Goal: the agent's objective in a single clear sentence\n" +
		"* Backstory: a brief paragraph providing context and personality\n" +
		"* Tools: names of tools the agent needs, if any\n\n" +
		jsonReplyInstruction + replySchemaJSON(&agentListReply{})
	user = fmt.Sprintf("Create agent definitions for these requirements:\n%s", requirementsSummary)
	return system, user
}

func tasksPrompt(requirementsSummary string, agents []AgentSpec) (system, user string) {
	system = "You are an expert in breaking down objectives into specific, measurable tasks for AI agents. " +
		"For each task provide a clear, concise description and what successful completion looks like.\n\n" +
		jsonReplyInstruction + replySchemaJSON(&taskListReply{})

	var sb strings.Builder
	fmt.Fprintf(&sb, "Requirements:\n%s\n\nAgents:\n", requirementsSummary)
	for _, agent := range agents {
		fmt.Fprintf(&sb, "- %s: %s\n", agent.Role, agent.Goal)
	}
	sb.WriteString("\nCreate the tasks for these agents.")
	return system, sb.String()
}

func selectionPrompt(requirementsSummary string, usable []catalog.ToolRecord) (system, user string) {
	system = "You select tools for a task from a fixed list of available tools. " +
		"Only names from the provided list may be selected. " +
		"If none of the tools fit the requirements, set no_suitable_tool to true and select nothing.\n\n" +
		jsonReplyInstruction + replySchemaJSON(&selectionReply{})

	var sb strings.Builder
	sb.WriteString("Available tools:\n")
	for _, record := range usable {
		fmt.Fprintf(&sb, "- %s: %s\n", record.Name, record.Description)
	}
	fmt.Fprintf(&sb, "\nRequirements:\n%s\n\nSelect the tools needed.", requirementsSummary)
	return system, sb.String()
}

func crewCodePrompt(st *FlowState) (system, user string) {
	system = "You are an expert Python programmer. Generate a complete, runnable Python script that defines " +
		"a CrewAI crew from the given agent, task, and tool definitions. The script must define a " +
		"create_crew() function returning the Crew instance. Reply with only the Python source, no prose, no code fences."

	agentsJSON, _ := json.MarshalIndent(st.AgentDefinitions, "", "  ")
	tasksJSON, _ := json.MarshalIndent(st.TaskDefinitions, "", "  ")
	user = fmt.Sprintf("Agent definitions:\n%s\n\nTask definitions:\n%s\n\nSelected tools: %s",
		agentsJSON, tasksJSON, strings.Join(st.SelectedToolNames, ", "))
	return system, user
}

func toolCodePrompt(requirementsSummary string) (system, user string) {
	system = "You are an expert Python programmer. Create a custom CrewAI tool for the given description. " +
		"The tool must subclass BaseTool and include name, description, args_schema (if needed), and _run(). " +
		"Reply with only the Python source, no prose, no code fences."
	user = fmt.Sprintf("Create a custom tool based on this description:\n%s", requirementsSummary)
	return system, user
}

func genericCodePrompt(rawRequest string) (system, user string) {
	system = "You are an expert Python programmer skilled in generating clean, efficient, well-documented code. " +
		"Reply with only the Python source, no prose, no code fences."
	user = fmt.Sprintf("Generate Python code for the following request:\n%s", rawRequest)
	return system, user
}

func reviewPrompt(st *FlowState) (system, user string) {
	system = "You are an experienced AI project manager reviewing a generated artifact before a human decides " +
		"whether to run, save, or reject it. Provide a concise summary of the proposal: the overall goal, the " +
		"agents and their roles, the tasks, and the selected tools. Do not make the decision yourself."

	var sb strings.Builder
	fmt.Fprintf(&sb, "Request kind: %s\nUser requirements:\n%s\n", st.RequestKind, st.RequirementsSummary)
	if len(st.AgentDefinitions) > 0 {
		sb.WriteString("\nProposed agents:\n")
		for _, agent := range st.AgentDefinitions {
			fmt.Fprintf(&sb, "- %s: %s\n", agent.Role, agent.Goal)
		}
	}
	if len(st.TaskDefinitions) > 0 {
		sb.WriteString("\nProposed tasks:\n")
		for _, task := range st.TaskDefinitions {
			fmt.Fprintf(&sb, "- %s\n", task.Description)
		}
	}
	if len(st.SelectedToolNames) > 0 {
		fmt.Fprintf(&sb, "\nSelected tools: %s\n", strings.Join(st.SelectedToolNames, ", "))
	}
	fmt.Fprintf(&sb, "\nGenerated source:\n%s\n", st.GeneratedSource)
	return system, sb.String()
}
