package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/joho/godotenv"
	"github.com/manifoldco/promptui"

	"github.com/fpt/go-crewgen-cli/internal/catalog"
	"github.com/fpt/go-crewgen-cli/internal/config"
	"github.com/fpt/go-crewgen-cli/internal/flow"
	"github.com/fpt/go-crewgen-cli/internal/llms"
	"github.com/fpt/go-crewgen-cli/internal/tool"
	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
	pkgLogger "github.com/fpt/go-crewgen-cli/pkg/logger"
)

// catalogPathsFlag implements flag.Value for handling multiple catalog paths
type catalogPathsFlag []string

func (c *catalogPathsFlag) String() string {
	return strings.Join(*c, ",")
}

func (c *catalogPathsFlag) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// resolveStringFlag returns the non-empty value, preferring short flag over long flag
func resolveStringFlag(shortVal, longVal string) string {
	if shortVal != "" {
		return shortVal
	}
	return longVal
}

func printUsage() {
	fmt.Println("crewgen - generate CrewAI crews, custom tools, and scripts with human approval")
	fmt.Println()
	fmt.Println("Request kinds (detected automatically):")
	fmt.Println("  crew                    Multi-agent workflow: agents, tasks, tools, crew script")
	fmt.Println("  tool                    Single reusable CrewAI tool class")
	fmt.Println("  code                    Generic Python script, no agents involved")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  crewgen                                        # Interactive mode")
	fmt.Println("  crewgen \"Research AI trends and write a report\" # One-shot mode")
	fmt.Println("  crewgen -w \"openai[gpt-4o-mini]\" \"...\"          # Pick the worker model")
	fmt.Println("  crewgen --catalog ./extra-tools.yaml           # Add tools to the catalog")
	fmt.Println("  crewgen --list-tools                           # Show the tool catalog and exit")
	fmt.Println("  crewgen -v \"...\"                               # Enable verbose debug logging")
	fmt.Println()
}

func main() {
	ctx := context.Background()

	var worker = flag.String("w", "", "Worker model label, e.g. \"openai[gpt-4o-mini]\"")
	var workerLong = flag.String("worker", "", "Worker model label, e.g. \"openai[gpt-4o-mini]\"")
	var supervisor = flag.String("u", "", "Supervisor model label for review summaries")
	var supervisorLong = flag.String("supervisor", "", "Supervisor model label for review summaries")
	var outputDir = flag.String("o", "", "Directory for saved artifacts")
	var outputDirLong = flag.String("output", "", "Directory for saved artifacts")
	var settingsPath = flag.String("settings", "", "Path to settings file")
	var listTools = flag.Bool("list-tools", false, "Print the tool catalog with credential status and exit")
	var verbose = flag.Bool("v", false, "Enable verbose logging (debug level)")
	var verboseLong = flag.Bool("verbose", false, "Enable verbose logging (debug level)")
	var help = flag.Bool("h", false, "Show this help message")
	var helpLong = flag.Bool("help", false, "Show this help message")

	var catalogPaths catalogPathsFlag
	flag.Var(&catalogPaths, "catalog", "Additional tool catalog YAML file or directory (can be used multiple times)")

	flag.Usage = func() {
		printUsage()
		fmt.Println("Flags:")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *help || *helpLong {
		flag.Usage()
		return
	}

	// Credentials come from the environment; a local .env tops it up
	_ = godotenv.Load()

	resolvedWorker := resolveStringFlag(*worker, *workerLong)
	resolvedSupervisor := resolveStringFlag(*supervisor, *supervisorLong)
	resolvedOutputDir := resolveStringFlag(*outputDir, *outputDirLong)
	resolvedVerbose := *verbose || *verboseLong

	args := flag.Args()

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		fmt.Printf("⚠️  Warning: failed to load settings: %v\n", err)
		settings = config.GetDefaultSettings()
	}

	logLevel := settings.Flow.LogLevel
	if resolvedVerbose {
		logLevel = "debug"
	}
	pkgLogger.SetGlobalLogLevel(pkgLogger.LogLevel(logLevel))
	logger := pkgLogger.NewLogger(pkgLogger.LogLevel(logLevel))

	if resolvedOutputDir != "" {
		settings.Flow.OutputDir = resolvedOutputDir
	}
	settings.Flow.CatalogPaths = append(settings.Flow.CatalogPaths, catalogPaths...)

	cat, err := buildCatalog(settings.Flow.CatalogPaths)
	if err != nil {
		logger.ErrorWithIcon("❌", "Failed to build tool catalog", "error", err)
		os.Exit(1)
	}

	if *listTools {
		printToolCatalog(cat)
		return
	}

	isInteractive := len(args) == 0

	workerOption, err := chooseModel("Worker model", resolvedWorker, settings.Worker, isInteractive)
	if err != nil {
		logger.ErrorWithIcon("❌", "Worker model selection failed", "error", err)
		os.Exit(1)
	}
	supervisorOption, err := chooseModel("Supervisor model", resolvedSupervisor, settings.Supervisor, isInteractive)
	if err != nil {
		logger.ErrorWithIcon("❌", "Supervisor model selection failed", "error", err)
		os.Exit(1)
	}

	settings.Worker.Provider = workerOption.Provider
	settings.Worker.Model = workerOption.Model
	settings.Supervisor.Provider = supervisorOption.Provider
	settings.Supervisor.Model = supervisorOption.Model

	if err := config.ValidateSettings(settings); err != nil {
		logger.ErrorWithIcon("❌", "Settings validation failed", "error", err)
		os.Exit(1)
	}

	workerClient, err := llms.NewClient(workerOption, settings.Worker.MaxTokens)
	if err != nil {
		logger.ErrorWithIcon("❌", "Failed to create worker client", "error", err)
		os.Exit(1)
	}

	// The supervisor is optional: a failed client just disables LLM review
	var supervisorClient domain.LLM
	supervisorClient, err = llms.NewClient(supervisorOption, settings.Supervisor.MaxTokens)
	if err != nil {
		logger.WarnWithIcon("⚠️", "Failed to create supervisor client, review summaries will be mechanical", "error", err)
		supervisorClient = nil
	}

	fmt.Printf("🧠 Worker: %s  Supervisor: %s\n", workerOption.Label, supervisorOption.Label)

	orchestrator := buildOrchestrator(workerClient, supervisorClient, cat, settings)

	if len(args) > 0 {
		userInput := strings.Join(args, " ")
		executeRequest(ctx, orchestrator, userInput)
		return
	}

	startInteractiveMode(ctx, orchestrator, cat)
}

// buildCatalog assembles the built-in tool catalog plus any extra YAML catalogs
func buildCatalog(paths []string) (*catalog.Catalog, error) {
	cat, err := tool.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	if len(paths) > 0 {
		if err := catalog.LoadInto(cat, paths...); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func buildOrchestrator(worker, supervisor domain.LLM, cat *catalog.Catalog, settings *config.Settings) *flow.Orchestrator {
	timeout := time.Duration(settings.Flow.RequestTimeoutSeconds) * time.Second

	classifier := flow.NewClassifier(worker, timeout)
	selector := flow.NewSelector(worker, timeout)
	pipeline := flow.NewPipeline(worker, selector, cat, nil, timeout)
	approval := flow.NewApprovalGate(os.Stdin, os.Stdout)
	execution := flow.NewExecutionGate(os.Stdout, approval, settings.Flow.OutputDir)

	return flow.NewOrchestrator(classifier, pipeline, approval, execution, supervisor, timeout, os.Stdout)
}

// chooseModel resolves a model option from (in order) an explicit label, the
// settings file, and an interactive menu. One-shot mode never prompts.
func chooseModel(role, label string, fromSettings config.BackendSettings, interactive bool) (llms.ModelOption, error) {
	if label != "" {
		option, ok := llms.Find(label)
		if !ok {
			return llms.ModelOption{}, fmt.Errorf("unknown model label %q (see the menu in interactive mode for choices)", label)
		}
		return option, nil
	}

	if !interactive {
		return llms.ModelOption{
			Label:    fmt.Sprintf("%s[%s]", fromSettings.Provider, fromSettings.Model),
			Provider: fromSettings.Provider,
			Model:    fromSettings.Model,
		}, nil
	}

	options := llms.Options()
	items := make([]string, len(options))
	for i, option := range options {
		status := ""
		if option.CredentialVar != "" && os.Getenv(option.CredentialVar) == "" {
			status = fmt.Sprintf("  (missing %s)", option.CredentialVar)
		}
		items[i] = option.Label + status
	}

	prompt := promptui.Select{
		Label: role,
		Items: items,
		Size:  len(items),
	}

	i, _, err := prompt.Run()
	if err != nil {
		return llms.ModelOption{}, err
	}
	return options[i], nil
}

func printToolCatalog(cat *catalog.Catalog) {
	records := cat.ListAll()
	env := catalog.EnvironmentFromOS(records)
	usable := make(map[string]bool)
	for _, record := range catalog.Usable(records, env) {
		usable[record.Name] = true
	}

	fmt.Printf("🧰 Tool catalog (%d tools):\n", len(records))
	for _, record := range records {
		marker := "✅"
		detail := ""
		if !usable[record.Name] {
			marker = "🔒"
			var missing []string
			for _, credential := range record.RequiredCredentials {
				if !env[credential] {
					missing = append(missing, credential)
				}
			}
			detail = fmt.Sprintf("  (missing %s)", strings.Join(missing, ", "))
		}
		fmt.Printf("  %s %-30s %s%s\n", marker, record.Name, record.Description, detail)
	}
}

func executeRequest(ctx context.Context, orchestrator *flow.Orchestrator, userInput string) {
	fmt.Print("\n")
	if err := orchestrator.RunSession(ctx, userInput); err != nil {
		fmt.Printf("❌ Request failed: %v\n", err)
		os.Exit(1)
	}
}

func startInteractiveMode(ctx context.Context, orchestrator *flow.Orchestrator, cat *catalog.Catalog) {
	config := &readline.Config{
		Prompt:            "> ",
		HistoryFile:       "/tmp/crewgen_history",
		AutoComplete:      createAutoCompleter(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	}

	rl, err := readline.NewEx(config)
	if err != nil {
		fmt.Printf("❌ Failed to initialize interactive mode: %v\n", err)
		fmt.Println("💡 Please use one-shot mode instead: crewgen \"your request here\"")
		return
	}
	defer rl.Close()

	fmt.Println("\n🚀 Welcome to crewgen!")
	fmt.Println("💬 Describe the crew, tool, or code you want. Commands start with '/'.")
	fmt.Println(strings.Repeat("=", 60))

	for {
		fmt.Print("\n")
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		userInput := strings.TrimSpace(line)
		if userInput == "" {
			continue
		}

		if strings.HasPrefix(userInput, "/") {
			if handleSlashCommand(userInput, cat) {
				break
			}
			continue
		}

		if err := orchestrator.RunSession(ctx, userInput); err != nil {
			fmt.Printf("❌ Error: %v\n", err)
		}
	}
}

// SlashCommand represents a command that starts with /
type SlashCommand struct {
	Name        string
	Description string
	Handler     func(cat *catalog.Catalog) bool // Returns true if should exit
}

func getSlashCommands() []SlashCommand {
	return []SlashCommand{
		{
			Name:        "help",
			Description: "Show available commands and usage information",
			Handler: func(cat *catalog.Catalog) bool {
				showInteractiveHelp()
				return false
			},
		},
		{
			Name:        "tools",
			Description: "Show the tool catalog with credential status",
			Handler: func(cat *catalog.Catalog) bool {
				printToolCatalog(cat)
				return false
			},
		},
		{
			Name:        "models",
			Description: "Show the selectable worker and supervisor models",
			Handler: func(cat *catalog.Catalog) bool {
				fmt.Println("🧠 Available models:")
				for _, option := range llms.Options() {
					status := ""
					if option.CredentialVar != "" && os.Getenv(option.CredentialVar) == "" {
						status = fmt.Sprintf("  (missing %s)", option.CredentialVar)
					}
					fmt.Printf("  %s%s\n", option.Label, status)
				}
				return false
			},
		},
		{
			Name:        "quit",
			Description: "Exit the interactive session",
			Handler: func(cat *catalog.Catalog) bool {
				fmt.Println("👋 Goodbye!")
				return true
			},
		},
		{
			Name:        "exit",
			Description: "Exit the interactive session (alias for quit)",
			Handler: func(cat *catalog.Catalog) bool {
				fmt.Println("👋 Goodbye!")
				return true
			},
		},
	}
}

// handleSlashCommand processes commands that start with /
// Returns true if the command requests program exit, false otherwise
func handleSlashCommand(input string, cat *catalog.Catalog) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}

	commandName := strings.TrimPrefix(parts[0], "/")
	commands := getSlashCommands()

	for _, cmd := range commands {
		if cmd.Name == commandName {
			return cmd.Handler(cat)
		}
	}

	fmt.Printf("❌ Unknown command: /%s\n", commandName)
	fmt.Println("💡 Available commands:")
	for _, cmd := range commands {
		fmt.Printf("  /%s - %s\n", cmd.Name, cmd.Description)
	}
	return false
}

// createAutoCompleter creates an autocompletion function for readline
func createAutoCompleter() *readline.PrefixCompleter {
	commands := getSlashCommands()
	var pcItems []readline.PrefixCompleterInterface

	for _, cmd := range commands {
		pcItems = append(pcItems, readline.PcItem("/"+cmd.Name))
	}

	commonPatterns := []string{
		"Create a crew that", "Build a tool that", "Write a script that",
		"Research", "Summarize", "Generate",
	}
	for _, pattern := range commonPatterns {
		pcItems = append(pcItems, readline.PcItem(pattern))
	}

	return readline.NewPrefixCompleter(pcItems...)
}

func showInteractiveHelp() {
	commands := getSlashCommands()

	fmt.Println("\n📚 Interactive Commands:")
	for _, cmd := range commands {
		fmt.Printf("  /%-10s - %s\n", cmd.Name, cmd.Description)
	}

	fmt.Println("\n💡 Example requests:")
	fmt.Println("  > Create a crew that researches a company and drafts an outreach email")
	fmt.Println("  > Build a tool that converts CSV files to Markdown tables")
	fmt.Println("  > Write a script that renames photos by their EXIF date")

	fmt.Println("\n🔒 Every generated artifact needs your explicit yes/save/no before anything runs.")
}
