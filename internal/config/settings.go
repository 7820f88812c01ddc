package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	pkgLogger "github.com/fpt/go-crewgen-cli/pkg/logger"
)

// Default timeout in seconds for a single reasoning backend call
const DefaultRequestTimeoutSeconds = 120

// Settings represents the main application settings
type Settings struct {
	Worker     BackendSettings `json:"worker"`
	Supervisor BackendSettings `json:"supervisor"`
	Flow       FlowSettings    `json:"flow"`
}

// BackendSettings selects a reasoning backend and model for one role
type BackendSettings struct {
	Provider  string `json:"provider"`             // "ollama", "anthropic", "openai", or "gemini"
	Model     string `json:"model"`                // model name
	MaxTokens int    `json:"max_tokens,omitempty"` // maximum tokens for model responses (0 = use model default)
}

// FlowSettings contains generation flow configuration
type FlowSettings struct {
	RequestTimeoutSeconds int      `json:"request_timeout_seconds"` // per backend call; expiry fails the step
	OutputDir             string   `json:"output_dir"`              // where approved artifacts are saved
	LogLevel              string   `json:"log_level"`
	CatalogPaths          []string `json:"catalog_paths,omitempty"` // extra YAML tool catalogs
}

// LoadSettings loads application settings from a JSON file
func LoadSettings(configPath string) (*Settings, error) {
	// If config path is empty, search in order of preference
	if configPath == "" {
		configPath = findSettingsFile()
		if configPath == "" {
			// No settings file found, create default one and return defaults
			return createDefaultSettingsFile()
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		settings, _ := createSettingsFileAtPath(configPath)
		return settings, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	applyDefaults(&settings)

	return &settings, nil
}

// GetDefaultSettings returns default application settings
func GetDefaultSettings() *Settings {
	return &Settings{
		Worker: BackendSettings{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Supervisor: BackendSettings{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Flow: FlowSettings{
			RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
			OutputDir:             ".",
			LogLevel:              "info",
		},
	}
}

// applyDefaults fills in missing fields with default values
func applyDefaults(settings *Settings) {
	defaults := GetDefaultSettings()

	if settings.Worker.Provider == "" {
		settings.Worker.Provider = defaults.Worker.Provider
	}
	if settings.Worker.Model == "" {
		settings.Worker.Model = defaults.Worker.Model
	}
	// Supervisor falls back to the worker backend when unset
	if settings.Supervisor.Provider == "" {
		settings.Supervisor.Provider = settings.Worker.Provider
	}
	if settings.Supervisor.Model == "" {
		settings.Supervisor.Model = settings.Worker.Model
	}
	if settings.Flow.RequestTimeoutSeconds == 0 {
		settings.Flow.RequestTimeoutSeconds = defaults.Flow.RequestTimeoutSeconds
	}
	if settings.Flow.OutputDir == "" {
		settings.Flow.OutputDir = defaults.Flow.OutputDir
	}
	if settings.Flow.LogLevel == "" {
		settings.Flow.LogLevel = defaults.Flow.LogLevel
	}
}

// ValidateSettings validates the settings configuration
func ValidateSettings(settings *Settings) error {
	for role, backend := range map[string]BackendSettings{
		"worker":     settings.Worker,
		"supervisor": settings.Supervisor,
	} {
		switch backend.Provider {
		case "ollama", "anthropic", "openai", "gemini":
		default:
			return fmt.Errorf("unsupported %s provider: %s (must be 'ollama', 'anthropic', 'openai', or 'gemini')", role, backend.Provider)
		}
		if backend.Model == "" {
			return fmt.Errorf("%s model is required", role)
		}
	}

	if settings.Flow.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds must not be negative")
	}

	return nil
}

// findSettingsFile searches for settings.json in order of preference:
// 1. .crewgen/settings.json in current directory
// 2. $HOME/.crewgen/settings.json
// Returns empty string if none found
func findSettingsFile() string {
	currentDirPath := filepath.Join(".crewgen", "settings.json")
	if _, err := os.Stat(currentDirPath); err == nil {
		return currentDirPath
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		homeDirPath := filepath.Join(homeDir, ".crewgen", "settings.json")
		if _, err := os.Stat(homeDirPath); err == nil {
			return homeDirPath
		}
	}

	return ""
}

// createDefaultSettingsFile creates a default settings.json file in ~/.crewgen/
func createDefaultSettingsFile() (*Settings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return GetDefaultSettings(), nil // Fall back to defaults without file creation
	}

	settingsPath := filepath.Join(homeDir, ".crewgen", "settings.json")
	return createSettingsFileAtPath(settingsPath)
}

// createSettingsFileAtPath creates a default settings file at the specified path
func createSettingsFileAtPath(settingsPath string) (*Settings, error) {
	settings := GetDefaultSettings()

	if err := os.MkdirAll(filepath.Dir(settingsPath), 0755); err != nil {
		return settings, nil // Return defaults if directory creation fails
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return settings, nil
	}

	if err := os.WriteFile(settingsPath, data, 0644); err != nil {
		return settings, nil
	}

	pkgLogger.NewComponentLogger("settings").InfoWithIcon("📝", "Created default settings file", "path", settingsPath)

	return settings, nil
}
