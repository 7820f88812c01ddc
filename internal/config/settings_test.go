package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaultSettings(t *testing.T) {
	settings := GetDefaultSettings()

	if settings.Worker.Provider == "" || settings.Worker.Model == "" {
		t.Error("Defaults must name a worker backend")
	}
	if settings.Flow.RequestTimeoutSeconds != DefaultRequestTimeoutSeconds {
		t.Errorf("Expected default timeout %d, got %d", DefaultRequestTimeoutSeconds, settings.Flow.RequestTimeoutSeconds)
	}
	if err := ValidateSettings(settings); err != nil {
		t.Errorf("Defaults must validate: %v", err)
	}
}

func TestLoadSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	content := `{
		"worker": {"provider": "anthropic", "model": "claude-3-5-haiku-20241022", "max_tokens": 4096},
		"flow": {"request_timeout_seconds": 60, "output_dir": "/tmp/out"}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if settings.Worker.Provider != "anthropic" {
		t.Errorf("Expected anthropic worker, got %s", settings.Worker.Provider)
	}
	if settings.Worker.MaxTokens != 4096 {
		t.Errorf("Expected max_tokens 4096, got %d", settings.Worker.MaxTokens)
	}
	if settings.Flow.RequestTimeoutSeconds != 60 {
		t.Errorf("Expected timeout 60, got %d", settings.Flow.RequestTimeoutSeconds)
	}
}

func TestSupervisorFallsBackToWorker(t *testing.T) {
	settings := &Settings{
		Worker: BackendSettings{Provider: "openai", Model: "gpt-4o"},
	}
	applyDefaults(settings)

	if settings.Supervisor.Provider != "openai" || settings.Supervisor.Model != "gpt-4o" {
		t.Errorf("Supervisor must fall back to the worker backend, got %+v", settings.Supervisor)
	}
}

func TestApplyDefaultsFillsFlow(t *testing.T) {
	settings := &Settings{
		Worker: BackendSettings{Provider: "ollama", Model: "llama3:70b"},
	}
	applyDefaults(settings)

	if settings.Flow.RequestTimeoutSeconds != DefaultRequestTimeoutSeconds {
		t.Errorf("Expected default timeout, got %d", settings.Flow.RequestTimeoutSeconds)
	}
	if settings.Flow.OutputDir == "" {
		t.Error("Expected a default output directory")
	}
	if settings.Flow.LogLevel == "" {
		t.Error("Expected a default log level")
	}
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"valid defaults", func(s *Settings) {}, false},
		{"bad worker provider", func(s *Settings) { s.Worker.Provider = "skynet" }, true},
		{"bad supervisor provider", func(s *Settings) { s.Supervisor.Provider = "hal9000" }, true},
		{"missing worker model", func(s *Settings) { s.Worker.Model = "" }, true},
		{"negative timeout", func(s *Settings) { s.Flow.RequestTimeoutSeconds = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := GetDefaultSettings()
			tt.mutate(settings)
			err := ValidateSettings(settings)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSettingsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	if _, err := LoadSettings(path); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}
