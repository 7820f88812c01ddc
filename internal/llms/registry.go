// Package llms lists the model choices offered for the worker and supervisor
// roles and constructs reasoning backend clients for them.
package llms

import (
	"fmt"

	"github.com/fpt/go-crewgen-cli/pkg/backend"
	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
)

// ModelOption describes one selectable model: the backend provider, the
// model name, and the credential (if any) required to use it.
type ModelOption struct {
	Label         string // display form, "provider[model]"
	Provider      string
	Model         string
	CredentialVar string // empty for keyless providers (ollama)
}

// Options returns the selectable models in presentation order
func Options() []ModelOption {
	return []ModelOption{
		{Label: "openai[gpt-4o-mini]", Provider: "openai", Model: "gpt-4o-mini", CredentialVar: "OPENAI_API_KEY"},
		{Label: "openai[gpt-4o]", Provider: "openai", Model: "gpt-4o", CredentialVar: "OPENAI_API_KEY"},
		{Label: "anthropic[claude-sonnet-4-20250514]", Provider: "anthropic", Model: "claude-sonnet-4-20250514", CredentialVar: "ANTHROPIC_API_KEY"},
		{Label: "anthropic[claude-3-5-haiku-20241022]", Provider: "anthropic", Model: "claude-3-5-haiku-20241022", CredentialVar: "ANTHROPIC_API_KEY"},
		{Label: "gemini[gemini-2.0-flash]", Provider: "gemini", Model: "gemini-2.0-flash", CredentialVar: "GEMINI_API_KEY"},
		{Label: "ollama[gpt-oss:latest]", Provider: "ollama", Model: "gpt-oss:latest"},
		{Label: "ollama[llama3:70b]", Provider: "ollama", Model: "llama3:70b"},
	}
}

// Find returns the option with the given label
func Find(label string) (ModelOption, bool) {
	for _, option := range Options() {
		if option.Label == label {
			return option, true
		}
	}
	return ModelOption{}, false
}

// NewClient constructs a reasoning backend client for the option
func NewClient(option ModelOption, maxTokens int) (domain.LLM, error) {
	client, err := backend.NewClient(option.Provider, option.Model, maxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", option.Label, err)
	}
	return client, nil
}
