package backend

import (
	"fmt"

	"github.com/fpt/go-crewgen-cli/pkg/backend/anthropic"
	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
	"github.com/fpt/go-crewgen-cli/pkg/backend/gemini"
	"github.com/fpt/go-crewgen-cli/pkg/backend/ollama"
	"github.com/fpt/go-crewgen-cli/pkg/backend/openai"
)

// NewClient creates a reasoning backend client for the given provider and model.
// Each provider reads its own credentials from the environment.
func NewClient(provider, model string, maxTokens int) (domain.LLM, error) {
	switch provider {
	case "anthropic", "claude":
		return anthropic.NewAnthropicClientWithTokens(model, maxTokens)
	case "openai":
		return openai.NewOpenAIClientWithTokens(model, maxTokens)
	case "gemini", "google":
		return gemini.NewGeminiClientWithTokens(model, maxTokens)
	case "ollama":
		return ollama.NewOllamaClientWithTokens(model, maxTokens)
	default:
		return nil, fmt.Errorf("unsupported backend provider: %s (must be 'ollama', 'anthropic', 'openai', or 'gemini')", provider)
	}
}
