package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
	"github.com/fpt/go-crewgen-cli/pkg/message"
)

const defaultMaxTokens = 4096

// OllamaClient handles communication with a local Ollama server
type OllamaClient struct {
	client    *api.Client
	model     string
	maxTokens int
}

// NewOllamaClient creates a new Ollama client with the specified model
func NewOllamaClient(model string) (domain.LLM, error) {
	return NewOllamaClientWithTokens(model, 0) // 0 = use default
}

// NewOllamaClientWithTokens creates a new Ollama client with configurable maxTokens
func NewOllamaClientWithTokens(model string, maxTokens int) (domain.LLM, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &OllamaClient{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Chat implements the basic LLM interface
func (c *OllamaClient) Chat(ctx context.Context, messages []message.Message) (message.Message, error) {
	ollamaMessages := make([]api.Message, 0, len(messages))
	for _, msg := range messages {
		ollamaMessages = append(ollamaMessages, api.Message{
			Role:    string(msg.Type()),
			Content: msg.Content(),
		})
	}

	stream := false
	chatRequest := &api.ChatRequest{
		Model:    c.model,
		Messages: ollamaMessages,
		Stream:   &stream,
		Options: map[string]any{
			"temperature": 0.1,
			"num_predict": c.maxTokens, // Max output tokens for Ollama
		},
	}

	var content strings.Builder
	err := c.client.Chat(ctx, chatRequest, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat error: %w", err)
	}

	if content.Len() == 0 {
		return nil, domain.ErrEmptyResponse
	}

	return message.NewAssistantMessage(content.String()), nil
}
