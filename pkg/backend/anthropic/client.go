package anthropic

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
	"github.com/fpt/go-crewgen-cli/pkg/message"
)

const defaultMaxTokens = 8192

// AnthropicClient handles communication with Claude models
type AnthropicClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicClient creates a new Anthropic client with the specified model
func NewAnthropicClient(model string) (domain.LLM, error) {
	return NewAnthropicClientWithTokens(model, 0) // 0 = use default
}

// NewAnthropicClientWithTokens creates a new Anthropic client with configurable maxTokens
func NewAnthropicClientWithTokens(model string, maxTokens int) (domain.LLM, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}

	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &AnthropicClient{
		client:    &client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Chat implements the basic LLM interface
func (c *AnthropicClient) Chat(ctx context.Context, messages []message.Message) (message.Message, error) {
	anthropicMessages := make([]anthropic.MessageParam, 0, len(messages))
	var systemBlocks []anthropic.TextBlockParam

	for _, msg := range messages {
		switch msg.Type() {
		case message.MessageTypeUser:
			anthropicMessages = append(anthropicMessages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content())))
		case message.MessageTypeAssistant:
			anthropicMessages = append(anthropicMessages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content())))
		case message.MessageTypeSystem:
			// Anthropic takes system prompts outside the message list
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: msg.Content()})
		}
	}

	params := anthropic.MessageNewParams{
		MaxTokens: int64(c.maxTokens),
		Messages:  anthropicMessages,
		Model:     anthropic.Model(c.model),
	}
	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(msg.Content) == 0 {
		return nil, domain.ErrEmptyResponse
	}

	var content string
	for _, block := range msg.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return message.NewAssistantMessage(content), nil
}
