package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"

	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
	"github.com/fpt/go-crewgen-cli/pkg/message"
)

const defaultMaxTokens = 8192

// OpenAIClient handles communication with OpenAI chat models
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIClient creates a new OpenAI client with the specified model
func NewOpenAIClient(model string) (domain.LLM, error) {
	return NewOpenAIClientWithTokens(model, 0) // 0 = use default
}

// NewOpenAIClientWithTokens creates a new OpenAI client with configurable maxTokens
func NewOpenAIClientWithTokens(model string, maxTokens int) (domain.LLM, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}

	// Support custom base URL (for Azure OpenAI, etc.)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)

	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &OpenAIClient{
		client:    &client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Chat implements the basic LLM interface
func (c *OpenAIClient) Chat(ctx context.Context, messages []message.Message) (message.Message, error) {
	openaiMessages := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		switch msg.Type() {
		case message.MessageTypeUser:
			openaiMessages = append(openaiMessages, openai.UserMessage(msg.Content()))
		case message.MessageTypeAssistant:
			openaiMessages = append(openaiMessages, openai.AssistantMessage(msg.Content()))
		case message.MessageTypeSystem:
			openaiMessages = append(openaiMessages, openai.SystemMessage(msg.Content()))
		}
	}

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:            openaiMessages,
		Model:               shared.ChatModel(c.model),
		MaxCompletionTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, domain.ErrEmptyResponse
	}

	return message.NewAssistantMessage(completion.Choices[0].Message.Content), nil
}
