package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
	"github.com/fpt/go-crewgen-cli/pkg/message"
)

const defaultMaxTokens = 8192

// GeminiClient handles communication with Gemini models
type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int
}

// NewGeminiClient creates a new Gemini client with the specified model
func NewGeminiClient(model string) (domain.LLM, error) {
	return NewGeminiClientWithTokens(model, 0) // 0 = use default
}

// NewGeminiClientWithTokens creates a new Gemini client with configurable maxTokens
func NewGeminiClientWithTokens(model string, maxTokens int) (domain.LLM, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &GeminiClient{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Chat implements the basic LLM interface
func (c *GeminiClient) Chat(ctx context.Context, messages []message.Message) (message.Message, error) {
	geminiContents := make([]*genai.Content, 0, len(messages))
	var systemInstruction *genai.Content

	for _, msg := range messages {
		switch msg.Type() {
		case message.MessageTypeUser:
			geminiContents = append(geminiContents, genai.NewContentFromText(msg.Content(), genai.RoleUser))
		case message.MessageTypeAssistant:
			geminiContents = append(geminiContents, genai.NewContentFromText(msg.Content(), genai.RoleModel))
		case message.MessageTypeSystem:
			// Use the last system message as system instruction
			systemInstruction = genai.NewContentFromText(msg.Content(), genai.RoleUser)
		}
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(c.maxTokens),
	}
	if systemInstruction != nil {
		config.SystemInstruction = systemInstruction
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, geminiContents, config)
	if err != nil {
		return nil, fmt.Errorf("Gemini API call failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, domain.ErrEmptyResponse
	}

	return message.NewAssistantMessage(text), nil
}
