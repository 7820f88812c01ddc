package message

import "strings"

// MessageType identifies the role of a message in a conversation
type MessageType string

const (
	MessageTypeSystem    MessageType = "system"
	MessageTypeUser      MessageType = "user"
	MessageTypeAssistant MessageType = "assistant"
)

// Message represents a single conversation message exchanged with a reasoning backend
type Message interface {
	Type() MessageType
	Content() string
}

// chatMessage is the standard text message implementation
type chatMessage struct {
	msgType MessageType
	content string
}

// NewChatMessage creates a message of the given type with text content
func NewChatMessage(msgType MessageType, content string) Message {
	return &chatMessage{msgType: msgType, content: content}
}

// NewSystemMessage creates a system instruction message
func NewSystemMessage(content string) Message {
	return NewChatMessage(MessageTypeSystem, content)
}

// NewUserMessage creates a user message
func NewUserMessage(content string) Message {
	return NewChatMessage(MessageTypeUser, content)
}

// NewAssistantMessage creates an assistant message
func NewAssistantMessage(content string) Message {
	return NewChatMessage(MessageTypeAssistant, content)
}

func (m *chatMessage) Type() MessageType { return m.msgType }

func (m *chatMessage) Content() string { return m.content }

// TruncatedString returns a single-line preview of a message for display
func TruncatedString(m Message) string {
	const maxLen = 120
	s := strings.ReplaceAll(m.Content(), "\n", " ")
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
