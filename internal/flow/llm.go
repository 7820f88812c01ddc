package flow

import (
	"context"
	"strings"
	"time"

	pkgErrors "github.com/pkg/errors"

	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
	pkgLogger "github.com/fpt/go-crewgen-cli/pkg/logger"
	"github.com/fpt/go-crewgen-cli/pkg/message"
)

var chatLogger = pkgLogger.NewComponentLogger("backend")

// chatText sends one system+user exchange to a backend with a per-call
// timeout and returns the assistant reply text. Every generation step in
// the flow goes through here; a failure is terminal for the step, there is
// no automatic retry.
func chatText(ctx context.Context, llm domain.LLM, timeout time.Duration, system, user string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	messages := []message.Message{
		message.NewSystemMessage(system),
		message.NewUserMessage(user),
	}

	reply, err := llm.Chat(ctx, messages)
	if err != nil {
		return "", pkgErrors.Wrap(err, "backend chat failed")
	}
	chatLogger.Debug("Backend reply received", "preview", message.TruncatedString(reply))

	text := strings.TrimSpace(reply.Content())
	if text == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}

// extractJSON strips a Markdown code fence from a reply if present. Backends
// are instructed to reply with bare JSON, but some wrap it anyway. The
// stripping is deterministic and does not attempt repair: anything that is
// not valid JSON after unfencing fails at the json.Unmarshal boundary.
func extractJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// drop the language tag line ("json", "python", or empty)
		trimmed = trimmed[idx+1:]
	}
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}

// extractSource strips a code fence from a generated source reply, same
// unfencing rule as extractJSON.
func extractSource(text string) string {
	return extractJSON(text)
}
