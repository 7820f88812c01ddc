package flow

import (
	"context"
	"encoding/json"
	"time"

	pkgErrors "github.com/pkg/errors"

	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
	pkgLogger "github.com/fpt/go-crewgen-cli/pkg/logger"
)

// Classifier decides which generation path a raw request takes
type Classifier struct {
	llm     domain.LLM
	timeout time.Duration
	logger  *pkgLogger.Logger
}

// NewClassifier creates a classifier backed by the worker model
func NewClassifier(llm domain.LLM, timeout time.Duration) *Classifier {
	return &Classifier{
		llm:     llm,
		timeout: timeout,
		logger:  pkgLogger.NewComponentLogger("classifier"),
	}
}

// Classify maps a raw request to a request kind. A transport or parse
// failure returns KindUndetermined with the error; a well-formed reply that
// names no known kind returns KindUndetermined with a nil error. Either way
// the session ends without touching the backend again.
func (c *Classifier) Classify(ctx context.Context, rawRequest string) (RequestKind, error) {
	system, user := classificationPrompt(rawRequest)

	text, err := chatText(ctx, c.llm, c.timeout, system, user)
	if err != nil {
		return KindUndetermined, pkgErrors.Wrap(err, "classification request failed")
	}

	var reply classificationReply
	if err := json.Unmarshal([]byte(extractJSON(text)), &reply); err != nil {
		return KindUndetermined, pkgErrors.Wrap(err, "classification reply is not valid JSON")
	}

	kind := KindUndetermined
	switch reply.Kind {
	case "crew":
		kind = KindCrew
	case "tool":
		kind = KindTool
	case "code":
		kind = KindGenericCode
	}

	c.logger.DebugWithIcon("🔍", "Request classified", "kind", string(kind), "reasoning", reply.Reasoning)
	return kind, nil
}
