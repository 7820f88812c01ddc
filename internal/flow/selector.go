package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fpt/go-crewgen-cli/internal/catalog"
	"github.com/fpt/go-crewgen-cli/pkg/backend/domain"
	pkgLogger "github.com/fpt/go-crewgen-cli/pkg/logger"
)

// Selector picks tools for a task from the usable subset of the catalog.
// The backend only ever sees usable tools; selections naming anything
// outside that set are rejected here, never passed downstream.
type Selector struct {
	llm     domain.LLM
	timeout time.Duration
	logger  *pkgLogger.Logger
}

// NewSelector creates a selector backed by the worker model
func NewSelector(llm domain.LLM, timeout time.Duration) *Selector {
	return &Selector{
		llm:     llm,
		timeout: timeout,
		logger:  pkgLogger.NewComponentLogger("selector"),
	}
}

// Select asks the backend to choose from the usable tools. The result is one
// of three variants: a validated name list, a create-required signal, or an
// error with a diagnostic reason. Duplicate names in the reply collapse to
// one, keeping first-mention order.
func (s *Selector) Select(ctx context.Context, requirementsSummary string, usable []catalog.ToolRecord) (SelectionResult, error) {
	if len(usable) == 0 {
		s.logger.InfoWithIcon("🔧", "No usable tools in catalog, custom tool creation required")
		return CreateRequired(), nil
	}

	system, user := selectionPrompt(requirementsSummary, usable)

	text, err := chatText(ctx, s.llm, s.timeout, system, user)
	if err != nil {
		return SelectionResult{}, err
	}

	var reply selectionReply
	if err := json.Unmarshal([]byte(extractJSON(text)), &reply); err != nil {
		return SelectionFailed(fmt.Sprintf("selection reply is not valid JSON: %v", err)), nil
	}

	if reply.NoSuitableTool || len(reply.Tools) == 0 {
		s.logger.InfoWithIcon("🔧", "No suitable tool selected, custom tool creation required")
		return CreateRequired(), nil
	}

	usableNames := make(map[string]bool, len(usable))
	for _, record := range usable {
		usableNames[record.Name] = true
	}

	seen := make(map[string]bool, len(reply.Tools))
	names := make([]string, 0, len(reply.Tools))
	for _, name := range reply.Tools {
		if !usableNames[name] {
			return SelectionFailed(fmt.Sprintf("selected tool %q is not in the usable set", name)), nil
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	s.logger.InfoWithIcon("🧰", "Tools selected", "tools", names)
	return Selected(names), nil
}
