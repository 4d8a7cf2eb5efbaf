// Package engine implements the core agent loop
package engine

import (
	"fmt"
	"strings"

	"github.com/xinguang/stock-sentinel/pkg/tool"
)

// contextWindow is how many recent turn summaries the prompt carries.
// Older turns are dropped entirely; the model can lose track of actions
// beyond this window, which is accepted behavior.
const contextWindow = 3

// PromptBuilder builds the per-iteration prompt
type PromptBuilder struct {
	Registry *tool.Registry
}

// BuildSystemPrompt constructs the fixed instructions, enumerating every
// registered operation verbatim so the model can address them
func (p *PromptBuilder) BuildSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString(`You are a stock watchlist monitoring agent. Respond with EXACTLY ONE of these formats:
1. FUNCTION_CALL: function_name|input
2. FINAL_ANSWER: message

Available functions:
`)

	for i, t := range p.Registry.List() {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, t.Usage()))
	}

	sb.WriteString("\nThink through the task step by step and decide what functions to call. DO NOT include multiple responses. Give ONE response at a time.")

	return sb.String()
}

// Build assembles the full prompt for one iteration: system instructions,
// the original query, and the recent turn summaries when any exist
func (p *PromptBuilder) Build(query string, turns []Turn) string {
	system := p.BuildSystemPrompt()

	if len(turns) == 0 {
		return fmt.Sprintf("%s\n\nQuery: %s", system, query)
	}

	recent := turns
	if len(recent) > contextWindow {
		recent = recent[len(recent)-contextWindow:]
	}

	summaries := make([]string, len(recent))
	for i, t := range recent {
		summaries[i] = t.Summary()
	}

	return fmt.Sprintf("%s\n\nQuery: %s\n\nContext: %s\n\nWhat should I do next?",
		system, query, strings.Join(summaries, " "))
}
