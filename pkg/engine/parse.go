package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xinguang/stock-sentinel/pkg/tool"
)

const (
	// MarkerFunctionCall prefixes a model line requesting a function call
	MarkerFunctionCall = "FUNCTION_CALL:"

	// MarkerFinalAnswer prefixes the model's terminal answer
	MarkerFinalAnswer = "FINAL_ANSWER:"
)

// Call is a parsed function-call request from the model
type Call struct {
	Name string
	Args tool.Args
}

// String renders the call for logging and turn summaries
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		switch v := a.(type) {
		case string:
			parts[i] = strconv.Quote(v)
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// ExtractFunctionCall scans the model output for a FUNCTION_CALL line and
// parses it. The model sometimes prepends commentary, so every line is
// checked, first match wins.
func ExtractFunctionCall(text string) (*Call, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, MarkerFunctionCall) {
			continue
		}

		rest := strings.TrimSpace(strings.TrimPrefix(line, MarkerFunctionCall))
		if rest == "" {
			continue
		}

		// Pipe or comma both delimit; empty fragments are dropped
		fields := strings.FieldsFunc(rest, func(r rune) bool {
			return r == '|' || r == ','
		})

		var tokens []string
		for _, f := range fields {
			f = strings.TrimSpace(f)
			if f != "" {
				tokens = append(tokens, f)
			}
		}
		if len(tokens) == 0 {
			continue
		}

		call := &Call{Name: tokens[0]}
		for _, t := range tokens[1:] {
			call.Args = append(call.Args, coerceScalar(t))
		}
		return call, true
	}

	return nil, false
}

// ExtractFinalAnswer returns the answer text when the response begins with
// the final-answer marker
func ExtractFinalAnswer(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, MarkerFinalAnswer) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(text, MarkerFinalAnswer)), true
}

// coerceScalar resolves an argument token in attempt order: float when it
// carries a decimal point, then integer, then quote-stripped string.
func coerceScalar(s string) any {
	s = strings.TrimSpace(s)

	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}

	return strings.Trim(s, `"'`)
}
