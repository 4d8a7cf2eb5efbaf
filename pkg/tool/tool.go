// Package tool defines the agent's callable function interface and registry
package tool

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Tool is one named operation the model may invoke
type Tool interface {
	// Name returns the function name the model addresses (unique identifier)
	Name() string

	// Usage returns the signature-and-purpose line shown verbatim in the
	// system prompt, e.g. "add_to_watchlist(symbol|low|high) - Add stock ..."
	Usage() string

	// NumArgs returns the exact number of positional arguments expected
	NumArgs() int

	// Call executes the tool. Domain failures (bad symbol, unavailable
	// price, unknown method) come back as the result string so the model
	// can react; error is reserved for malformed arguments.
	Call(ctx context.Context, args Args) (string, error)
}

// Args is the positional argument list of a parsed function call.
// Each element is float64, int, or string per the coercion rules.
type Args []any

// String returns argument i as a string
func (a Args) String(i int) string {
	return fmt.Sprint(a[i])
}

// Float returns argument i as a float64, accepting ints and numeric strings
func (a Args) Float(i int) (float64, error) {
	switch v := a[i].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("argument %d: %q is not a number", i+1, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("argument %d: %v is not a number", i+1, v)
	}
}

// Bool returns argument i interpreted as a truth value
func (a Args) Bool(i int) bool {
	switch v := a[i].(type) {
	case int:
		return v != 0
	case float64:
		return v != 0
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	default:
		return false
	}
}

// Registry holds the fixed set of tools addressable by name
type Registry struct {
	tools map[string]Tool
	order []string

	mu sync.RWMutex
}

// NewRegistry creates an empty tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register registers a tool
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := t.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s already registered", name)
	}

	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// List returns all tools in registration order
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Names returns all tool names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch invokes the named tool with the given arguments. Unknown names
// and arity mismatches are user-facing message results, not errors: the
// agent loop reports them back to the model as turn context and keeps going.
func (r *Registry) Dispatch(ctx context.Context, name string, args Args) string {
	t, ok := r.Get(name)
	if !ok {
		return fmt.Sprintf("Function %s not found", name)
	}

	if len(args) != t.NumArgs() {
		return fmt.Sprintf("%s expects %d arguments, got %d", name, t.NumArgs(), len(args))
	}

	result, err := t.Call(ctx, args)
	if err != nil {
		return fmt.Sprintf("Error executing %s: %v", name, err)
	}
	return result
}
