package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/xinguang/stock-sentinel/pkg/logger"
	"github.com/xinguang/stock-sentinel/pkg/provider"
	"github.com/xinguang/stock-sentinel/pkg/tool"
	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

// Status is the terminal state of an agent run
type Status string

const (
	// StatusFinal means the model emitted a final answer
	StatusFinal Status = "final"

	// StatusMaxIterations means the iteration budget ran out first
	StatusMaxIterations Status = "max_iterations"
)

// Turn records one completed function-call iteration. Iterations whose
// output had no recognizable marker consume budget but record no turn.
type Turn struct {
	Index  int    // 1-based iteration number
	Raw    string // raw model output
	Call   *Call
	Result string
}

// Summary renders the turn for the rolling prompt context
func (t Turn) Summary() string {
	return fmt.Sprintf("Iteration %d: Called %s -> %s", t.Index, t.Call, t.Result)
}

// RunResult is the outcome of one agent run. The watchlist snapshot is
// included whichever terminal state was reached.
type RunResult struct {
	ID          string
	Status      Status
	FinalAnswer string
	Iterations  int
	Turns       []Turn
	Watchlist   []watchlist.Entry
}

// Engine orchestrates the agent loop: build prompt, invoke the model,
// parse, dispatch, fold the result into bounded context, repeat.
type Engine struct {
	provider      provider.Provider
	model         string
	registry      *tool.Registry
	store         *watchlist.Store
	maxIterations int
	prompt        *PromptBuilder
	log           *logger.Logger

	// Callbacks
	onResponse func(iteration int, text string)
	onCall     func(call *Call)
	onResult   func(result string)
}

// Options holds engine configuration
type Options struct {
	Provider      provider.Provider
	Model         string
	Registry      *tool.Registry
	Store         *watchlist.Store
	MaxIterations int
}

// New creates a new agent engine
func New(opts *Options) *Engine {
	maxIterations := opts.MaxIterations
	if maxIterations == 0 {
		maxIterations = 10 // Default max iterations
	}

	model := opts.Model
	if model == "" {
		model = provider.DefaultModel
	}

	return &Engine{
		provider:      opts.Provider,
		model:         model,
		registry:      opts.Registry,
		store:         opts.Store,
		maxIterations: maxIterations,
		prompt:        &PromptBuilder{Registry: opts.Registry},
		log:           logger.New("engine"),
	}
}

// Callbacks holds event callbacks for observing the run
type Callbacks struct {
	OnResponse func(iteration int, text string)
	OnCall     func(call *Call)
	OnResult   func(result string)
}

// SetCallbacks sets event callbacks
func (e *Engine) SetCallbacks(cb *Callbacks) {
	if cb.OnResponse != nil {
		e.onResponse = cb.OnResponse
	}
	if cb.OnCall != nil {
		e.onCall = cb.OnCall
	}
	if cb.OnResult != nil {
		e.onResult = cb.OnResult
	}
}

// Run executes the agent loop for one query until the model emits a final
// answer or the iteration budget is exhausted. Model invocation failures
// are fatal and abort the run; everything the tools produce, including
// their failure messages, is folded back into context instead.
func (e *Engine) Run(ctx context.Context, query string) (*RunResult, error) {
	result := &RunResult{
		ID:     uuid.NewString(),
		Status: StatusMaxIterations,
	}

	e.log.Info("🤖 starting run %s: %s", result.ID, query)

	for iteration := 1; iteration <= e.maxIterations; iteration++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result.Iterations = iteration

		text, err := e.provider.Generate(ctx, &provider.Request{
			Model:  e.model,
			Prompt: e.prompt.Build(query, result.Turns),
		})
		if err != nil {
			return nil, fmt.Errorf("model invocation failed: %w", err)
		}

		if e.onResponse != nil {
			e.onResponse(iteration, text)
		}

		if call, ok := ExtractFunctionCall(text); ok {
			if e.onCall != nil {
				e.onCall(call)
			}

			callResult := e.registry.Dispatch(ctx, call.Name, call.Args)
			if e.onResult != nil {
				e.onResult(callResult)
			}

			result.Turns = append(result.Turns, Turn{
				Index:  iteration,
				Raw:    text,
				Call:   call,
				Result: callResult,
			})
			continue
		}

		if answer, ok := ExtractFinalAnswer(text); ok {
			result.Status = StatusFinal
			result.FinalAnswer = answer
			break
		}

		// Unrecognized shape: the iteration is spent but adds no context
		e.log.Warn("⚠️ unexpected response format at iteration %d: %s", iteration, text)
	}

	if result.Status == StatusMaxIterations {
		e.log.Warn("⏰ max iterations (%d) reached", e.maxIterations)
	}

	result.Watchlist = e.store.Snapshot()
	return result, nil
}
