// Package tools exposes Canvas operations as named, schema-described tools
// an agent can list and call. The registry owns dispatch: it resolves the
// tool, runs the handler and folds the three possible outcomes (data, empty,
// failure) into one result shape the protocol layer can emit as-is.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"canvas-mcp/internal/canvas"
	"canvas-mcp/internal/metrics"
)

// HandlerFunc executes one tool call. The error, when non-nil, is a
// *canvas.Failure or *canvas.Empty.
type HandlerFunc func(ctx context.Context, in Input) (any, error)

// Tool is one callable operation with its argument schema.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     HandlerFunc
}

// InputSchema renders the params as a JSON Schema object, the shape agent
// frontends expect in a tool listing.
func (t *Tool) InputSchema() map[string]any {
	properties := map[string]any{}
	var required []string
	for _, p := range t.Params {
		prop := map[string]any{
			"type":        p.typ,
			"description": p.description,
		}
		if p.def != nil {
			prop["default"] = p.def
		}
		properties[p.name] = prop
		if p.required {
			required = append(required, p.name)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Outcome labels for metrics and logging.
const (
	OutcomeData    = "data"
	OutcomeEmpty   = "empty"
	OutcomeFailure = "failure"
)

// Result is the uniform product of a tool call. JSON always holds a valid
// document: the payload for data, a message object for empty, an error
// object for failure.
type Result struct {
	JSON    json.RawMessage
	Outcome string
	IsError bool
}

type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
	order []string

	log     *zap.Logger
	metrics *metrics.Collector
}

func NewRegistry(log *zap.Logger, collector *metrics.Collector) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		tools:   make(map[string]*Tool),
		log:     log,
		metrics: collector,
	}
}

// Register adds a tool. Names must be unique.
func (r *Registry) Register(t *Tool) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("tools: tool must have a name")
	}
	if t.Handler == nil {
		return fmt.Errorf("tools: tool %s has no handler", t.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tools: tool %s already registered", t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns all tools in registration order.
func (r *Registry) List() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Call dispatches one tool invocation and renders its outcome. It never
// returns a Go error; protocol-level problems (unknown tool) come back as
// failure results so the agent always has something to read.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) Result {
	start := time.Now()

	tool, ok := r.Get(name)
	if !ok {
		res := failureResult(&canvas.Failure{
			Kind:    canvas.KindUnknown,
			Message: fmt.Sprintf("Unknown tool: %s.", name),
		})
		r.metrics.ToolCall(name, res.Outcome, time.Since(start))
		return res
	}

	payload, err := tool.Handler(ctx, NewInput(args))
	res := renderOutcome(payload, err)

	r.metrics.ToolCall(name, res.Outcome, time.Since(start))
	r.log.Debug("tool call",
		zap.String("tool", name),
		zap.String("outcome", res.Outcome),
		zap.Duration("elapsed", time.Since(start)))
	return res
}

func renderOutcome(payload any, err error) Result {
	if err == nil {
		b, merr := json.MarshalIndent(payload, "", "  ")
		if merr != nil {
			return failureResult(&canvas.Failure{
				Kind:    canvas.KindUnknown,
				Message: fmt.Sprintf("Could not encode the result: %v.", merr),
			})
		}
		return Result{JSON: b, Outcome: OutcomeData}
	}

	if empty, ok := canvas.AsEmpty(err); ok {
		b, _ := json.MarshalIndent(empty, "", "  ")
		return Result{JSON: b, Outcome: OutcomeEmpty}
	}

	if fail, ok := canvas.AsFailure(err); ok {
		return failureResult(fail)
	}

	// handlers should never leak unclassified errors; treat it as unknown
	return failureResult(&canvas.Failure{
		Kind:    canvas.KindUnknown,
		Message: err.Error(),
	})
}

func failureResult(fail *canvas.Failure) Result {
	b, _ := json.MarshalIndent(fail, "", "  ")
	return Result{JSON: b, Outcome: OutcomeFailure, IsError: true}
}
