package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/i474232898/open-meteo-tools/internal/observability"
)

var (
	ErrBadParameter = errors.New("bad parameter")
	ErrNotFound     = errors.New("not found")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Tool is a named operation an agent can call with JSON arguments.
type Tool interface {
	Name() string
	Description() string
	Schema() (*jsonschema.Schema, error)
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

// typedTool decodes and validates its input into Req before calling run.
// Fields absent from the input keep the values set by defaults.
type typedTool[Req any] struct {
	name        string
	description string
	defaults    func() Req
	run         func(ctx context.Context, req Req) (any, error)
}

func newTool[Req any](name, description string, defaults func() Req, run func(context.Context, Req) (any, error)) Tool {
	return &typedTool[Req]{name: name, description: description, defaults: defaults, run: run}
}

func (t *typedTool[Req]) Name() string        { return t.name }
func (t *typedTool[Req]) Description() string { return t.description }

func (t *typedTool[Req]) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[Req](nil)
}

func (t *typedTool[Req]) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req Req
	if t.defaults != nil {
		req = t.defaults()
	}

	if len(bytes.TrimSpace(input)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(input))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: failed to unmarshal input: %v", ErrBadParameter, err)
		}
	}

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadParameter, err)
	}

	return t.run(ctx, req)
}

// Descriptor is the listing entry for a tool.
type Descriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"input_schema"`
}

// Registry dispatches calls to tools by name.
type Registry struct {
	tools   map[string]Tool
	schemas map[string]*jsonschema.Schema
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger, metrics *observability.Metrics) *Registry {
	return &Registry{
		tools:   make(map[string]Tool),
		schemas: make(map[string]*jsonschema.Schema),
		logger:  logger,
		metrics: metrics,
	}
}

// Register adds tools. Names must be unique and every schema must build.
func (r *Registry) Register(tools ...Tool) error {
	for _, t := range tools {
		if _, exists := r.tools[t.Name()]; exists {
			return fmt.Errorf("tool %q already registered", t.Name())
		}
		schema, err := t.Schema()
		if err != nil {
			return fmt.Errorf("schema for tool %q: %w", t.Name(), err)
		}
		r.tools[t.Name()] = t
		r.schemas[t.Name()] = schema
	}
	return nil
}

// List returns every tool ordered by name.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.tools))
	for name, t := range r.tools {
		out = append(out, Descriptor{Name: name, Description: t.Description(), InputSchema: r.schemas[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call runs the named tool. Unknown names yield ErrNotFound and invalid
// arguments ErrBadParameter; anything else comes from the tool itself.
func (r *Registry) Call(ctx context.Context, name string, input json.RawMessage) (any, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: tool %q", ErrNotFound, name)
	}
	// name may alias a request buffer; labels must outlive the call.
	name = t.Name()

	start := time.Now()
	result, err := t.Run(ctx, input)

	outcome := "success"
	switch {
	case errors.Is(err, ErrBadParameter):
		outcome = "bad_request"
		r.logger.InfoContext(ctx, "tool rejected arguments", "tool", name, "error", err)
	case err != nil:
		outcome = "error"
		r.logger.ErrorContext(ctx, "tool failed", "tool", name, "duration", time.Since(start), "error", err)
	default:
		r.logger.DebugContext(ctx, "tool completed", "tool", name, "duration", time.Since(start))
	}
	r.metrics.ToolCalls.WithLabelValues(name, outcome).Inc()

	return result, err
}
