package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"unsafe"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/open-meteo-tools/internal/observability"
)

type echoInput struct {
	Message string `json:"message" validate:"required"`
	Repeat  int    `json:"repeat,omitempty" validate:"gte=1,lte=3"`
}

func echoTool() Tool {
	return newTool("echo", "Echoes its input.",
		func() echoInput { return echoInput{Repeat: 1} },
		func(_ context.Context, in echoInput) (any, error) {
			if in.Message == "fail" {
				return nil, errors.New("upstream down")
			}
			return in, nil
		})
}

func newTestRegistry(t *testing.T) (*Registry, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	r := NewRegistry(observability.NopLogger(), metrics)
	require.NoError(t, r.Register(echoTool()))
	return r, metrics
}

func TestRegistry_CallAppliesDefaults(t *testing.T) {
	r, metrics := newTestRegistry(t)

	out, err := r.Call(context.Background(), "echo", json.RawMessage(`{"message": "hi"}`))
	require.NoError(t, err)
	assert.Equal(t, echoInput{Message: "hi", Repeat: 1}, out)

	out, err = r.Call(context.Background(), "echo", json.RawMessage(`{"message": "hi", "repeat": 3}`))
	require.NoError(t, err)
	assert.Equal(t, 3, out.(echoInput).Repeat)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ToolCalls.WithLabelValues("echo", "success")))
}

func TestRegistry_CallLabelsOutliveCallerBuffer(t *testing.T) {
	r, metrics := newTestRegistry(t)

	// Request routers hand out names backed by reused buffers.
	buf := []byte("echo")
	name := unsafe.String(&buf[0], len(buf))

	_, err := r.Call(context.Background(), name, json.RawMessage(`{"message": "hi"}`))
	require.NoError(t, err)
	copy(buf, "zzzz")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ToolCalls.WithLabelValues("echo", "success")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.ToolCalls))
}

func TestRegistry_CallRejectsBadArguments(t *testing.T) {
	r, metrics := newTestRegistry(t)

	tests := []struct {
		name  string
		input string
	}{
		{"missing required", `{}`},
		{"empty body", ``},
		{"out of range", `{"message": "hi", "repeat": 9}`},
		{"wrong type", `{"message": 5}`},
		{"unknown field", `{"message": "hi", "volume": 11}`},
		{"not json", `{"message"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Call(context.Background(), "echo", json.RawMessage(tt.input))
			assert.ErrorIs(t, err, ErrBadParameter)
		})
	}
	assert.Equal(t, float64(len(tests)), testutil.ToFloat64(metrics.ToolCalls.WithLabelValues("echo", "bad_request")))
}

func TestRegistry_CallPassesToolErrorsThrough(t *testing.T) {
	r, metrics := newTestRegistry(t)

	_, err := r.Call(context.Background(), "echo", json.RawMessage(`{"message": "fail"}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadParameter)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ToolCalls.WithLabelValues("echo", "error")))
}

func TestRegistry_UnknownTool(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, err := r.Call(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r, _ := newTestRegistry(t)
	assert.Error(t, r.Register(echoTool()))
}

func TestRegistry_ListIncludesSchema(t *testing.T) {
	r, _ := newTestRegistry(t)

	list := r.List()
	require.Len(t, list, 1)
	assert.Equal(t, "echo", list[0].Name)
	require.NotNil(t, list[0].InputSchema)
	assert.Contains(t, list[0].InputSchema.Properties, "message")
	assert.Contains(t, list[0].InputSchema.Required, "message")
	assert.NotContains(t, list[0].InputSchema.Required, "repeat")
}
