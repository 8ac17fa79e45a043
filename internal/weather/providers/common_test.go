package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRequestWithResilience_InvalidConfig(t *testing.T) {
	cb := newCircuitBreaker("test")
	build := func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, "http://example.invalid", nil)
	}

	_, err := doRequestWithResilience(context.Background(), HTTPClientConfig{}, cb, build)
	assert.ErrorIs(t, err, errNoHTTPClient)

	_, err = doRequestWithResilience(context.Background(), HTTPClientConfig{Client: http.DefaultClient}, cb, build)
	assert.ErrorIs(t, err, errInvalidConfig)
}

func TestDoRequestWithResilience_OpenBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "trip-fast",
		ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= 1 },
		Timeout:     time.Minute,
	})
	cfg := HTTPClientConfig{
		Client:  srv.Client(),
		Backoff: BackoffConfig{MaxRetries: 3, InitialInterval: time.Millisecond},
	}
	build := func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	}

	_, err := doRequestWithResilience(context.Background(), cfg, cb, build)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestCircuitBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	cb := newCircuitBreaker("client-errors")
	for i := 0; i < 10; i++ {
		_, err := cb.Execute(func() (interface{}, error) {
			return nil, &StatusError{StatusCode: http.StatusBadRequest}
		})
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.Equal(t, uint32(0), cb.Counts().TotalFailures)
}

func TestStatusError(t *testing.T) {
	err := error(&StatusError{StatusCode: 429, Reason: "slow down"})
	assert.Equal(t, "upstream status 429: slow down", err.Error())
	assert.True(t, errors.Is(err, ErrUpstream))
	assert.True(t, errors.Is(err, ErrRateLimited))

	err = &StatusError{StatusCode: 404}
	assert.Equal(t, "upstream status 404", err.Error())
	assert.False(t, errors.Is(err, ErrRateLimited))
}
