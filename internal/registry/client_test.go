package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownergraph/internal/platform/config"
	"ownergraph/pkg/platform/circuit"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.Registry{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, opts...)
}

func TestClient_Get_Success(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"company_name":"Alpha Ltd"}`))
	})

	body, err := c.Get(context.Background(), "/company/00000001")
	require.NoError(t, err)
	assert.JSONEq(t, `{"company_name":"Alpha Ltd"}`, string(body))
	assert.Equal(t, "test-key", gotAuth)
}

func TestClient_Get_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "404 maps to ErrNotFound",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNotFound)
			},
		},
		{
			name:   "401 maps to ErrUnauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnauthorized)
			},
		},
		{
			name:   "429 maps to ErrRateLimited",
			status: http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrRateLimited)
			},
		},
		{
			name:   "500 maps to StatusError with body",
			status: http.StatusInternalServerError,
			body:   "upstream broke",
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusInternalServerError, se.Status)
				assert.Equal(t, "upstream broke", se.Body)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			})
			_, err := c.Get(context.Background(), "/company/00000001")
			tt.check(t, err)
		})
	}
}

func TestClient_Get_InvalidJSONIsDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"truncated":`))
	})

	_, err := c.Get(context.Background(), "/company/00000001")
	var de *DecodeError
	assert.ErrorAs(t, err, &de)
}

func TestClient_Get_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(config.Registry{BaseURL: srv.URL, APIKey: "k", Timeout: time.Second})
	srv.Close()

	_, err := c.Get(context.Background(), "/company/00000001")
	var te *TransportError
	assert.ErrorAs(t, err, &te)
}

func TestClient_GetOptional(t *testing.T) {
	t.Run("404 is a successful empty result", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		body, err := c.GetOptional(context.Background(), "/company/00000001/capital")
		require.NoError(t, err)
		assert.Nil(t, body)
	})

	t.Run("other errors still surface", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, err := c.GetOptional(context.Background(), "/company/00000001/capital")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestClient_BreakerShortCircuits(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	b := circuit.New("registry", circuit.WithFailureThreshold(2))
	c := New(config.Registry{BaseURL: srv.URL, APIKey: "k", Timeout: time.Second}, WithBreaker(b))

	_, err := c.Get(context.Background(), "/x")
	require.Error(t, err)
	_, err = c.Get(context.Background(), "/x")
	require.Error(t, err)
	require.True(t, b.IsOpen())

	before := hits.Load()
	_, err = c.Get(context.Background(), "/x")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.Equal(t, before, hits.Load(), "open breaker must not hit the network")
}

func TestClient_BreakerRecoversAfterCooldown(t *testing.T) {
	var healthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if healthy.Load() {
			w.Write([]byte(`{"company_name":"Alpha Ltd"}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	now := time.Unix(1000, 0)
	b := circuit.New("registry",
		circuit.WithFailureThreshold(2),
		circuit.WithCooldown(30*time.Second),
		circuit.WithClock(func() time.Time { return now }),
	)
	c := New(config.Registry{BaseURL: srv.URL, APIKey: "k", Timeout: time.Second}, WithBreaker(b))

	for i := 0; i < 2; i++ {
		_, err := c.Get(context.Background(), "/x")
		require.Error(t, err)
	}
	require.True(t, b.IsOpen())

	healthy.Store(true)
	_, err := c.Get(context.Background(), "/x")
	require.ErrorIs(t, err, ErrCircuitOpen, "still short-circuited inside the cooldown window")

	now = now.Add(30 * time.Second)
	body, err := c.Get(context.Background(), "/x")
	require.NoError(t, err, "probe after the cooldown reaches the recovered upstream")
	assert.JSONEq(t, `{"company_name":"Alpha Ltd"}`, string(body))
	assert.False(t, b.IsOpen())
}

func TestClient_RateLimitDoesNotOpenBreaker(t *testing.T) {
	b := circuit.New("registry", circuit.WithFailureThreshold(1))
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, WithBreaker(b))

	_, err := c.Get(context.Background(), "/x")
	require.ErrorIs(t, err, ErrRateLimited)
	assert.False(t, b.IsOpen(), "throttling is upstream policy, not a transport fault")
}
