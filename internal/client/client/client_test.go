package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*************
 * Fakes
 *************/

type fakeTokenSource struct {
	token string
	err   error
	calls int32
}

func (f *fakeTokenSource) Token(ctx context.Context) (string, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.token, f.err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, r http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/"}, opts...)
}

/*************
 * Interceptors
 *************/

func TestClient_AttachesRequestIDAndBearerToken(t *testing.T) {
	var gotAuth, gotID, gotCT string
	r := chi.NewRouter()
	r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotID = r.Header.Get(RequestIDHeader)
		gotCT = r.Header.Get("Content-Type")
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"email": "a@b.c", "role": "admin"}})
	})

	ts := &fakeTokenSource{token: "t1"}
	c := newTestClient(t, r, WithTokenSource(ts))

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", u.Email)
	assert.True(t, u.IsAdmin())
	assert.Equal(t, "Bearer t1", gotAuth)
	assert.Len(t, gotID, 36)
	assert.Equal(t, "application/json", gotCT)
	assert.EqualValues(t, 1, atomic.LoadInt32(&ts.calls))
}

func TestClient_TokenReadAtCallTime(t *testing.T) {
	var seen []string
	r := chi.NewRouter()
	r.Get("/subscribers/count", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"activeSubscribers": 3})
	})

	ts := &fakeTokenSource{}
	c := newTestClient(t, r, WithTokenSource(ts))

	_, err := c.SubscriberCount(context.Background())
	require.NoError(t, err)

	ts.token = "later"
	_, err = c.SubscriberCount(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer later"}, seen)
}

func TestClient_TokenSourceErrorDoesNotFailRequest(t *testing.T) {
	var gotAuth string
	r := chi.NewRouter()
	r.Get("/subscribers/count", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{"activeSubscribers": 1})
	})

	c := newTestClient(t, r, WithTokenSource(&fakeTokenSource{err: errors.New("db locked")}))

	cnt, err := c.SubscriberCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cnt.ActiveSubscribers)
	assert.Empty(t, gotAuth)
}

func TestClient_CustomInterceptorsRunAfterBuiltins(t *testing.T) {
	var order []string
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	c := newTestClient(t, r,
		WithRequestInterceptor(func(req *http.Request) error {
			if req.Header.Get(RequestIDHeader) != "" {
				order = append(order, "request")
			}
			return nil
		}),
		WithResponseInterceptor(func(resp *http.Response) error {
			order = append(order, "response")
			return nil
		}),
	)

	assert.Equal(t, "ok", c.Health(context.Background()).Status)
	assert.Equal(t, []string{"request", "response"}, order)
}

func TestClient_RequestInterceptorErrorAborts(t *testing.T) {
	var hits int32
	r := chi.NewRouter()
	r.Get("/subscribers/count", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	})

	boom := errors.New("boom")
	c := newTestClient(t, r, WithRequestInterceptor(func(*http.Request) error { return boom }))

	_, err := c.SubscriberCount(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestClient_UnauthorizedHookFiresOnAny401(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/subscribers/count", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
	})
	r.Get("/system-design", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token expired"})
	})
	r.Get("/system-design/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Admin access required"})
	})

	var fired int32
	c := newTestClient(t, r, WithUnauthorizedHook(func(ctx context.Context) {
		require.NoError(t, ctx.Err())
		atomic.AddInt32(&fired, 1)
	}))

	_, err := c.SubscriberCount(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid token", apiErr.Message)

	_, err = c.SystemDesignResources(context.Background(), "all", "all")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualValues(t, 2, atomic.LoadInt32(&fired))

	// 403 is unauthorized to callers but does not end the session.
	_, err = c.SystemDesignStats(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualValues(t, 2, atomic.LoadInt32(&fired))
}

/*************
 * Errors
 *************/

func TestClient_APIErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     any
		wantMsg  string
		wantText string
	}{
		{"error field", http.StatusBadRequest, map[string]string{"error": "Email already subscribed", "message": "ignored"}, "Email already subscribed", "Email already subscribed"},
		{"message field", http.StatusNotFound, map[string]string{"message": "Not found"}, "Not found", "Not found"},
		{"no text", http.StatusInternalServerError, map[string]string{}, "", "request failed with status 500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Post("/subscribers/subscribe", func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			c := newTestClient(t, r)

			_, err := c.Subscribe(context.Background(), "a@b.c", "")
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantText, apiErr.Error())
			assert.NotErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "server says", Message(&APIError{Status: 400, Message: "server says"}, "fallback"))
	assert.Equal(t, "fallback", Message(&APIError{Status: 500}, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("dial tcp"), "fallback"))
}

func TestClient_TimeoutMapsToErrTimeout(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/newsletters/trigger", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	c := newTestClient(t, r)

	_, err := c.TriggerWorkflow(context.Background(), WithTimeout(50*time.Millisecond))
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestClient_UnreachableServerIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := New(Config{BaseURL: addr, Timeout: time.Second})
	_, err := c.LatestNewsletter(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, IsTimeout(err))
}

func TestClient_CanceledContextIsNotUnavailable(t *testing.T) {
	r := chi.NewRouter()
	c := newTestClient(t, r)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.LatestNewsletter(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestHealth_DegradesWhenDown(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newTestClient(t, r)

	h := c.Health(context.Background())
	assert.Equal(t, "error", h.Status)
	assert.Equal(t, "API is down", h.Message)
}
