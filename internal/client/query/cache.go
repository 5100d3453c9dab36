// Package query caches the results of read calls for a short staleness
// window and retries failed fetches with exponential backoff.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/preranah7/archweekly/internal/client/client"
	"github.com/preranah7/archweekly/internal/logging"
	"github.com/sethvargo/go-retry"
)

const (
	DefaultStaleTime  = 5 * time.Minute
	DefaultRetry      = 1
	DefaultRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

// Options control one fetch. StaleTime is how long a cached value is served
// without calling the fetcher; Retry is the number of extra attempts after
// a failure.
type Options struct {
	StaleTime  time.Duration
	Retry      int
	RetryDelay time.Duration
}

func DefaultOptions() Options {
	return Options{StaleTime: DefaultStaleTime, Retry: DefaultRetry, RetryDelay: DefaultRetryDelay}
}

type FetchOption func(*Options)

func WithStaleTime(d time.Duration) FetchOption {
	return func(o *Options) { o.StaleTime = d }
}

func WithRetry(n int) FetchOption {
	return func(o *Options) { o.Retry = n }
}

type entry struct {
	value     any
	fetchedAt time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	defaults Options
	logger   logging.Logger
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

type Option func(*Cache)

func WithLogger(l logging.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func New(defaults Options, opts ...Option) *Cache {
	c := &Cache{
		defaults: defaults,
		logger:   logging.Nop(),
		now:      time.Now,
		entries:  make(map[string]entry),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Key joins parts into a cache key, e.g. Key("archive", 2) is "archive/2".
func Key(parts ...any) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprint(p)
	}
	return strings.Join(s, "/")
}

// Fetch returns the cached value for key while it is fresh, and otherwise
// calls fn, retrying failures. Unauthorized errors and cancellation are
// never retried. Failed fetches leave any previous value in place.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(ctx context.Context) (T, error), opts ...FetchOption) (T, error) {
	o := c.defaults
	for _, opt := range opts {
		opt(&o)
	}

	if v, ok := c.lookup(key, o.StaleTime); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}

	var (
		out      T
		attempts int
	)
	err := retry.Do(ctx, backoff(o), func(ctx context.Context) error {
		attempts++
		v, err := fn(ctx)
		if err != nil {
			if retryable(err) {
				c.logger.Debug(ctx, "fetch failed", "key", key, "attempt", attempts, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	c.store(key, out)
	return out, nil
}

func backoff(o Options) retry.Backoff {
	delay := o.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}
	retries := o.Retry
	if retries < 0 {
		retries = 0
	}
	b := retry.NewExponential(delay)
	b = retry.WithCappedDuration(maxRetryDelay, b)
	return retry.WithMaxRetries(uint64(retries), b)
}

func retryable(err error) bool {
	return !errors.Is(err, client.ErrUnauthorized) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func (c *Cache) lookup(key string, staleTime time.Duration) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.fetchedAt) >= staleTime {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: v, fetchedAt: c.now()}
}

// Invalidate drops every entry whose key is prefix or starts with
// prefix + "/".
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k == prefix || strings.HasPrefix(k, prefix+"/") {
			delete(c.entries, k)
		}
	}
}

// Reset drops everything.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
