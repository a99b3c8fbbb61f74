package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/upliftapp/gymstatus/internal/logging"
	"golang.org/x/sync/singleflight"
)

type FetchFunc[T any] func(ctx context.Context) (T, error)

// flight is a fetch in progress, shared through the singleflight group under key.
// Every flight gets a key of its own, so a superseded flight is never joined.
type flight struct {
	key        string
	generation uint64

	// Callers that joined after the flight started. Guarded by the cache lock.
	waiters int
}

type cacheEntry[T any] interface {
	isCacheEntry()
}

type emptyEntry[T any] struct{}

type inProgressEntry[T any] struct {
	flight *flight
}

type readyEntry[T any] struct {
	value     T
	fetchedAt time.Time
}

func (emptyEntry[T]) isCacheEntry()      {}
func (inProgressEntry[T]) isCacheEntry() {}
func (readyEntry[T]) isCacheEntry()      {}

// SingleFlightCache holds a single value produced by fetch.
//
// At most one fetch runs at a time; concurrent callers share its outcome.
// A successful result is served until ttl has elapsed since it was fetched.
// Failures are never cached.
type SingleFlightCache[T any] struct {
	name    string
	ttl     time.Duration
	fetch   FetchFunc[T]
	nowFunc func() time.Time

	group singleflight.Group

	lock  sync.Mutex
	entry cacheEntry[T]
	// Bumped whenever a flight starts or the cache is invalidated.
	// A flight only settles the entry if the generation is unchanged.
	generation uint64
}

func NewSingleFlightCache[T any](name string, ttl time.Duration, fetch FetchFunc[T], nowFunc func() time.Time) *SingleFlightCache[T] {
	return &SingleFlightCache[T]{
		name:    name,
		ttl:     ttl,
		fetch:   fetch,
		nowFunc: nowFunc,

		entry: emptyEntry[T]{},
	}
}

// Fetch returns the cached value if it is fresh, joins the running fetch if there
// is one, and otherwise starts a new fetch.
//
// The fetch runs to completion even if every caller stops waiting for it.
// Errors from the fetch function are returned unchanged.
func (c *SingleFlightCache[T]) Fetch(ctx context.Context) (T, error) {
	logger := logging.FromContext(ctx).With(slog.String("cache", c.name))

	c.lock.Lock()
	switch entry := c.entry.(type) {
	case readyEntry[T]:
		age := c.nowFunc().Sub(entry.fetchedAt)
		if age < c.ttl {
			c.lock.Unlock()
			logger.InfoContext(ctx, "Fetching from cache", "result", "hit", "age", age.String())
			recordLookup(ctx, c.name, "hit")
			return entry.value, nil
		}
	case inProgressEntry[T]:
		// The flight settles the entry before its call leaves the group,
		// so this always joins the running call
		entry.flight.waiters++
		results := c.group.DoChan(entry.flight.key, c.flightFunc(context.WithoutCancel(ctx), logger, entry.flight))
		c.lock.Unlock()
		logger.InfoContext(ctx, "Fetching from cache", "result", "join")
		recordLookup(ctx, c.name, "join")
		return waitFor[T](ctx, results)
	}

	if err := ctx.Err(); err != nil {
		c.lock.Unlock()
		var empty T
		return empty, err
	}

	c.generation++
	f := &flight{
		key:        strconv.FormatUint(c.generation, 10),
		generation: c.generation,
	}
	c.entry = inProgressEntry[T]{flight: f}
	// DoChan does not block, so starting the flight is atomic with the state change
	results := c.group.DoChan(f.key, c.flightFunc(context.WithoutCancel(ctx), logger, f))
	c.lock.Unlock()

	logger.InfoContext(ctx, "Fetching from cache", "result", "miss")
	recordLookup(ctx, c.name, "miss")

	return waitFor[T](ctx, results)
}

// Invalidate empties the cache. A fetch that is already running is not cancelled,
// but its result will not be stored.
func (c *SingleFlightCache[T]) Invalidate() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.generation++
	c.entry = emptyEntry[T]{}
}

func (c *SingleFlightCache[T]) flightFunc(ctx context.Context, logger *slog.Logger, f *flight) func() (any, error) {
	return func() (any, error) {
		start := time.Now()
		value, err := c.safeFetch(ctx)

		c.lock.Lock()
		superseded := c.generation != f.generation
		switch {
		case superseded:
			// Invalidated or replaced while running, leave the entry alone
		case err != nil:
			c.entry = emptyEntry[T]{}
		default:
			c.entry = readyEntry[T]{value: value, fetchedAt: c.nowFunc()}
		}
		waiters := f.waiters
		c.lock.Unlock()

		logger.InfoContext(
			ctx,
			"Cache fetch settled",
			slog.Bool("success", err == nil),
			slog.Bool("superseded", superseded),
			slog.Int("waiters", waiters),
			slog.Duration("duration", time.Since(start)),
		)
		recordSettle(ctx, c.name, err == nil, superseded)

		return value, err
	}
}

// singleflight re-panics a DoChan panic on a goroutine nobody can recover
func (c *SingleFlightCache[T]) safeFetch(ctx context.Context) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var empty T
			value = empty
			err = fmt.Errorf("fetch for cache %s panicked: %v", c.name, r)
		}
	}()

	return c.fetch(ctx)
}

func waitFor[T any](ctx context.Context, results <-chan singleflight.Result) (T, error) {
	select {
	case result := <-results:
		// Val is an untyped nil when T is an interface and the fetch failed
		value, _ := result.Val.(T)
		return value, result.Err
	case <-ctx.Done():
		var empty T
		return empty, ctx.Err()
	}
}
