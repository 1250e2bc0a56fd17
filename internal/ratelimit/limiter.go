// Package ratelimit holds the per-caller admission policy guarding the
// contact intake. State lives in an external keyed record store - nothing is
// cached in-process, so any number of instances can serve the same keys.
package ratelimit

import (
	"context"
	"errors"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dasiyes/ivmfolio/tools/metrics"
)

// ErrNotFound is returned by a Store when no record exists for the key yet.
var ErrNotFound = errors.New("rate limit record not found")

// Record is the persistent per-key state. Field names mirror the documents
// in the `rateLimits` collection.
type Record struct {
	Count        int64     `firestore:"count" json:"count"`
	LastReset    time.Time `firestore:"lastReset" json:"lastReset"`
	Blocked      bool      `firestore:"blocked" json:"blocked"`
	BlockedUntil time.Time `firestore:"blockedUntil" json:"blockedUntil"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
}

// Store is the keyed record store behind the limiter.
type Store interface {
	Record(ctx context.Context, key string) (*Record, error)
	Create(ctx context.Context, key string, rec *Record) error
	// Reset starts a new counting window and clears any block state.
	Reset(ctx context.Context, key string, at time.Time) error
	// Block flips the record into blocked state until the given time.
	Block(ctx context.Context, key string, until time.Time) error
	// Increment adds one admitted request to the current window count.
	Increment(ctx context.Context, key string, at time.Time) error
}

type Limits struct {
	MaxRequests   int64
	Window        time.Duration
	BlockDuration time.Duration
}

// Defaults - one message per caller per day, then a day-long block.
var Defaults = Limits{
	MaxRequests:   1,
	Window:        24 * time.Hour,
	BlockDuration: 24 * time.Hour,
}

type Decision struct {
	Limited bool
	// RetryAfter is the whole number of seconds the caller should wait.
	// Zero when the request is admitted.
	RetryAfter int
}

type Limiter struct {
	store  Store
	limits Limits
	now    func() time.Time
	lgr    *log.Logger
}

func NewLimiter(store Store, limits Limits, lgr *log.Logger) *Limiter {
	if lgr == nil {
		lgr = log.New()
	}
	return &Limiter{
		store:  store,
		limits: limits,
		now:    time.Now,
		lgr:    lgr,
	}
}

// Check evaluates the admission policy for the key. Any store error fails
// open: the request is admitted and the event is counted so operators can
// see when the limiter is running blind.
func (l *Limiter) Check(ctx context.Context, key string) Decision {

	now := l.now()

	rec, err := l.store.Record(ctx, key)
	if errors.Is(err, ErrNotFound) {
		nr := Record{Count: 0, LastReset: now, Blocked: false, CreatedAt: now}
		if cerr := l.store.Create(ctx, key, &nr); cerr != nil {
			return l.failOpen(key, cerr)
		}
		return Decision{}
	}
	if err != nil {
		return l.failOpen(key, err)
	}

	// An active block rejects regardless of the counter.
	if rec.Blocked && !rec.BlockedUntil.IsZero() && now.Before(rec.BlockedUntil) {
		ra := int(math.Ceil(rec.BlockedUntil.Sub(now).Seconds()))
		return Decision{Limited: true, RetryAfter: ra}
	}

	// An elapsed window always opens a fresh one, block state included.
	if now.Sub(rec.LastReset) > l.limits.Window {
		if rerr := l.store.Reset(ctx, key, now); rerr != nil {
			return l.failOpen(key, rerr)
		}
		return Decision{}
	}

	if rec.Count >= l.limits.MaxRequests {
		until := now.Add(l.limits.BlockDuration)
		if berr := l.store.Block(ctx, key, until); berr != nil {
			return l.failOpen(key, berr)
		}
		return Decision{Limited: true, RetryAfter: int(l.limits.BlockDuration.Seconds())}
	}

	return Decision{}
}

// Consume records one admitted request. Called only after the downstream
// delivery succeeded, so a failed send never costs the caller quota. Errors
// are logged and swallowed - bookkeeping must not revert a delivered send.
func (l *Limiter) Consume(ctx context.Context, key string) {
	if err := l.store.Increment(ctx, key, l.now()); err != nil {
		l.lgr.Errorf("rate limit increment for key %q failed. error: %v", key, err)
	}
}

func (l *Limiter) failOpen(key string, err error) Decision {
	l.lgr.Warnf("rate limit store error for key %q, failing open. error: %v", key, err)
	metrics.ChRateLimitFailOpen <- 1
	return Decision{}
}
