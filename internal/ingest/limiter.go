package ingest

// limiter.go bounds concurrent upload processing. Each upload is one
// sequential, CPU-bound unit of work; the semaphore keeps a burst of
// simultaneous uploads from exhausting memory and pool connections. When all
// slots are taken, callers wait up to maxWait before giving up with
// ErrTooManyUploads.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyUploads is returned when no upload slot frees up within the wait
// window. Clients should retry after a short delay.
var ErrTooManyUploads = errors.New("too many concurrent uploads, please try again later")

const (
	defaultMaxConcurrent = 5
	defaultMaxWait       = 30 * time.Second
)

// limiter is a counting semaphore over upload slots.
type limiter struct {
	slots   chan struct{}
	maxWait time.Duration

	mu     sync.RWMutex
	active int
}

func newLimiter(maxConcurrent int, maxWait time.Duration) *limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	if maxWait <= 0 {
		maxWait = defaultMaxWait
	}
	return &limiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// acquire takes an upload slot, waiting up to maxWait. The caller must
// release exactly once on success.
func (l *limiter) acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyUploads
	}
}

func (l *limiter) release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	<-l.slots
}

func (l *limiter) activeCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// waitForDrain blocks until no uploads are active or the context ends.
// Used during graceful shutdown.
func (l *limiter) waitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.activeCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
