// Package submission guards asynchronous form actions against double submission.
// file: submission/guard.go
package submission

import (
	"context"
	"errors"
	"strings"
	"sync"

	"civil-quest-admin/logger"
)

// ErrInFlight is returned when the same action is already running.
var ErrInFlight = errors.New("submission already in progress")

// Guard is a re-entrancy guard keyed by action. A second Run with a key that
// is still in flight is ignored, not queued. Different keys never block each
// other, so two different actions on the same entity may race.
type Guard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewGuard creates an empty guard.
func NewGuard() *Guard {
	return &Guard{inFlight: make(map[string]struct{})}
}

// Key joins the parts that identify one action, e.g. subject, action, id.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Run executes fn unless key is already in flight. The key is released when
// fn returns, whether it succeeded, failed or panicked.
func (g *Guard) Run(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if !g.acquire(key) {
		logger.Debug.Printf("[Guard.Run] ignoring %s: already in flight", key)
		return ErrInFlight
	}
	defer g.release(key)

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// InFlight reports whether key is currently running.
func (g *Guard) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.inFlight[key]
	return ok
}

func (g *Guard) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[key]; busy {
		return false
	}
	g.inFlight[key] = struct{}{}
	return true
}

func (g *Guard) release(key string) {
	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()
}
