// Package listview keeps the last fetched snapshot of an entity list and
// applies short-lived optimistic patches that a re-fetch always supersedes.
// file: listview/collection.go
package listview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"civil-quest-admin/logger"
)

// Keyed is any record with an identifier the list can match on.
type Keyed interface {
	Key() string
}

// Fetcher loads the full authoritative collection.
type Fetcher[T Keyed] func(ctx context.Context) ([]T, error)

// ChangeKind tells observers which step of the lifecycle produced a change.
type ChangeKind string

const (
	Loaded     ChangeKind = "loaded"
	Patched    ChangeKind = "patched"
	Reconciled ChangeKind = "reconciled"
)

// Change describes one snapshot update.
type Change struct {
	Kind       ChangeKind
	Collection string
	Owner      string
	TargetID   string
	Items      any
	// Err is the error of the network call for Reconciled, or of the fetch for Loaded.
	Err error
	// Reverted is set when a patch was applied, the call failed and the
	// re-fetch replaced the patch.
	Reverted bool
	Duration time.Duration
}

// ErrRefresh matches a RefreshError with errors.Is.
var ErrRefresh = errors.New("listview: refresh failed")

// RefreshError is returned by Mutate when the call succeeded but the re-fetch
// after it did not. The change is on the server; only the snapshot is stale.
type RefreshError struct {
	Collection string
	Err        error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("refresh %s: %v", e.Collection, e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }

func (e *RefreshError) Is(target error) bool { return target == ErrRefresh }

// Observer is notified after every snapshot change.
type Observer interface {
	Observe(Change)
}

// Collection holds one entity list for one owner.
type Collection[T Keyed] struct {
	name   string
	owner  string
	mu     sync.RWMutex
	items  []T
	loaded bool
	fetch  Fetcher[T]

	observers []Observer
}

// New creates an empty collection.
func New[T Keyed](name, owner string, fetch Fetcher[T], observers ...Observer) *Collection[T] {
	return &Collection[T]{name: name, owner: owner, fetch: fetch, observers: observers}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// Load fetches the full collection and replaces the snapshot. On failure the
// previous snapshot is kept.
func (c *Collection[T]) Load(ctx context.Context) error {
	items, err := c.currentFetcher()(ctx)
	if err != nil {
		logger.Warn.Printf("[Collection.Load] %s/%s fetch failed: %v", c.owner, c.name, err)
		c.notify(Change{Kind: Loaded, Err: err, Items: c.Items()})
		return fmt.Errorf("load %s: %w", c.name, err)
	}
	c.replace(items)
	c.notify(Change{Kind: Loaded, Items: c.Items()})
	return nil
}

// EnsureLoaded loads the collection unless a snapshot is already held.
func (c *Collection[T]) EnsureLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}
	return c.Load(ctx)
}

// IsLoaded reports whether a snapshot has been fetched.
func (c *Collection[T]) IsLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Items returns a copy of the snapshot.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the snapshot item with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.Key() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Patch applies fn to the item with id in place.
func (c *Collection[T]) Patch(id string, fn func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Key() == id {
			fn(&c.items[i])
			return true
		}
	}
	return false
}

// Remove drops the item with id.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Key() == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Mutate applies an optimistic change to id, runs call, then re-fetches the
// collection whether call succeeded or not. A nil patch removes the item.
// The call error wins over a re-fetch error. When only the re-fetch fails the
// result is a *RefreshError and the patched snapshot stays until the next
// successful load.
func (c *Collection[T]) Mutate(ctx context.Context, id string, patch func(*T), call func(ctx context.Context) error) error {
	var applied bool
	if patch == nil {
		applied = c.Remove(id)
	} else {
		applied = c.Patch(id, patch)
	}
	c.notify(Change{Kind: Patched, TargetID: id, Items: c.Items()})

	start := time.Now()
	callErr := call(ctx)
	elapsed := time.Since(start)
	if callErr != nil {
		logger.Warn.Printf("[Collection.Mutate] %s/%s id=%s call failed: %v", c.owner, c.name, id, callErr)
	}

	items, fetchErr := c.currentFetcher()(ctx)
	if fetchErr == nil {
		c.replace(items)
	} else {
		logger.Error.Printf("[Collection.Mutate] %s/%s re-fetch failed: %v", c.owner, c.name, fetchErr)
	}

	c.notify(Change{
		Kind:     Reconciled,
		TargetID: id,
		Items:    c.Items(),
		Err:      callErr,
		Reverted: applied && callErr != nil && fetchErr == nil,
		Duration: elapsed,
	})

	if callErr != nil {
		return callErr
	}
	if fetchErr != nil {
		return &RefreshError{Collection: c.name, Err: fetchErr}
	}
	return nil
}

// snapshot returns the items as an untyped value for JSON rendering.
func (c *Collection[T]) snapshot() any {
	return c.Items()
}

func (c *Collection[T]) setFetcher(fetch Fetcher[T]) {
	c.mu.Lock()
	c.fetch = fetch
	c.mu.Unlock()
}

func (c *Collection[T]) currentFetcher() Fetcher[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetch
}

func (c *Collection[T]) replace(items []T) {
	c.mu.Lock()
	c.items = append([]T(nil), items...)
	c.loaded = true
	c.mu.Unlock()
}

func (c *Collection[T]) notify(ch Change) {
	ch.Collection = c.name
	ch.Owner = c.owner
	for _, o := range c.observers {
		o.Observe(ch)
	}
}
