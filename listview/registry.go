// file: listview/registry.go
package listview

import (
	"context"
	"strings"
	"sync"
	"time"

	"civil-quest-admin/logger"
)

type snapshotter interface {
	snapshot() any
	IsLoaded() bool
}

type entry struct {
	coll     snapshotter
	lastUsed time.Time
}

// Registry keeps one collection per owner and name, and forgets collections
// that have not been used for ttl.
type Registry struct {
	mu        sync.Mutex
	ttl       time.Duration
	entries   map[string]*entry
	observers []Observer
	now       func() time.Time
}

// NewRegistry creates a registry whose collections notify observers.
func NewRegistry(ttl time.Duration, observers ...Observer) *Registry {
	return &Registry{
		ttl:       ttl,
		entries:   make(map[string]*entry),
		observers: observers,
		now:       time.Now,
	}
}

func registryKey(owner, name string) string {
	return owner + "|" + name
}

// Open returns the owner's collection called name, creating it on first use.
// fetch replaces the stored fetcher so a renewed session token takes effect.
func Open[T Keyed](r *Registry, owner, name string, fetch Fetcher[T]) *Collection[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey(owner, name)
	if e, ok := r.entries[key]; ok {
		if c, ok := e.coll.(*Collection[T]); ok {
			e.lastUsed = r.now()
			c.setFetcher(fetch)
			return c
		}
		logger.Warn.Printf("[Registry.Open] %s holds a different item type; replacing", key)
	}

	c := New(name, owner, fetch, r.observers...)
	r.entries[key] = &entry{coll: c, lastUsed: r.now()}
	return c
}

// Snapshot returns the loaded items of a collection as an untyped value.
func (r *Registry) Snapshot(owner, name string) (any, bool) {
	r.mu.Lock()
	e, ok := r.entries[registryKey(owner, name)]
	if ok {
		e.lastUsed = r.now()
	}
	r.mu.Unlock()

	if !ok || !e.coll.IsLoaded() {
		return nil, false
	}
	return e.coll.snapshot(), true
}

// Drop forgets every collection of owner, e.g. on logout.
func (r *Registry) Drop(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prefix := owner + "|"
	for key := range r.entries {
		if strings.HasPrefix(key, prefix) {
			delete(r.entries, key)
		}
	}
}

// Len returns the number of held collections.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep removes collections idle for longer than the ttl and returns how many went.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for key, e := range r.entries {
		if r.now().Sub(e.lastUsed) > r.ttl {
			delete(r.entries, key)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps every interval until ctx is done. A non-positive
// interval sweeps once per ttl.
func (r *Registry) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.ttl
	}
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Sweep(); n > 0 {
					logger.Info.Printf("[Registry.StartJanitor] evicted %d idle collections (ttl=%v)", n, r.ttl)
				}
			}
		}
	}()
}
