// file: listview/collection_test.go
package listview

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID     string
	Status string
}

func (r row) Key() string { return r.ID }

// fakeServer is the system of record the collection fetches from.
type fakeServer struct {
	mu       sync.Mutex
	rows     []row
	fetches  int
	fetchErr error
}

func (s *fakeServer) fetch(context.Context) ([]row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return append([]row(nil), s.rows...), nil
}

func (s *fakeServer) set(id, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Status = status
		}
	}
}

type recorder struct {
	mu      sync.Mutex
	changes []Change
}

func (r *recorder) Observe(ch Change) {
	r.mu.Lock()
	r.changes = append(r.changes, ch)
	r.mu.Unlock()
}

func newFixture(t *testing.T) (*fakeServer, *Collection[row], *recorder) {
	t.Helper()
	srv := &fakeServer{rows: []row{{ID: "e1", Status: "PENDING"}, {ID: "e2", Status: "PENDING"}}}
	rec := &recorder{}
	c := New("events", "admin@civilquest.ph", srv.fetch, rec)
	require.NoError(t, c.Load(context.Background()))
	return srv, c, rec
}

func TestLoad_HoldsSnapshot(t *testing.T) {
	_, c, rec := newFixture(t)

	assert.True(t, c.IsLoaded())
	assert.Len(t, c.Items(), 2)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, Loaded, rec.changes[0].Kind)
	assert.Equal(t, "events", rec.changes[0].Collection)
}

func TestLoad_FailureKeepsPreviousSnapshot(t *testing.T) {
	srv, c, _ := newFixture(t)
	srv.fetchErr = errors.New("gateway timeout")

	err := c.Load(context.Background())

	assert.ErrorContains(t, err, "gateway timeout")
	assert.Len(t, c.Items(), 2)
}

func TestMutate_SuccessReflectsServerState(t *testing.T) {
	srv, c, rec := newFixture(t)

	var seenDuringCall string
	err := c.Mutate(context.Background(), "e1",
		func(r *row) { r.Status = "APPROVED" },
		func(context.Context) error {
			got, _ := c.Get("e1")
			seenDuringCall = got.Status
			srv.set("e1", "APPROVED")
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, "APPROVED", seenDuringCall, "patch is visible before the call settles")
	got, ok := c.Get("e1")
	require.True(t, ok)
	assert.Equal(t, "APPROVED", got.Status)
	assert.Equal(t, 2, srv.fetches, "initial load plus the reconcile fetch")

	kinds := []ChangeKind{}
	for _, ch := range rec.changes {
		kinds = append(kinds, ch.Kind)
	}
	assert.Equal(t, []ChangeKind{Loaded, Patched, Reconciled}, kinds)
	assert.False(t, rec.changes[2].Reverted)
}

func TestMutate_FailureIsRevertedByRefetch(t *testing.T) {
	srv, c, rec := newFixture(t)
	rejected := errors.New("event already approved by another admin")

	err := c.Mutate(context.Background(), "e1",
		func(r *row) { r.Status = "REJECTED" },
		func(context.Context) error { return rejected })

	assert.ErrorIs(t, err, rejected)
	got, _ := c.Get("e1")
	assert.Equal(t, "PENDING", got.Status, "server truth replaces the optimistic patch")
	assert.Equal(t, 2, srv.fetches)

	last := rec.changes[len(rec.changes)-1]
	assert.Equal(t, Reconciled, last.Kind)
	assert.True(t, last.Reverted)
	assert.ErrorIs(t, last.Err, rejected)
}

func TestMutate_NilPatchRemovesOptimistically(t *testing.T) {
	srv, c, _ := newFixture(t)

	err := c.Mutate(context.Background(), "e2", nil, func(context.Context) error {
		_, stillThere := c.Get("e2")
		assert.False(t, stillThere)
		srv.mu.Lock()
		srv.rows = srv.rows[:1]
		srv.mu.Unlock()
		return nil
	})

	require.NoError(t, err)
	assert.Len(t, c.Items(), 1)
}

func TestMutate_FailedDeleteComesBack(t *testing.T) {
	_, c, _ := newFixture(t)

	err := c.Mutate(context.Background(), "e2", nil, func(context.Context) error {
		return errors.New("forbidden")
	})

	assert.Error(t, err)
	_, ok := c.Get("e2")
	assert.True(t, ok)
}

func TestMutate_RefetchFailureKeepsPatch(t *testing.T) {
	srv, c, _ := newFixture(t)

	err := c.Mutate(context.Background(), "e1",
		func(r *row) { r.Status = "ENDED" },
		func(context.Context) error {
			srv.fetchErr = errors.New("connection reset")
			return nil
		})

	assert.ErrorContains(t, err, "refresh events")
	assert.ErrorIs(t, err, ErrRefresh)
	got, _ := c.Get("e1")
	assert.Equal(t, "ENDED", got.Status)
}

func TestMutate_CallErrorIsNotARefreshError(t *testing.T) {
	srv, c, _ := newFixture(t)

	err := c.Mutate(context.Background(), "e1",
		func(r *row) { r.Status = "ENDED" },
		func(context.Context) error {
			srv.fetchErr = errors.New("connection reset")
			return errors.New("conflict")
		})

	assert.EqualError(t, err, "conflict")
	assert.NotErrorIs(t, err, ErrRefresh)
}

func TestPatchAndRemove_UnknownID(t *testing.T) {
	_, c, _ := newFixture(t)

	assert.False(t, c.Patch("nope", func(r *row) { r.Status = "X" }))
	assert.False(t, c.Remove("nope"))
	assert.Len(t, c.Items(), 2)
}

func TestItems_ReturnsCopy(t *testing.T) {
	_, c, _ := newFixture(t)

	items := c.Items()
	items[0].Status = "MUTATED"

	got, _ := c.Get(items[0].ID)
	assert.Equal(t, "PENDING", got.Status)
}

func TestEnsureLoaded_FetchesOnce(t *testing.T) {
	srv := &fakeServer{rows: []row{{ID: "a"}}}
	c := New("points", "u", srv.fetch)

	require.NoError(t, c.EnsureLoaded(context.Background()))
	require.NoError(t, c.EnsureLoaded(context.Background()))
	assert.Equal(t, 1, srv.fetches)
}

func TestRegistry_OpenReusesAndSweeps(t *testing.T) {
	srv := &fakeServer{rows: []row{{ID: "a"}}}
	reg := NewRegistry(time.Minute)
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	c1 := Open(reg, "u1", "events", srv.fetch)
	c2 := Open(reg, "u1", "events", srv.fetch)
	assert.Same(t, c1, c2)

	_, ok := reg.Snapshot("u1", "events")
	assert.False(t, ok, "nothing to show before the first load")

	require.NoError(t, c1.Load(context.Background()))
	snap, ok := reg.Snapshot("u1", "events")
	require.True(t, ok)
	assert.Equal(t, []row{{ID: "a"}}, snap)

	Open(reg, "u2", "events", srv.fetch)
	assert.Equal(t, 2, reg.Len())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 2, reg.Sweep())
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_Drop(t *testing.T) {
	srv := &fakeServer{}
	reg := NewRegistry(time.Hour)
	Open(reg, "u1", "events", srv.fetch)
	Open(reg, "u1", "admins", srv.fetch)
	Open(reg, "u10", "events", srv.fetch)

	reg.Drop("u1")

	assert.Equal(t, 1, reg.Len())
	_, ok := reg.entries[registryKey("u10", "events")]
	assert.True(t, ok)
}

func TestRegistry_JanitorWithZeroIntervalSweepsPerTTL(t *testing.T) {
	reg := NewRegistry(10 * time.Millisecond)
	Open(reg, "u1", "events", (&fakeServer{}).fetch)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NotPanics(t, func() { reg.StartJanitor(ctx, 0) })
	assert.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 5*time.Millisecond)
}
