package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (f *fakePruner) PruneCardViews(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, before)
	return 3, f.err
}

func (f *fakePruner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestViewPruner_PruneOnce(t *testing.T) {
	store := &fakePruner{}
	p := NewViewPruner(store, time.Hour, 30)
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	if n := p.PruneOnce(context.Background()); n != 3 {
		t.Errorf("PruneOnce() = %d, want 3", n)
	}
	want := now.AddDate(0, 0, -30)
	if !store.cutoffs[0].Equal(want) {
		t.Errorf("cutoff = %v, want %v", store.cutoffs[0], want)
	}
}

func TestViewPruner_PruneOnceError(t *testing.T) {
	store := &fakePruner{err: errors.New("db down")}
	p := NewViewPruner(store, time.Hour, 30)
	if n := p.PruneOnce(context.Background()); n != 0 {
		t.Errorf("PruneOnce() = %d, want 0 on error", n)
	}
}

func TestViewPruner_StartStopsWithContext(t *testing.T) {
	store := &fakePruner{}
	p := NewViewPruner(store, 10*time.Millisecond, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start() did not return after cancel")
	}
	if store.calls() < 2 {
		t.Errorf("calls = %d, want at least 2", store.calls())
	}
}
