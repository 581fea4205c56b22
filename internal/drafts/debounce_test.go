package drafts

import (
	"sync"
	"testing"
	"time"
)

type flushRecorder struct {
	mu    sync.Mutex
	calls []map[string]any
}

func (f *flushRecorder) flush(data map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, data)
}

func (f *flushRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *flushRecorder) last() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func TestDebouncerCoalescesRapidTriggers(t *testing.T) {
	t.Parallel()

	rec := &flushRecorder{}
	deb := NewDebouncer(30*time.Millisecond, rec.flush)

	deb.Trigger(map[string]any{"title": "a"})
	deb.Trigger(map[string]any{"title": "ab"})
	deb.Trigger(map[string]any{"title": "abc"})

	deadline := time.Now().Add(time.Second)
	for rec.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if got := rec.count(); got != 1 {
		t.Fatalf("expected one coalesced flush, got %d", got)
	}
	if rec.last()["title"] != "abc" {
		t.Fatalf("expected latest snapshot, got %+v", rec.last())
	}
}

func TestDebouncerFlushFiresImmediately(t *testing.T) {
	t.Parallel()

	rec := &flushRecorder{}
	deb := NewDebouncer(time.Hour, rec.flush)

	deb.Trigger(map[string]any{"title": "final"})
	deb.Flush()

	if got := rec.count(); got != 1 {
		t.Fatalf("expected immediate flush, got %d", got)
	}
}

func TestDebouncerFlushWithoutPendingIsNoop(t *testing.T) {
	t.Parallel()

	rec := &flushRecorder{}
	deb := NewDebouncer(time.Hour, rec.flush)

	deb.Flush()
	if got := rec.count(); got != 0 {
		t.Fatalf("expected no flush, got %d", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	t.Parallel()

	rec := &flushRecorder{}
	deb := NewDebouncer(20*time.Millisecond, rec.flush)

	deb.Trigger(map[string]any{"title": "never"})
	deb.Stop()

	time.Sleep(80 * time.Millisecond)
	if got := rec.count(); got != 0 {
		t.Fatalf("expected cancelled flush, got %d", got)
	}
}
