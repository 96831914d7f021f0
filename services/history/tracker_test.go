package history_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"animebharat/catalog"
	"animebharat/models"
	"animebharat/services/history"
)

type fakeStore struct {
	mu    sync.Mutex
	calls []models.HistoryItem
	fn    func(item models.HistoryItem) error
}

func (f *fakeStore) UpsertProgress(_ context.Context, _ string, item models.HistoryItem) error {
	f.mu.Lock()
	f.calls = append(f.calls, item)
	fn := f.fn
	f.mu.Unlock()
	if fn != nil {
		return fn(item)
	}
	return nil
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeToasts struct {
	mu       sync.Mutex
	messages []string
}

func (f *fakeToasts) Error(message string) models.Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	return models.Toast{Message: message, Severity: models.ToastError}
}

func newTracker(t *testing.T, store *fakeStore, toasts *fakeToasts, window time.Duration) *history.Tracker {
	t.Helper()
	tr := history.NewTracker(store, toasts, catalog.Default(), window)
	tr.Load("user-1", nil)
	return tr
}

func TestRecordProgressCoalescesToLatest(t *testing.T) {
	store := &fakeStore{}
	tr := newTracker(t, store, &fakeToasts{}, 50*time.Millisecond)

	tr.RecordProgress("1", "aot-ep-1", 10)
	tr.RecordProgress("1", "aot-ep-1", 12)
	done := tr.RecordProgress("1", "aot-ep-1", 15)

	if err := <-done; err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	tr.Wait()

	if n := store.callCount(); n != 1 {
		t.Fatalf("expected exactly one durable write, got %d", n)
	}
	if store.calls[0].PositionSec != 15 {
		t.Fatalf("expected the latest position 15, got %d", store.calls[0].PositionSec)
	}
}

func TestLocalStateUpdatesImmediately(t *testing.T) {
	store := &fakeStore{}
	tr := newTracker(t, store, &fakeToasts{}, time.Minute)

	tr.RecordProgress("1", "aot-ep-1", 10)

	item, ok := tr.Progress("aot-ep-1")
	if !ok || item.PositionSec != 10 {
		t.Fatalf("expected immediate local update, got %+v ok=%v", item, ok)
	}
	if store.callCount() != 0 {
		t.Fatalf("durable write must wait for the flush window")
	}
}

func TestFailureRollsBackToConfirmedValue(t *testing.T) {
	store := &fakeStore{fn: func(models.HistoryItem) error { return errors.New("boom") }}
	toasts := &fakeToasts{}
	tr := history.NewTracker(store, toasts, catalog.Default(), 20*time.Millisecond)
	tr.Load("user-1", []models.HistoryItem{
		{AnimeID: "1", EpisodeID: "aot-ep-1", PositionSec: 5, UpdatedAt: time.Now().UTC()},
	})

	done := tr.RecordProgress("1", "aot-ep-1", 50)
	if err := <-done; err == nil {
		t.Fatalf("expected flush to fail")
	}
	tr.Wait()

	item, ok := tr.Progress("aot-ep-1")
	if !ok || item.PositionSec != 5 {
		t.Fatalf("expected rollback to confirmed position 5, got %+v", item)
	}
	if len(toasts.messages) == 0 {
		t.Fatalf("expected a failure toast")
	}
}

func TestStaleCompletionNeverRegressesNewerWrite(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	store := &fakeStore{}
	store.fn = func(item models.HistoryItem) error {
		if item.PositionSec == 100 {
			once.Do(func() { close(started) })
			<-release
			return errors.New("late failure")
		}
		return nil
	}

	tr := newTracker(t, store, &fakeToasts{}, 10*time.Millisecond)

	// First write flushes and then stalls inside the remote call.
	tr.RecordProgress("1", "aot-ep-1", 100)
	<-started

	// A newer write applies locally and flushes successfully.
	done := tr.RecordProgress("1", "aot-ep-1", 200)
	if err := <-done; err != nil {
		t.Fatalf("second flush failed: %v", err)
	}

	// Now the stale failure arrives. It must be discarded, not rolled back.
	close(release)
	tr.Wait()

	item, ok := tr.Progress("aot-ep-1")
	if !ok || item.PositionSec != 200 {
		t.Fatalf("local progress regressed: %+v", item)
	}
}

func TestRecordProgressWithoutUserSettlesImmediately(t *testing.T) {
	store := &fakeStore{}
	tr := history.NewTracker(store, &fakeToasts{}, catalog.Default(), time.Millisecond)

	done := tr.RecordProgress("1", "aot-ep-1", 10)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	tr.Wait()
	if store.callCount() != 0 {
		t.Fatalf("signed-out progress must not reach the remote")
	}
}

func TestContinueWatchingOrdersAndFilters(t *testing.T) {
	tr := history.NewTracker(&fakeStore{}, &fakeToasts{}, catalog.Default(), time.Minute)
	now := time.Now().UTC()
	tr.Load("user-1", []models.HistoryItem{
		// In progress, watched earlier.
		{AnimeID: "1", EpisodeID: "aot-ep-1", PositionSec: 300, UpdatedAt: now.Add(-time.Hour)},
		// Finished: no remaining time, excluded.
		{AnimeID: "2", EpisodeID: "ds-ep-1", PositionSec: 1420, UpdatedAt: now},
		// Unknown episode, excluded.
		{AnimeID: "9", EpisodeID: "ghost-ep", PositionSec: 10, UpdatedAt: now},
		// In progress, watched most recently.
		{AnimeID: "4", EpisodeID: "jjk-ep-1", PositionSec: 100, UpdatedAt: now.Add(-time.Minute)},
	})

	entries := tr.ContinueWatching()
	if len(entries) != 2 {
		t.Fatalf("expected 2 continue-watching entries, got %d", len(entries))
	}
	if entries[0].Episode.ID != "jjk-ep-1" || entries[1].Episode.ID != "aot-ep-1" {
		t.Fatalf("expected most recent first, got %+v", entries)
	}
	if entries[1].RemainingSec != 1440-300 {
		t.Fatalf("unexpected remaining seconds %d", entries[1].RemainingSec)
	}
}
