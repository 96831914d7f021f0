// Package history tracks playback progress for the signed-in user. Local
// state updates on every call so the UI stays responsive; durable writes to
// the remote store are coalesced so scrubbing through an episode does not
// flood the collaborator.
package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sourcegraph/conc"

	"animebharat/models"
)

// DefaultFlushWindow is how long successive progress updates for the same
// episode are coalesced before one durable write is issued.
const DefaultFlushWindow = 3 * time.Second

const remoteTimeout = 10 * time.Second

type progressStore interface {
	UpsertProgress(ctx context.Context, userID string, item models.HistoryItem) error
}

type notifier interface {
	Error(message string) models.Toast
}

type episodeSource interface {
	Episode(titleKey, episodeKey string) (models.Anime, models.Episode, bool)
}

// ContinueEntry is a "continue watching" row: a progress record joined with
// its catalog metadata.
type ContinueEntry struct {
	Anime        models.Anime       `json:"anime"`
	Episode      models.Episode     `json:"episode"`
	Item         models.HistoryItem `json:"item"`
	RemainingSec int                `json:"remainingSec"`
}

type pendingFlush struct {
	timer   *time.Timer
	waiters []chan error
}

// Tracker owns the per-user progress records.
type Tracker struct {
	remote  progressStore
	toasts  notifier
	catalog episodeSource
	window  time.Duration

	mu        sync.Mutex
	userID    string
	items     map[string]models.HistoryItem // latest local value per episode
	confirmed map[string]models.HistoryItem // last value acknowledged by the remote
	seqs      map[string]uint64             // per-episode write sequence
	pending   map[string]*pendingFlush

	wg conc.WaitGroup
}

// NewTracker creates a progress tracker. A non-positive window uses
// DefaultFlushWindow.
func NewTracker(remote progressStore, toasts notifier, catalog episodeSource, window time.Duration) *Tracker {
	if window <= 0 {
		window = DefaultFlushWindow
	}
	return &Tracker{
		remote:    remote,
		toasts:    toasts,
		catalog:   catalog,
		window:    window,
		items:     make(map[string]models.HistoryItem),
		confirmed: make(map[string]models.HistoryItem),
		seqs:      make(map[string]uint64),
		pending:   make(map[string]*pendingFlush),
	}
}

// Load binds the tracker to a user and adopts their remote history.
func (t *Tracker) Load(userID string, items []models.HistoryItem) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTimersLocked()
	t.userID = userID
	t.items = make(map[string]models.HistoryItem, len(items))
	t.confirmed = make(map[string]models.HistoryItem, len(items))
	t.seqs = make(map[string]uint64)
	for _, item := range items {
		t.items[item.EpisodeID] = item
		t.confirmed[item.EpisodeID] = item
	}
}

// Reset clears all state on logout.
func (t *Tracker) Reset() {
	t.Load("", nil)
}

// RecordProgress updates the local position immediately and schedules a
// coalesced durable write carrying the latest value. The returned channel
// settles when that write does; calls coalesced into the same write share
// its outcome. Calls without a signed-in user settle immediately.
func (t *Tracker) RecordProgress(animeID, episodeID string, positionSec int) <-chan error {
	done := make(chan error, 1)

	t.mu.Lock()
	if t.userID == "" {
		t.mu.Unlock()
		done <- nil
		return done
	}

	t.items[episodeID] = models.HistoryItem{
		AnimeID:     animeID,
		EpisodeID:   episodeID,
		PositionSec: positionSec,
		UpdatedAt:   time.Now().UTC(),
	}
	t.seqs[episodeID]++

	p, scheduled := t.pending[episodeID]
	if !scheduled {
		p = &pendingFlush{}
		p.timer = time.AfterFunc(t.window, func() { t.flush(episodeID) })
		t.pending[episodeID] = p
	}
	p.waiters = append(p.waiters, done)
	t.mu.Unlock()

	return done
}

// flush issues the single durable write for an episode's coalescing window.
func (t *Tracker) flush(episodeID string) {
	t.mu.Lock()
	p, ok := t.pending[episodeID]
	if !ok {
		t.mu.Unlock()
		return
	}
	delete(t.pending, episodeID)

	item := t.items[episodeID]
	seq := t.seqs[episodeID]
	userID := t.userID
	waiters := p.waiters
	t.mu.Unlock()

	if userID == "" {
		settle(waiters, nil)
		return
	}

	t.wg.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		err := retry.Do(
			func() error { return t.remote.UpsertProgress(ctx, userID, item) },
			retry.Attempts(2),
			retry.Delay(50*time.Millisecond),
			retry.Context(ctx),
			retry.LastErrorOnly(true),
		)

		t.mu.Lock()
		if t.userID == userID && t.seqs[episodeID] == seq {
			if err == nil {
				t.confirmed[episodeID] = item
			} else {
				// Roll back to the last acknowledged value; a stale
				// completion (newer sequence applied) is discarded instead.
				if prev, had := t.confirmed[episodeID]; had {
					t.items[episodeID] = prev
				} else {
					delete(t.items, episodeID)
				}
			}
		} else if err == nil && t.seqs[episodeID] >= seq {
			t.confirmed[episodeID] = item
		}
		t.mu.Unlock()

		if err != nil {
			t.toasts.Error("Failed to save watch progress")
		}
		settle(waiters, err)
	})
}

func settle(waiters []chan error, err error) {
	for _, w := range waiters {
		w <- err
	}
}

// Flush forces any pending durable writes to be issued now.
func (t *Tracker) Flush() {
	t.mu.Lock()
	ids := make([]string, 0, len(t.pending))
	for id, p := range t.pending {
		p.timer.Stop()
		ids = append(ids, id)
	}
	t.mu.Unlock()

	for _, id := range ids {
		t.flush(id)
	}
}

// Wait blocks until all issued durable writes have settled.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

// Progress returns the local progress record for an episode, if any.
func (t *Tracker) Progress(episodeID string) (models.HistoryItem, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	item, ok := t.items[episodeID]
	return item, ok
}

// Items returns all local progress records, most recently updated first.
func (t *Tracker) Items() []models.HistoryItem {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.HistoryItem, 0, len(t.items))
	for _, item := range t.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].EpisodeID < out[j].EpisodeID
	})
	return out
}

// ContinueWatching joins progress records with catalog metadata, keeping
// only episodes with time remaining, most recently watched first.
func (t *Tracker) ContinueWatching() []ContinueEntry {
	entries := []ContinueEntry{}
	for _, item := range t.Items() {
		anime, ep, ok := t.catalog.Episode(item.AnimeID, item.EpisodeID)
		if !ok || ep.DurationSec <= 0 {
			continue
		}
		remaining := ep.DurationSec - item.PositionSec
		if remaining <= 0 {
			continue
		}
		entries = append(entries, ContinueEntry{
			Anime:        anime,
			Episode:      ep,
			Item:         item,
			RemainingSec: remaining,
		})
	}
	return entries
}

func (t *Tracker) stopTimersLocked() {
	for id, p := range t.pending {
		p.timer.Stop()
		settle(p.waiters, nil)
		delete(t.pending, id)
	}
}
