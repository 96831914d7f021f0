// Package appstate owns the single per-session user state: who is signed in,
// their library and favorites, and their settings. It is the only place that
// mutates this state. Mutations are optimistic: they apply locally first,
// then reconcile with the remote collaborator, rolling back on failure.
package appstate

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"animebharat/models"
	"animebharat/services/remote"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyInList    = errors.New("title already in watch list")
	ErrNotInLibrary     = errors.New("title not in library")
	ErrInvalidFolder    = errors.New("unknown list folder")
)

const remoteTimeout = 10 * time.Second

// remoteClient is the slice of the persistence collaborator this package
// consumes.
type remoteClient interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, name, email, password string) (models.User, error)
	User(ctx context.Context, id string) (models.User, error)
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (models.User, error)
	UpdateSettings(ctx context.Context, userID string, patch models.SettingsPatch) (models.Settings, error)
	Library(ctx context.Context, userID string) ([]models.LibraryEntry, error)
	UpsertLibraryEntry(ctx context.Context, userID string, entry models.LibraryEntry) error
	RemoveLibraryEntry(ctx context.Context, userID, animeID string) error
	Favorites(ctx context.Context, userID string) ([]string, error)
	SetFavorite(ctx context.Context, userID, animeID string, favorite bool) error
	History(ctx context.Context, userID string) ([]models.HistoryItem, error)
}

var _ remoteClient = (*remote.Client)(nil)

type notifier interface {
	Success(message string) models.Toast
	Error(message string) models.Toast
	Info(message string) models.Toast
}

// progressTracker is notified when the signed-in user changes so it can
// adopt or drop that user's history.
type progressTracker interface {
	Load(userID string, items []models.HistoryItem)
	Reset()
}

// State is the owned session state container. All reads and mutations go
// through its methods; there is no ambient global state.
type State struct {
	remote  remoteClient
	toasts  notifier
	tracker progressTracker
	logger  *slog.Logger

	mu        sync.RWMutex
	gen       uint64 // session generation, bumped on login/logout
	user      *models.User
	library   map[string]models.LibraryEntry
	favorites map[string]struct{}
	seqs      map[string]uint64 // per-key sequence of locally applied writes

	wg conc.WaitGroup
}

// New creates the session state container.
func New(remoteClient remoteClient, toasts notifier, tracker progressTracker, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		remote:    remoteClient,
		toasts:    toasts,
		tracker:   tracker,
		logger:    logger,
		library:   make(map[string]models.LibraryEntry),
		favorites: make(map[string]struct{}),
		seqs:      make(map[string]uint64),
	}
}

// Wait blocks until every issued remote effect has settled.
func (s *State) Wait() {
	s.wg.Wait()
}

// Login authenticates against the remote and, on success, makes the user
// the active session and loads their data in the background.
func (s *State) Login(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.remote.Login(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}
	s.adoptUser(user)
	s.toasts.Success("Welcome back, " + user.Name)
	return user, nil
}

// Register creates an account and signs it in.
func (s *State) Register(ctx context.Context, name, email, password string) (models.User, error) {
	user, err := s.remote.Register(ctx, name, email, password)
	if err != nil {
		return models.User{}, err
	}
	s.adoptUser(user)
	s.toasts.Success("Welcome, " + user.Name)
	return user, nil
}

// Resume restores a previously authenticated user, e.g. from a stored
// session token at startup.
func (s *State) Resume(ctx context.Context, userID string) (models.User, error) {
	user, err := s.remote.User(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	s.adoptUser(user)
	return user, nil
}

// Logout clears the session state. The remote copy of the user's data is
// untouched.
func (s *State) Logout() {
	s.mu.Lock()
	s.gen++
	s.user = nil
	s.library = make(map[string]models.LibraryEntry)
	s.favorites = make(map[string]struct{})
	s.seqs = make(map[string]uint64)
	s.mu.Unlock()

	s.tracker.Reset()
}

func (s *State) adoptUser(user models.User) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.user = &user
	s.library = make(map[string]models.LibraryEntry)
	s.favorites = make(map[string]struct{})
	s.seqs = make(map[string]uint64)
	s.mu.Unlock()

	s.tracker.Reset()
	s.wg.Go(func() { s.loadUserData(user.ID, gen) })
}

// loadUserData fetches the user's remote state. Results are adopted only if
// the session generation is unchanged, so a read finishing after a newer
// login or logout never overwrites that session's data.
func (s *State) loadUserData(userID string, gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	entries, err := s.remote.Library(ctx, userID)
	if err == nil {
		var favs []string
		favs, err = s.remote.Favorites(ctx, userID)
		if err == nil {
			var hist []models.HistoryItem
			hist, err = s.remote.History(ctx, userID)
			if err == nil {
				s.mu.Lock()
				if s.gen != gen {
					s.mu.Unlock()
					return
				}
				for _, e := range entries {
					s.library[e.AnimeID] = e
				}
				for _, id := range favs {
					s.favorites[id] = struct{}{}
				}
				s.mu.Unlock()
				s.tracker.Load(userID, hist)
				return
			}
		}
	}

	s.logger.Warn("failed to load user data", "user", userID, "error", err)
	s.toasts.Error("Failed to load your library")
}

// User returns a copy of the signed-in user.
func (s *State) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a user is signed in.
func (s *State) IsAuthenticated() bool {
	_, ok := s.User()
	return ok
}

// Library returns the library entries ordered by when they were added.
func (s *State) Library() []models.LibraryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.LibraryEntry, 0, len(s.library))
	for _, e := range s.library {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].AnimeID < out[j].AnimeID
	})
	return out
}

// Entry returns the library entry for a title, if any.
func (s *State) Entry(animeID string) (models.LibraryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.library[animeID]
	return e, ok
}

// Favorites returns the IDs of favorite titles in stable order.
func (s *State) Favorites() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsFavorite reports whether a title is a favorite.
func (s *State) IsFavorite(animeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[animeID]
	return ok
}
