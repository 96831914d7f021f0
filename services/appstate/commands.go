package appstate

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"

	"animebharat/models"
)

// libraryKey scopes write sequences to one title's library entry.
func libraryKey(animeID string) string { return "library/" + animeID }

// favoriteKey scopes write sequences to one title's favorite flag.
func favoriteKey(animeID string) string { return "favorite/" + animeID }

const (
	settingsKey = "settings"
	profileKey  = "profile"
)

// AddToLibrary puts a title into the given folder, moving it if it is
// already present. The change applies locally right away; the returned
// channel settles when the remote write does.
func (s *State) AddToLibrary(animeID string, folder models.ListFolder) <-chan error {
	done := make(chan error, 1)

	if !folder.Valid() {
		done <- ErrInvalidFolder
		return done
	}

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		s.toasts.Info("Please log in to manage your library")
		done <- ErrNotAuthenticated
		return done
	}
	userID := s.user.ID
	prev, had := s.library[animeID]

	entry := models.LibraryEntry{AnimeID: animeID, Folder: folder, AddedAt: time.Now().UTC()}
	if had {
		entry.AddedAt = prev.AddedAt
	}
	s.library[animeID] = entry

	key := libraryKey(animeID)
	s.seqs[key]++
	seq, gen := s.seqs[key], s.gen
	s.mu.Unlock()

	success := "Added to library"
	if had {
		success = "Moved to " + string(folder)
	}

	return s.run(done, key, seq, gen,
		func(ctx context.Context) error { return s.remote.UpsertLibraryEntry(ctx, userID, entry) },
		success, "Failed to update library",
		func() { s.restoreEntryLocked(animeID, prev, had) },
	)
}

// AddToWatchList files a title under Plan to Watch. Adding a title that is
// already in the watch list is rejected: nothing changes locally, no remote
// write is issued, and the user is told why.
func (s *State) AddToWatchList(animeID string) <-chan error {
	done := make(chan error, 1)

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		s.toasts.Info("Please log in to build a watch list")
		done <- ErrNotAuthenticated
		return done
	}
	if prev, ok := s.library[animeID]; ok && prev.Folder == models.FolderPlanToWatch {
		s.mu.Unlock()
		s.toasts.Error("Already in your watch list")
		done <- ErrAlreadyInList
		return done
	}
	userID := s.user.ID
	prev, had := s.library[animeID]

	entry := models.LibraryEntry{AnimeID: animeID, Folder: models.FolderPlanToWatch, AddedAt: time.Now().UTC()}
	if had {
		entry.AddedAt = prev.AddedAt
	}
	s.library[animeID] = entry

	key := libraryKey(animeID)
	s.seqs[key]++
	seq, gen := s.seqs[key], s.gen
	s.mu.Unlock()

	return s.run(done, key, seq, gen,
		func(ctx context.Context) error { return s.remote.UpsertLibraryEntry(ctx, userID, entry) },
		"Added to watch list", "Failed to update watch list",
		func() { s.restoreEntryLocked(animeID, prev, had) },
	)
}

// SetLibraryStatus moves an existing library entry to another folder.
func (s *State) SetLibraryStatus(animeID string, folder models.ListFolder) <-chan error {
	done := make(chan error, 1)

	if !folder.Valid() {
		done <- ErrInvalidFolder
		return done
	}

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		s.toasts.Info("Please log in to manage your library")
		done <- ErrNotAuthenticated
		return done
	}
	prev, had := s.library[animeID]
	if !had {
		s.mu.Unlock()
		s.toasts.Error("Not in your library")
		done <- ErrNotInLibrary
		return done
	}
	userID := s.user.ID

	entry := prev
	entry.Folder = folder
	s.library[animeID] = entry

	key := libraryKey(animeID)
	s.seqs[key]++
	seq, gen := s.seqs[key], s.gen
	s.mu.Unlock()

	return s.run(done, key, seq, gen,
		func(ctx context.Context) error { return s.remote.UpsertLibraryEntry(ctx, userID, entry) },
		"Moved to "+string(folder), "Failed to update library",
		func() { s.restoreEntryLocked(animeID, prev, true) },
	)
}

// RemoveFromLibrary drops a title from the library. Removing a title that
// is not there is a no-op.
func (s *State) RemoveFromLibrary(animeID string) <-chan error {
	done := make(chan error, 1)

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		s.toasts.Info("Please log in to manage your library")
		done <- ErrNotAuthenticated
		return done
	}
	prev, had := s.library[animeID]
	if !had {
		s.mu.Unlock()
		done <- nil
		return done
	}
	userID := s.user.ID
	delete(s.library, animeID)

	key := libraryKey(animeID)
	s.seqs[key]++
	seq, gen := s.seqs[key], s.gen
	s.mu.Unlock()

	return s.run(done, key, seq, gen,
		func(ctx context.Context) error { return s.remote.RemoveLibraryEntry(ctx, userID, animeID) },
		"Removed from library", "Failed to update library",
		func() { s.restoreEntryLocked(animeID, prev, true) },
	)
}

// ToggleFavorite flips a title's favorite flag.
func (s *State) ToggleFavorite(animeID string) <-chan error {
	done := make(chan error, 1)

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		s.toasts.Info("Please log in to save favorites")
		done <- ErrNotAuthenticated
		return done
	}
	userID := s.user.ID
	_, was := s.favorites[animeID]
	favorite := !was
	if favorite {
		s.favorites[animeID] = struct{}{}
	} else {
		delete(s.favorites, animeID)
	}

	key := favoriteKey(animeID)
	s.seqs[key]++
	seq, gen := s.seqs[key], s.gen
	s.mu.Unlock()

	success := "Removed from favorites"
	if favorite {
		success = "Added to favorites"
	}

	return s.run(done, key, seq, gen,
		func(ctx context.Context) error { return s.remote.SetFavorite(ctx, userID, animeID, favorite) },
		success, "Failed to update favorites",
		func() {
			if was {
				s.favorites[animeID] = struct{}{}
			} else {
				delete(s.favorites, animeID)
			}
		},
	)
}

// UpdateSettings applies a settings patch locally and persists it. On
// success the remote's merged settings are adopted.
func (s *State) UpdateSettings(patch models.SettingsPatch) <-chan error {
	done := make(chan error, 1)

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		done <- ErrNotAuthenticated
		return done
	}
	userID := s.user.ID
	prev := s.user.Settings
	s.user.Settings = patch.Apply(s.user.Settings)

	s.seqs[settingsKey]++
	seq, gen := s.seqs[settingsKey], s.gen
	s.mu.Unlock()

	return s.run(done, settingsKey, seq, gen,
		func(ctx context.Context) error {
			merged, err := s.remote.UpdateSettings(ctx, userID, patch)
			if err != nil {
				return err
			}
			s.mu.Lock()
			if s.gen == gen && s.seqs[settingsKey] == seq && s.user != nil {
				s.user.Settings = merged
			}
			s.mu.Unlock()
			return nil
		},
		"Settings updated", "Failed to update settings",
		func() {
			if s.user != nil {
				s.user.Settings = prev
			}
		},
	)
}

// UpdateProfile applies a profile patch locally and persists it.
func (s *State) UpdateProfile(patch models.ProfilePatch) <-chan error {
	done := make(chan error, 1)

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		done <- ErrNotAuthenticated
		return done
	}
	userID := s.user.ID
	prev := *s.user
	*s.user = patch.Apply(*s.user)

	s.seqs[profileKey]++
	seq, gen := s.seqs[profileKey], s.gen
	s.mu.Unlock()

	return s.run(done, profileKey, seq, gen,
		func(ctx context.Context) error {
			updated, err := s.remote.UpdateProfile(ctx, userID, patch)
			if err != nil {
				return err
			}
			s.mu.Lock()
			if s.gen == gen && s.seqs[profileKey] == seq && s.user != nil {
				*s.user = updated
			}
			s.mu.Unlock()
			return nil
		},
		"Profile updated", "Failed to update profile",
		func() {
			if s.user != nil {
				*s.user = prev
			}
		},
	)
}

// restoreEntryLocked reinstates (or re-removes) a library entry during a
// rollback. Callers hold s.mu.
func (s *State) restoreEntryLocked(animeID string, prev models.LibraryEntry, had bool) {
	if had {
		s.library[animeID] = prev
	} else {
		delete(s.library, animeID)
	}
}

// run executes a remote effect in the background. On failure the rollback
// runs only if this write is still the latest one for its key and the
// session has not changed; stale failures are discarded so they never undo
// a newer local value.
func (s *State) run(done chan error, key string, seq, gen uint64, effect func(context.Context) error, successMsg, failureMsg string, rollback func()) <-chan error {
	s.wg.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
		defer cancel()

		err := retry.Do(
			func() error { return effect(ctx) },
			retry.Attempts(2),
			retry.Delay(50*time.Millisecond),
			retry.Context(ctx),
			retry.LastErrorOnly(true),
		)

		if err != nil {
			s.mu.Lock()
			latest := s.gen == gen && s.seqs[key] == seq
			if latest {
				rollback()
			}
			s.mu.Unlock()

			s.logger.Warn("remote write failed", "key", key, "error", err)
			if latest {
				s.toasts.Error(failureMsg)
			}
		} else if successMsg != "" {
			s.toasts.Success(successMsg)
		}
		done <- err
	})
	return done
}
