package database

import (
	"database/sql"
	"fmt"
	"time"

	"animebharat/models"
)

// LibraryRepository persists per-user library entries and favorites.
type LibraryRepository struct {
	db *sql.DB
}

// NewLibraryRepository creates a library repository using the given connection.
func NewLibraryRepository(db *sql.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

// List returns the user's library entries ordered by when they were added.
func (r *LibraryRepository) List(userID string) ([]models.LibraryEntry, error) {
	rows, err := r.db.Query(`SELECT anime_id, folder, added_at FROM library_entries
		WHERE user_id = ? ORDER BY added_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("query library: %w", err)
	}
	defer rows.Close()

	entries := []models.LibraryEntry{}
	for rows.Next() {
		var e models.LibraryEntry
		if err := rows.Scan(&e.AnimeID, &e.Folder, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scan library entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Upsert creates or replaces the user's entry for a title. At most one entry
// exists per (user, title); repeated adds overwrite the folder.
func (r *LibraryRepository) Upsert(userID string, entry models.LibraryEntry) error {
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(`
		INSERT INTO library_entries (user_id, anime_id, folder, added_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, anime_id) DO UPDATE SET folder = excluded.folder`,
		userID, entry.AnimeID, entry.Folder, entry.AddedAt)
	if err != nil {
		return fmt.Errorf("upsert library entry: %w", err)
	}
	return nil
}

// Remove deletes the user's entry for a title. Returns false when no entry
// existed.
func (r *LibraryRepository) Remove(userID, animeID string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM library_entries WHERE user_id = ? AND anime_id = ?`,
		userID, animeID)
	if err != nil {
		return false, fmt.Errorf("remove library entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove library entry: %w", err)
	}
	return n > 0, nil
}

// Favorites returns the IDs of the user's favorite titles.
func (r *LibraryRepository) Favorites(userID string) ([]string, error) {
	rows, err := r.db.Query(`SELECT anime_id FROM favorites WHERE user_id = ? ORDER BY added_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetFavorite marks or unmarks a title as a favorite.
func (r *LibraryRepository) SetFavorite(userID, animeID string, favorite bool) error {
	var err error
	if favorite {
		_, err = r.db.Exec(`
			INSERT INTO favorites (user_id, anime_id, added_at) VALUES (?, ?, ?)
			ON CONFLICT(user_id, anime_id) DO NOTHING`,
			userID, animeID, time.Now().UTC())
	} else {
		_, err = r.db.Exec(`DELETE FROM favorites WHERE user_id = ? AND anime_id = ?`, userID, animeID)
	}
	if err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	return nil
}
