package database

import (
	"database/sql"
	"fmt"
	"time"

	"animebharat/models"
)

// HistoryRepository persists per-user playback progress records.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a history repository using the given connection.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// List returns the user's progress records, most recently updated first.
func (r *HistoryRepository) List(userID string) ([]models.HistoryItem, error) {
	rows, err := r.db.Query(`SELECT anime_id, episode_id, position_sec, updated_at
		FROM history_items WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	items := []models.HistoryItem{}
	for rows.Next() {
		var item models.HistoryItem
		if err := rows.Scan(&item.AnimeID, &item.EpisodeID, &item.PositionSec, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan history item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Upsert replaces the user's progress record for an episode. Records are
// superseded, never appended.
func (r *HistoryRepository) Upsert(userID string, item models.HistoryItem) error {
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(`
		INSERT INTO history_items (user_id, anime_id, episode_id, position_sec, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, episode_id) DO UPDATE SET
			anime_id = excluded.anime_id,
			position_sec = excluded.position_sec,
			updated_at = excluded.updated_at`,
		userID, item.AnimeID, item.EpisodeID, item.PositionSec, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert history item: %w", err)
	}
	return nil
}

// Get returns the progress record for a single episode, if any.
func (r *HistoryRepository) Get(userID, episodeID string) (models.HistoryItem, bool, error) {
	var item models.HistoryItem
	err := r.db.QueryRow(`SELECT anime_id, episode_id, position_sec, updated_at
		FROM history_items WHERE user_id = ? AND episode_id = ?`, userID, episodeID).
		Scan(&item.AnimeID, &item.EpisodeID, &item.PositionSec, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.HistoryItem{}, false, nil
	}
	if err != nil {
		return models.HistoryItem{}, false, fmt.Errorf("query history item: %w", err)
	}
	return item, true, nil
}
