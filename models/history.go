package models

import "time"

// HistoryItem is the last known playback position for a specific episode.
// Repeated updates supersede the previous record, they never append.
type HistoryItem struct {
	AnimeID     string    `json:"animeId"`
	EpisodeID   string    `json:"epId"`
	PositionSec int       `json:"positionSec"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
