package handlers

import (
	"encoding/json"
	"net/http"

	"animebharat/models"
	"animebharat/services/history"
)

type historyService interface {
	RecordProgress(animeID, episodeID string, positionSec int) <-chan error
	Items() []models.HistoryItem
	ContinueWatching() []history.ContinueEntry
}

var _ historyService = (*history.Tracker)(nil)

// HistoryHandler serves watch progress and the continue-watching shelf.
type HistoryHandler struct {
	Tracker historyService
}

func NewHistoryHandler(tracker historyService) *HistoryHandler {
	return &HistoryHandler{Tracker: tracker}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Tracker.Items())
}

func (h *HistoryHandler) ContinueWatching(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Tracker.ContinueWatching())
}

// RecordProgress accepts a position update. The durable write is coalesced
// in the background, so the handler acknowledges without waiting for it.
func (h *HistoryHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AnimeID     string `json:"animeId"`
		EpisodeID   string `json:"epId"`
		PositionSec int    `json:"positionSec"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.AnimeID == "" || body.EpisodeID == "" || body.PositionSec < 0 {
		http.Error(w, "animeId, epId and a non-negative positionSec are required", http.StatusBadRequest)
		return
	}

	h.Tracker.RecordProgress(body.AnimeID, body.EpisodeID, body.PositionSec)
	w.WriteHeader(http.StatusAccepted)
}
