package handlers

import (
	"net/http"

	"animebharat/models"
	"animebharat/services/notifications"
)

type digestSource interface {
	Digest(entries []models.LibraryEntry, settings models.Settings) []notifications.Alert
}

var _ digestSource = (*notifications.Service)(nil)

type notificationState interface {
	User() (models.User, bool)
	Library() []models.LibraryEntry
}

// NotificationsHandler serves the new-episode digest for the signed-in
// user's library.
type NotificationsHandler struct {
	State  notificationState
	Digest digestSource
}

func NewNotificationsHandler(state notificationState, digest digestSource) *NotificationsHandler {
	return &NotificationsHandler{State: state, Digest: digest}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.State.User()
	if !ok {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, h.Digest.Digest(h.State.Library(), user.Settings))
}
