package handlers

import (
	"encoding/json"
	"net/http"

	"animebharat/models"
	"animebharat/services/appstate"
)

type settingsState interface {
	User() (models.User, bool)
	UpdateSettings(patch models.SettingsPatch) <-chan error
	UpdateProfile(patch models.ProfilePatch) <-chan error
}

var _ settingsState = (*appstate.State)(nil)

// SettingsHandler serves the signed-in user's settings and profile.
type SettingsHandler struct {
	State settingsState
}

func NewSettingsHandler(state settingsState) *SettingsHandler {
	return &SettingsHandler{State: state}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.State.User()
	if !ok {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user.Settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.SettingsPatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := <-h.State.UpdateSettings(patch); err != nil {
		writeStateError(w, err)
		return
	}
	user, _ := h.State.User()
	writeJSON(w, http.StatusOK, user.Settings)
}

func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch models.ProfilePatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := <-h.State.UpdateProfile(patch); err != nil {
		writeStateError(w, err)
		return
	}
	user, _ := h.State.User()
	writeJSON(w, http.StatusOK, user)
}
