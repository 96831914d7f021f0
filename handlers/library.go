package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"animebharat/models"
	"animebharat/services/appstate"
)

type libraryState interface {
	Library() []models.LibraryEntry
	Entry(animeID string) (models.LibraryEntry, bool)
	Favorites() []string
	AddToLibrary(animeID string, folder models.ListFolder) <-chan error
	AddToWatchList(animeID string) <-chan error
	SetLibraryStatus(animeID string, folder models.ListFolder) <-chan error
	RemoveFromLibrary(animeID string) <-chan error
	ToggleFavorite(animeID string) <-chan error
}

var _ libraryState = (*appstate.State)(nil)

// LibraryHandler serves the signed-in user's library, watch list and
// favorites. Mutations go through the optimistic state container; the
// handler waits for the remote outcome so clients get a definitive status.
type LibraryHandler struct {
	State libraryState
}

func NewLibraryHandler(state libraryState) *LibraryHandler {
	return &LibraryHandler{State: state}
}

func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.State.Library())
}

// WatchList returns the Plan to Watch slice of the library.
func (h *LibraryHandler) WatchList(w http.ResponseWriter, r *http.Request) {
	items := []models.LibraryEntry{}
	for _, entry := range h.State.Library() {
		if entry.Folder == models.FolderPlanToWatch {
			items = append(items, entry)
		}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *LibraryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AnimeID string            `json:"animeId"`
		Folder  models.ListFolder `json:"folder"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := <-h.State.AddToLibrary(body.AnimeID, body.Folder); err != nil {
		writeStateError(w, err)
		return
	}
	entry, _ := h.State.Entry(body.AnimeID)
	writeJSON(w, http.StatusOK, entry)
}

func (h *LibraryHandler) AddToWatchList(w http.ResponseWriter, r *http.Request) {
	animeID := mux.Vars(r)["animeID"]

	if err := <-h.State.AddToWatchList(animeID); err != nil {
		writeStateError(w, err)
		return
	}
	entry, _ := h.State.Entry(animeID)
	writeJSON(w, http.StatusOK, entry)
}

func (h *LibraryHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	animeID := mux.Vars(r)["animeID"]

	var body struct {
		Folder models.ListFolder `json:"folder"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := <-h.State.SetLibraryStatus(animeID, body.Folder); err != nil {
		writeStateError(w, err)
		return
	}
	entry, _ := h.State.Entry(animeID)
	writeJSON(w, http.StatusOK, entry)
}

func (h *LibraryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	animeID := mux.Vars(r)["animeID"]

	if err := <-h.State.RemoveFromLibrary(animeID); err != nil {
		writeStateError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LibraryHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.State.Favorites())
}

func (h *LibraryHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	animeID := mux.Vars(r)["animeID"]

	if err := <-h.State.ToggleFavorite(animeID); err != nil {
		writeStateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.State.Favorites())
}

func writeStateError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, appstate.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, appstate.ErrAlreadyInList):
		status = http.StatusConflict
	case errors.Is(err, appstate.ErrNotInLibrary):
		status = http.StatusNotFound
	case errors.Is(err, appstate.ErrInvalidFolder):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}
