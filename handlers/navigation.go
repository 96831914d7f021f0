package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"animebharat/models"
	"animebharat/services/navigation"
)

type viewService interface {
	Current() models.View
	SetView(next models.View) (models.View, error)
	Navigate(route string) (models.View, error)
}

var _ viewService = (*navigation.Service)(nil)

// NavigationHandler exposes the view state machine to the UI shell.
type NavigationHandler struct {
	Views viewService
}

func NewNavigationHandler(views viewService) *NavigationHandler {
	return &NavigationHandler{Views: views}
}

func (h *NavigationHandler) Current(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Views.Current())
}

// Navigate transitions the active view, either from a raw route string or
// from an explicit view descriptor.
func (h *NavigationHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Route string       `json:"route,omitempty"`
		View  *models.View `json:"view,omitempty"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		view models.View
		err  error
	)
	if body.View != nil {
		view, err = h.Views.SetView(*body.View)
	} else {
		view, err = h.Views.Navigate(body.Route)
	}
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, navigation.ErrUnknownTitle) || errors.Is(err, navigation.ErrUnknownEpisode) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
