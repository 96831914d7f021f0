package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"animebharat/api"
	"animebharat/internal/database"
	"animebharat/models"
	"animebharat/services/appstate"
	"animebharat/services/remote"
	"animebharat/services/sessions"
)

type authState interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Register(ctx context.Context, name, email, password string) (models.User, error)
	Resume(ctx context.Context, userID string) (models.User, error)
	User() (models.User, bool)
	Logout()
}

var _ authState = (*appstate.State)(nil)

type sessionService interface {
	Create(userID, userAgent, ipAddress string) (models.Session, error)
	Revoke(token string) error
}

var _ sessionService = (*sessions.Service)(nil)

// AuthHandler serves login, registration and session lifecycle.
type AuthHandler struct {
	State    authState
	Sessions sessionService
}

func NewAuthHandler(state authState, sessionsSvc sessionService) *AuthHandler {
	return &AuthHandler{State: state, Sessions: sessionsSvc}
}

type credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body credentials
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.State.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, remote.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
		http.Error(w, err.Error(), status)
		return
	}

	h.issueSession(w, r, user)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body credentials
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.State.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, remote.ErrNameRequired),
			errors.Is(err, remote.ErrEmailRequired),
			errors.Is(err, remote.ErrPasswordRequired):
			status = http.StatusBadRequest
		case errors.Is(err, database.ErrEmailExists):
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	h.issueSession(w, r, user)
}

// Me returns the signed-in user, resuming the session after a restart if
// the state container has not adopted it yet.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := api.UserID(r)

	user, ok := h.State.User()
	if !ok || user.ID != userID {
		var err error
		user, err = h.State.Resume(r.Context(), userID)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, database.ErrUserNotFound) {
				status = http.StatusNotFound
			}
			http.Error(w, err.Error(), status)
			return
		}
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session, ok := api.SessionFromRequest(r); ok {
		_ = h.Sessions.Revoke(session.Token)
	}
	h.State.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, r *http.Request, user models.User) {
	session, err := h.Sessions.Create(user.ID, r.UserAgent(), api.ClientIP(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: session.Token, User: user})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
