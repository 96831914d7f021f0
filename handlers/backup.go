package handlers

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"

	"animebharat/api"
	"animebharat/services/backup"
)

type backupService interface {
	Export(ctx context.Context, userID string) (*backup.SnapshotInfo, error)
	List() ([]backup.SnapshotInfo, error)
	Verify(name string) error
	Delete(name string) error
}

var _ backupService = (*backup.Service)(nil)

// BackupHandler serves user-data snapshot export and management.
type BackupHandler struct {
	Service backupService
}

func NewBackupHandler(svc backupService) *BackupHandler {
	return &BackupHandler{Service: svc}
}

func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	info, err := h.Service.Export(r.Context(), api.UserID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.Service.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (h *BackupHandler) Verify(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := h.Service.Verify(name); err != nil {
		status := http.StatusConflict
		if errors.Is(err, fs.ErrNotExist) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *BackupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(mux.Vars(r)["name"]); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
