package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"animebharat/api"
	"animebharat/catalog"
	"animebharat/handlers"
	"animebharat/internal/database"
	"animebharat/services/appstate"
	"animebharat/services/backup"
	"animebharat/services/history"
	"animebharat/services/navigation"
	"animebharat/services/notifications"
	"animebharat/services/remote"
	"animebharat/services/sessions"
	"animebharat/services/toasts"
	"animebharat/utils"

	"github.com/spf13/afero"
)

// harness wires the full API surface against a temp SQLite file with zero
// remote latency.
type harness struct {
	srv   *httptest.Server
	state *appstate.State
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := database.NewDB(database.Config{DatabasePath: filepath.Join(t.TempDir(), "app.db")})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	client := remote.New(db, remote.WithLatency(time.Millisecond))
	queue := toasts.New(toasts.DefaultDuration)
	t.Cleanup(queue.Close)

	cat := catalog.Default()
	tracker := history.NewTracker(client, queue, cat, 10*time.Millisecond)
	state := appstate.New(client, queue, tracker, nil)

	sessionsSvc, err := sessions.NewService("", 0)
	if err != nil {
		t.Fatalf("sessions service: %v", err)
	}

	backupSvc, err := backup.NewService(afero.NewMemMapFs(), "backups", client)
	if err != nil {
		t.Fatalf("backup service: %v", err)
	}

	r := utils.NewRouter()
	handlers.RegisterRoutes(r, handlers.Deps{
		Auth:           handlers.NewAuthHandler(state, sessionsSvc),
		Catalog:        handlers.NewCatalogHandler(cat, state),
		Library:        handlers.NewLibraryHandler(state),
		History:        handlers.NewHistoryHandler(tracker),
		Settings:       handlers.NewSettingsHandler(state),
		Notifications:  handlers.NewNotificationsHandler(state, notifications.NewService(cat)),
		Backup:         handlers.NewBackupHandler(backupSvc),
		Navigation:     handlers.NewNavigationHandler(navigation.NewService(cat, state)),
		AuthMiddleware: api.AuthMiddleware(sessionsSvc),
		LoginLimiter:   api.NewIPRateLimiter(rate.Every(time.Millisecond), 1000),
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &harness{srv: srv, state: state}
}

func (h *harness) do(t *testing.T, method, path, token string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, h.srv.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

// register creates an account through the API and returns its token.
func (h *harness) register(t *testing.T, name, email string) string {
	t.Helper()
	resp := h.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register returned %d", resp.StatusCode)
	}
	auth := decode[struct {
		Token string `json:"token"`
	}](t, resp)
	h.state.Wait()
	return auth.Token
}
