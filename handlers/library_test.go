package handlers_test

import (
	"net/http"
	"testing"

	"animebharat/models"
)

func TestLibraryAddListRemove(t *testing.T) {
	h := newHarness(t)
	token := h.register(t, "Rohan", "rohan@example.com")

	resp := h.do(t, http.MethodPost, "/api/library", token, map[string]string{
		"animeId": "1", "folder": string(models.FolderWatching),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add returned %d", resp.StatusCode)
	}
	entry := decode[models.LibraryEntry](t, resp)
	if entry.AnimeID != "1" || entry.Folder != models.FolderWatching {
		t.Fatalf("unexpected entry %+v", entry)
	}

	resp = h.do(t, http.MethodGet, "/api/library", token, nil)
	entries := decode[[]models.LibraryEntry](t, resp)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	resp = h.do(t, http.MethodDelete, "/api/library/1", token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("remove returned %d", resp.StatusCode)
	}

	resp = h.do(t, http.MethodGet, "/api/library", token, nil)
	entries = decode[[]models.LibraryEntry](t, resp)
	if len(entries) != 0 {
		t.Fatalf("expected empty library, got %+v", entries)
	}
}

func TestDuplicateWatchListAddReturnsConflict(t *testing.T) {
	h := newHarness(t)
	token := h.register(t, "Rohan", "rohan@example.com")

	resp := h.do(t, http.MethodPost, "/api/watchlist/3", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first add returned %d", resp.StatusCode)
	}

	resp = h.do(t, http.MethodPost, "/api/watchlist/3", token, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate add, got %d", resp.StatusCode)
	}
}

func TestWatchListOnlyShowsPlanToWatch(t *testing.T) {
	h := newHarness(t)
	token := h.register(t, "Rohan", "rohan@example.com")

	h.do(t, http.MethodPost, "/api/library", token, map[string]string{
		"animeId": "1", "folder": string(models.FolderWatching),
	})
	h.do(t, http.MethodPost, "/api/watchlist/3", token, nil)

	resp := h.do(t, http.MethodGet, "/api/watchlist", token, nil)
	items := decode[[]models.LibraryEntry](t, resp)
	if len(items) != 1 || items[0].AnimeID != "3" {
		t.Fatalf("unexpected watch list %+v", items)
	}
}

func TestSetStatusOnMissingEntryReturns404(t *testing.T) {
	h := newHarness(t)
	token := h.register(t, "Rohan", "rohan@example.com")

	resp := h.do(t, http.MethodPut, "/api/library/8", token, map[string]string{
		"folder": string(models.FolderCompleted),
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestFavoritesToggle(t *testing.T) {
	h := newHarness(t)
	token := h.register(t, "Rohan", "rohan@example.com")

	resp := h.do(t, http.MethodPost, "/api/favorites/5/toggle", token, nil)
	favorites := decode[[]string](t, resp)
	if len(favorites) != 1 || favorites[0] != "5" {
		t.Fatalf("unexpected favorites %+v", favorites)
	}

	resp = h.do(t, http.MethodPost, "/api/favorites/5/toggle", token, nil)
	favorites = decode[[]string](t, resp)
	if len(favorites) != 0 {
		t.Fatalf("expected favorites cleared, got %+v", favorites)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	h := newHarness(t)
	token := h.register(t, "Rohan", "rohan@example.com")

	resp := h.do(t, http.MethodPatch, "/api/settings", token, map[string]any{
		"preferredAudio": "ja",
		"autoPlay":       false,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update returned %d", resp.StatusCode)
	}

	resp = h.do(t, http.MethodGet, "/api/settings", token, nil)
	settings := decode[models.Settings](t, resp)
	if settings.PreferredAudio != models.AudioJapanese || settings.AutoPlay {
		t.Fatalf("settings did not round-trip: %+v", settings)
	}
	if !settings.AutoNext {
		t.Fatalf("untouched settings must keep their defaults: %+v", settings)
	}
}
