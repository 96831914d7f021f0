package backup_test

import (
	"context"
	"encoding/json"
	"path"
	"testing"
	"time"

	"github.com/spf13/afero"

	"animebharat/models"
	"animebharat/services/backup"
)

type stubSource struct {
	user      models.User
	library   []models.LibraryEntry
	favorites []string
	history   []models.HistoryItem
}

func (s stubSource) User(context.Context, string) (models.User, error) { return s.user, nil }
func (s stubSource) Library(context.Context, string) ([]models.LibraryEntry, error) {
	return s.library, nil
}
func (s stubSource) Favorites(context.Context, string) ([]string, error) { return s.favorites, nil }
func (s stubSource) History(context.Context, string) ([]models.HistoryItem, error) {
	return s.history, nil
}

func testSource() stubSource {
	return stubSource{
		user: models.User{ID: "user-1", Name: "Rohan", Email: "user@animebharat.com", Settings: models.DefaultSettings()},
		library: []models.LibraryEntry{
			{AnimeID: "1", Folder: models.FolderWatching, AddedAt: time.Now().UTC()},
		},
		favorites: []string{"4"},
		history: []models.HistoryItem{
			{AnimeID: "1", EpisodeID: "aot-ep-1", PositionSec: 300, UpdatedAt: time.Now().UTC()},
		},
	}
}

func TestExportWritesSnapshotWithManifest(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc, err := backup.NewService(fs, "backups", testSource())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	info, err := svc.Export(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if info.Size == 0 {
		t.Fatal("expected a non-empty snapshot")
	}

	data, err := afero.ReadFile(fs, path.Join("backups", info.Name, "manifest.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var manifest backup.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if manifest.UserID != "user-1" {
		t.Errorf("manifest user %q", manifest.UserID)
	}
	for _, name := range []string{"user.json", "settings.json", "library.json", "favorites.json", "history.json"} {
		if _, ok := manifest.Files[name]; !ok {
			t.Errorf("manifest missing %s", name)
		}
	}
}

func TestExportRoundTripsLibrary(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := testSource()
	svc, err := backup.NewService(fs, "backups", src)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	info, err := svc.Export(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := afero.ReadFile(fs, path.Join("backups", info.Name, "library.json"))
	if err != nil {
		t.Fatalf("read library: %v", err)
	}
	var library []models.LibraryEntry
	if err := json.Unmarshal(data, &library); err != nil {
		t.Fatalf("decode library: %v", err)
	}
	if len(library) != 1 || library[0].AnimeID != "1" || library[0].Folder != models.FolderWatching {
		t.Fatalf("library did not round-trip: %+v", library)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc, err := backup.NewService(fs, "backups", testSource())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	info, err := svc.Export(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if err := svc.Verify(info.Name); err != nil {
		t.Fatalf("expected pristine snapshot to verify: %v", err)
	}

	target := path.Join("backups", info.Name, "favorites.json")
	if err := afero.WriteFile(fs, target, []byte(`["666"]`), 0o644); err != nil {
		t.Fatalf("tamper write failed: %v", err)
	}
	if err := svc.Verify(info.Name); err == nil {
		t.Fatal("expected verification to fail after tampering")
	}
}

func TestListAndDelete(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc, err := backup.NewService(fs, "backups", testSource())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	info, err := svc.Export(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	snapshots, err := svc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(snapshots) != 1 || snapshots[0].Name != info.Name {
		t.Fatalf("unexpected snapshot list %+v", snapshots)
	}

	if err := svc.Delete(info.Name); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	snapshots, err = svc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(snapshots) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", snapshots)
	}
}
