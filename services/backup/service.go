// Package backup exports a user's data as a JSON snapshot: profile,
// settings, library, favorites and watch history, plus a manifest with
// checksums so a snapshot can be verified before restore.
package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"time"

	"github.com/spf13/afero"

	"animebharat/models"
)

// Manifest describes the contents of one snapshot.
type Manifest struct {
	Version   string            `json:"version"`
	CreatedAt time.Time         `json:"createdAt"`
	UserID    string            `json:"userId"`
	Files     map[string]string `json:"files"` // filename -> sha256 checksum
}

// SnapshotInfo is the metadata of a snapshot on disk.
type SnapshotInfo struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Size      int64     `json:"size"`
}

// exportSource is the slice of the persistence collaborator the exporter
// reads from.
type exportSource interface {
	User(ctx context.Context, id string) (models.User, error)
	Library(ctx context.Context, userID string) ([]models.LibraryEntry, error)
	Favorites(ctx context.Context, userID string) ([]string, error)
	History(ctx context.Context, userID string) ([]models.HistoryItem, error)
}

// Service writes snapshots onto a filesystem. Handing it an in-memory
// afero.Fs keeps tests off the real disk.
type Service struct {
	fs     afero.Fs
	dir    string
	remote exportSource
}

// NewService creates the exporter rooted at dir on the given filesystem.
func NewService(fs afero.Fs, dir string, remote exportSource) (*Service, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}
	return &Service{fs: fs, dir: dir, remote: remote}, nil
}

// Export writes a snapshot of the user's data and returns its metadata.
func (s *Service) Export(ctx context.Context, userID string) (*SnapshotInfo, error) {
	user, err := s.remote.User(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	library, err := s.remote.Library(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	favorites, err := s.remote.Favorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	history, err := s.remote.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	name := fmt.Sprintf("animebharat_backup_%s", time.Now().UTC().Format("20060102-150405"))
	snapDir := path.Join(s.dir, name)
	if err := s.fs.MkdirAll(snapDir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}

	manifest := Manifest{
		Version:   "1.0",
		CreatedAt: time.Now().UTC(),
		UserID:    userID,
		Files:     make(map[string]string),
	}

	files := map[string]any{
		"user.json":      user,
		"settings.json":  user.Settings,
		"library.json":   library,
		"favorites.json": favorites,
		"history.json":   history,
	}

	var size int64
	for filename, payload := range files {
		checksum, n, err := s.writeJSON(path.Join(snapDir, filename), payload)
		if err != nil {
			_ = s.fs.RemoveAll(snapDir)
			return nil, fmt.Errorf("write %s: %w", filename, err)
		}
		manifest.Files[filename] = checksum
		size += n
	}

	if _, _, err := s.writeJSON(path.Join(snapDir, "manifest.json"), manifest); err != nil {
		_ = s.fs.RemoveAll(snapDir)
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	return &SnapshotInfo{Name: name, CreatedAt: manifest.CreatedAt, Size: size}, nil
}

// List returns the snapshots on disk, newest first.
func (s *Service) List() ([]SnapshotInfo, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	snapshots := []SnapshotInfo{}
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		snapshots = append(snapshots, SnapshotInfo{
			Name:      info.Name(),
			CreatedAt: info.ModTime().UTC(),
			Size:      info.Size(),
		})
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Name > snapshots[j].Name })
	return snapshots, nil
}

// Verify recomputes each file's checksum against the snapshot's manifest.
func (s *Service) Verify(name string) error {
	snapDir := path.Join(s.dir, name)

	data, err := afero.ReadFile(s.fs, path.Join(snapDir, "manifest.json"))
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("decode manifest: %w", err)
	}

	for filename, want := range manifest.Files {
		data, err := afero.ReadFile(s.fs, path.Join(snapDir, filename))
		if err != nil {
			return fmt.Errorf("read %s: %w", filename, err)
		}
		sum := sha256.Sum256(data)
		if got := hex.EncodeToString(sum[:]); got != want {
			return fmt.Errorf("checksum mismatch for %s", filename)
		}
	}
	return nil
}

// Delete removes a snapshot.
func (s *Service) Delete(name string) error {
	return s.fs.RemoveAll(path.Join(s.dir, name))
}

func (s *Service) writeJSON(filename string, payload any) (string, int64, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", 0, err
	}
	if err := afero.WriteFile(s.fs, filename, data, 0o644); err != nil {
		return "", 0, err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), int64(len(data)), nil
}
