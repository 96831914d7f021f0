package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-password/password"
	"golang.org/x/crypto/bcrypt"

	"animebharat/models"
)

// DemoEmail is the address of the account seeded on first run.
const DemoEmail = "user@animebharat.com"

// SeedDemoUser creates the demo account with a starter library and history
// when the database is empty. Returns the generated password on creation,
// or "" when the account already exists.
func (db *DB) SeedDemoUser() (string, error) {
	if _, err := db.Users.ByEmail(DemoEmail); err == nil {
		return "", nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return "", err
	}

	pw, err := password.Generate(16, 4, 0, false, false)
	if err != nil {
		return "", fmt.Errorf("generate demo password: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash demo password: %w", err)
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    DemoEmail,
		Name:     "Rohan",
		Avatar:   "https://picsum.photos/seed/rohan-avatar/200/200",
		Verified: true,
		Settings: models.DefaultSettings(),
	}
	if err := db.Users.Create(user, string(hash)); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	err = db.Library.Upsert(user.ID, models.LibraryEntry{
		AnimeID: "1", Folder: models.FolderWatching, AddedAt: now,
	})
	if err != nil {
		return "", err
	}

	history := []models.HistoryItem{
		{AnimeID: "1", EpisodeID: "aot-ep-1", PositionSec: 300, UpdatedAt: now.Add(-time.Minute)},
		{AnimeID: "2", EpisodeID: "ds-ep-1", PositionSec: 120, UpdatedAt: now},
	}
	for _, item := range history {
		if err := db.History.Upsert(user.ID, item); err != nil {
			return "", err
		}
	}

	return pw, nil
}
