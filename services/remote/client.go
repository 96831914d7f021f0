// Package remote is the persistence collaborator the application core talks
// to. There is no real backend: calls go to the local SQLite store, but every
// call crosses a simulated network boundary with configurable latency and an
// injectable failure hook, so the core can never assume a call completes
// synchronously or succeeds.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"animebharat/internal/database"
	"animebharat/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
)

// Option configures a Client.
type Option func(*Client)

// WithLatency sets the artificial delay applied to every call.
func WithLatency(d time.Duration) Option {
	return func(c *Client) { c.latency = d }
}

// WithFailureHook installs a hook consulted before every call; a non-nil
// return fails the call with that error. Used by tests to simulate outages.
func WithFailureHook(hook func(op string) error) Option {
	return func(c *Client) { c.failHook = hook }
}

// Client bundles the remote operations offered to the application core.
type Client struct {
	db       *database.DB
	latency  time.Duration
	failHook func(op string) error
}

// New creates a remote client over the given store.
func New(db *database.DB, opts ...Option) *Client {
	c := &Client{db: db, latency: 300 * time.Millisecond}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call simulates the network boundary: latency first, then the failure hook.
func (c *Client) call(ctx context.Context, op string) error {
	if c.latency > 0 {
		timer := time.NewTimer(c.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if c.failHook != nil {
		if err := c.failHook(op); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// Login authenticates a user by email and password.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := c.call(ctx, "login"); err != nil {
		return models.User{}, err
	}

	user, err := c.db.Users.ByEmail(email)
	if errors.Is(err, database.ErrUserNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	hash, err := c.db.Users.PasswordHash(user.ID)
	if err != nil {
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a new user account with default settings.
func (c *Client) Register(ctx context.Context, name, email, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	switch {
	case name == "":
		return models.User{}, ErrNameRequired
	case email == "":
		return models.User{}, ErrEmailRequired
	case password == "":
		return models.User{}, ErrPasswordRequired
	}

	if err := c.call(ctx, "register"); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     name,
		Avatar:   "https://picsum.photos/seed/" + uuid.NewString() + "/200/200",
		Settings: models.DefaultSettings(),
	}
	if err := c.db.Users.Create(user, string(hash)); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// User fetches a user by ID.
func (c *Client) User(ctx context.Context, id string) (models.User, error) {
	if err := c.call(ctx, "get_user"); err != nil {
		return models.User{}, err
	}
	return c.db.Users.ByID(id)
}

// UpdateProfile applies a partial profile update.
func (c *Client) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (models.User, error) {
	if err := c.call(ctx, "update_profile"); err != nil {
		return models.User{}, err
	}
	return c.db.Users.UpdateProfile(userID, patch)
}

// UpdateSettings applies a partial settings update and returns the merged
// settings.
func (c *Client) UpdateSettings(ctx context.Context, userID string, patch models.SettingsPatch) (models.Settings, error) {
	if err := c.call(ctx, "update_settings"); err != nil {
		return models.Settings{}, err
	}
	return c.db.Users.UpdateSettings(userID, patch)
}

// Library fetches the user's library entries.
func (c *Client) Library(ctx context.Context, userID string) ([]models.LibraryEntry, error) {
	if err := c.call(ctx, "get_library"); err != nil {
		return nil, err
	}
	return c.db.Library.List(userID)
}

// UpsertLibraryEntry creates or updates a library entry.
func (c *Client) UpsertLibraryEntry(ctx context.Context, userID string, entry models.LibraryEntry) error {
	if err := c.call(ctx, "upsert_library_entry"); err != nil {
		return err
	}
	return c.db.Library.Upsert(userID, entry)
}

// RemoveLibraryEntry deletes a library entry.
func (c *Client) RemoveLibraryEntry(ctx context.Context, userID, animeID string) error {
	if err := c.call(ctx, "remove_library_entry"); err != nil {
		return err
	}
	_, err := c.db.Library.Remove(userID, animeID)
	return err
}

// Favorites fetches the user's favorite title IDs.
func (c *Client) Favorites(ctx context.Context, userID string) ([]string, error) {
	if err := c.call(ctx, "get_favorites"); err != nil {
		return nil, err
	}
	return c.db.Library.Favorites(userID)
}

// SetFavorite marks or unmarks a favorite.
func (c *Client) SetFavorite(ctx context.Context, userID, animeID string, favorite bool) error {
	if err := c.call(ctx, "set_favorite"); err != nil {
		return err
	}
	return c.db.Library.SetFavorite(userID, animeID, favorite)
}

// History fetches the user's progress records, most recent first.
func (c *Client) History(ctx context.Context, userID string) ([]models.HistoryItem, error) {
	if err := c.call(ctx, "get_history"); err != nil {
		return nil, err
	}
	return c.db.History.List(userID)
}

// UpsertProgress durably records a playback position.
func (c *Client) UpsertProgress(ctx context.Context, userID string, item models.HistoryItem) error {
	if err := c.call(ctx, "upsert_progress"); err != nil {
		return err
	}
	return c.db.History.Upsert(userID, item)
}
