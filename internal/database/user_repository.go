package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"animebharat/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")
)

// UserRepository persists user accounts, profiles and settings.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a user repository using the given connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with the given bcrypt password hash.
func (r *UserRepository) Create(user models.User, passwordHash string) error {
	settings, err := json.Marshal(user.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}

	_, err = r.db.Exec(`
		INSERT INTO users (id, email, name, avatar, verified, password_hash, settings, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, strings.ToLower(user.Email), user.Name, user.Avatar, user.Verified,
		passwordHash, string(settings), user.CreatedAt, now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// ByID returns the user with the given ID.
func (r *UserRepository) ByID(id string) (models.User, error) {
	return r.scanOne(`SELECT id, email, name, avatar, verified, settings, created_at, updated_at
		FROM users WHERE id = ?`, id)
}

// ByEmail returns the user registered under the given email.
func (r *UserRepository) ByEmail(email string) (models.User, error) {
	return r.scanOne(`SELECT id, email, name, avatar, verified, settings, created_at, updated_at
		FROM users WHERE email = ?`, strings.ToLower(email))
}

// PasswordHash returns the stored bcrypt hash for a user.
func (r *UserRepository) PasswordHash(id string) (string, error) {
	var hash string
	err := r.db.QueryRow(`SELECT password_hash FROM users WHERE id = ?`, id).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query password hash: %w", err)
	}
	return hash, nil
}

// UpdateProfile applies a partial profile update and returns the new state.
func (r *UserRepository) UpdateProfile(id string, patch models.ProfilePatch) (models.User, error) {
	user, err := r.ByID(id)
	if err != nil {
		return models.User{}, err
	}
	user = patch.Apply(user)

	_, err = r.db.Exec(`UPDATE users SET name = ?, avatar = ?, updated_at = ? WHERE id = ?`,
		user.Name, user.Avatar, time.Now().UTC(), id)
	if err != nil {
		return models.User{}, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// UpdateSettings applies a partial settings update and returns the merged
// settings.
func (r *UserRepository) UpdateSettings(id string, patch models.SettingsPatch) (models.Settings, error) {
	user, err := r.ByID(id)
	if err != nil {
		return models.Settings{}, err
	}
	merged := patch.Apply(user.Settings)

	encoded, err := json.Marshal(merged)
	if err != nil {
		return models.Settings{}, fmt.Errorf("encode settings: %w", err)
	}
	_, err = r.db.Exec(`UPDATE users SET settings = ?, updated_at = ? WHERE id = ?`,
		string(encoded), time.Now().UTC(), id)
	if err != nil {
		return models.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return merged, nil
}

func (r *UserRepository) scanOne(query string, arg any) (models.User, error) {
	var (
		user        models.User
		rawSettings string
	)
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Email, &user.Name, &user.Avatar, &user.Verified,
		&rawSettings, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("query user: %w", err)
	}

	user.Settings = models.DefaultSettings()
	if rawSettings != "" && rawSettings != "{}" {
		if err := json.Unmarshal([]byte(rawSettings), &user.Settings); err != nil {
			return models.User{}, fmt.Errorf("decode settings: %w", err)
		}
	}
	return user, nil
}
