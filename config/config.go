// Package config reads server configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds everything the server needs at startup.
type Config struct {
	// Addr is the listen address of the HTTP facade.
	Addr string
	// DataDir holds the SQLite file, session table and backups.
	DataDir string
	// LogFile, when set, receives rotated JSON logs in addition to stderr.
	LogFile string
	// RemoteLatency is the artificial delay of the simulated remote store.
	RemoteLatency time.Duration
}

// Load reads configuration from ANIMEBHARAT_* environment variables,
// falling back to defaults suited to a local device backend.
func Load() Config {
	cfg := Config{
		Addr:          getEnv("ANIMEBHARAT_ADDR", ":8085"),
		DataDir:       getEnv("ANIMEBHARAT_DATA_DIR", defaultDataDir()),
		LogFile:       os.Getenv("ANIMEBHARAT_LOG_FILE"),
		RemoteLatency: 300 * time.Millisecond,
	}

	if v := os.Getenv("ANIMEBHARAT_REMOTE_LATENCY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.RemoteLatency = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg
}

// DatabasePath is the location of the SQLite file inside DataDir.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "app.db")
}

// BackupDir is where user-data snapshots are written.
func (c Config) BackupDir() string {
	return filepath.Join(c.DataDir, "backups")
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".animebharat")
	}
	return "data"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
