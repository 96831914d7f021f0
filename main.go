package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"animebharat/api"
	"animebharat/catalog"
	"animebharat/config"
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
)

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	db, err := database.NewDB(database.Config{DatabasePath: cfg.DatabasePath()})
	if err != nil {
		return err
	}
	defer db.Close()

	if password, err := db.SeedDemoUser(); err != nil {
		logger.Warn("demo user seed failed", "error", err)
	} else if password != "" {
		// Shown once; the password is generated, not stored in plain text.
		logger.Info("demo account ready", "email", database.DemoEmail, "password", password)
	}

	client := remote.New(db, remote.WithLatency(cfg.RemoteLatency))
	queue := toasts.New(toasts.DefaultDuration)
	defer queue.Close()

	cat := catalog.Default()
	tracker := history.NewTracker(client, queue, cat, history.DefaultFlushWindow)
	state := appstate.New(client, queue, tracker, logger)

	sessionsSvc, err := sessions.NewService(cfg.DataDir, 0)
	if err != nil {
		return err
	}

	backupSvc, err := backup.NewService(afero.NewOsFs(), cfg.BackupDir(), client)
	if err != nil {
		return err
	}

	router := utils.NewRouter()
	router.Use(api.LoggingMiddleware(logger))
	handlers.RegisterRoutes(router, handlers.Deps{
		Auth:           handlers.NewAuthHandler(state, sessionsSvc),
		Catalog:        handlers.NewCatalogHandler(cat, state),
		Library:        handlers.NewLibraryHandler(state),
		History:        handlers.NewHistoryHandler(tracker),
		Settings:       handlers.NewSettingsHandler(state),
		Notifications:  handlers.NewNotificationsHandler(state, notifications.NewService(cat)),
		Backup:         handlers.NewBackupHandler(backupSvc),
		Navigation:     handlers.NewNavigationHandler(navigation.NewService(cat, state)),
		AuthMiddleware: api.AuthMiddleware(sessionsSvc),
		LoginLimiter:   api.NewIPRateLimiter(rate.Every(12*time.Second), 5),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "data_dir", cfg.DataDir)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown", "error", err)
	}

	// Drain pending optimistic writes before closing the store.
	tracker.Flush()
	tracker.Wait()
	state.Wait()
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	var w io.Writer = os.Stderr
	if cfg.LogFile != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		})
	}
	return slog.New(slog.NewJSONHandler(w, nil))
}
