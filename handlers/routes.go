package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"animebharat/api"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Auth          *AuthHandler
	Catalog       *CatalogHandler
	Library       *LibraryHandler
	History       *HistoryHandler
	Settings      *SettingsHandler
	Notifications *NotificationsHandler
	Backup        *BackupHandler
	Navigation    *NavigationHandler

	AuthMiddleware mux.MiddlewareFunc
	LoginLimiter   *api.IPRateLimiter
}

// RegisterRoutes mounts the API surface on the router. Catalog and
// navigation are public; everything identity-scoped sits behind the auth
// middleware, and credential endpoints behind the per-IP rate limiter.
func RegisterRoutes(r *mux.Router, d Deps) {
	apiRouter := r.PathPrefix("/api").Subrouter()

	apiRouter.HandleFunc("/auth/login",
		api.RateLimitHandlerFunc(d.LoginLimiter, d.Auth.Login)).Methods(http.MethodPost, http.MethodOptions)
	apiRouter.HandleFunc("/auth/register",
		api.RateLimitHandlerFunc(d.LoginLimiter, d.Auth.Register)).Methods(http.MethodPost, http.MethodOptions)

	apiRouter.HandleFunc("/catalog", d.Catalog.List).Methods(http.MethodGet)
	apiRouter.HandleFunc("/catalog/{slug}", d.Catalog.Detail).Methods(http.MethodGet)
	apiRouter.HandleFunc("/catalog/{slug}/episodes/{episode}", d.Catalog.Episode).Methods(http.MethodGet)

	apiRouter.HandleFunc("/view", d.Navigation.Current).Methods(http.MethodGet)
	apiRouter.HandleFunc("/navigate", d.Navigation.Navigate).Methods(http.MethodPost, http.MethodOptions)

	authed := apiRouter.NewRoute().Subrouter()
	authed.Use(d.AuthMiddleware)

	authed.HandleFunc("/auth/me", d.Auth.Me).Methods(http.MethodGet)
	authed.HandleFunc("/auth/logout", d.Auth.Logout).Methods(http.MethodPost, http.MethodOptions)

	authed.HandleFunc("/library", d.Library.List).Methods(http.MethodGet)
	authed.HandleFunc("/library", d.Library.Add).Methods(http.MethodPost, http.MethodOptions)
	authed.HandleFunc("/library/{animeID}", d.Library.SetStatus).Methods(http.MethodPut)
	authed.HandleFunc("/library/{animeID}", d.Library.Remove).Methods(http.MethodDelete, http.MethodOptions)

	authed.HandleFunc("/watchlist", d.Library.WatchList).Methods(http.MethodGet)
	authed.HandleFunc("/watchlist/{animeID}", d.Library.AddToWatchList).Methods(http.MethodPost, http.MethodOptions)

	authed.HandleFunc("/favorites", d.Library.Favorites).Methods(http.MethodGet)
	authed.HandleFunc("/favorites/{animeID}/toggle", d.Library.ToggleFavorite).Methods(http.MethodPost, http.MethodOptions)

	authed.HandleFunc("/history", d.History.List).Methods(http.MethodGet)
	authed.HandleFunc("/history/continue", d.History.ContinueWatching).Methods(http.MethodGet)
	authed.HandleFunc("/history/progress", d.History.RecordProgress).Methods(http.MethodPost, http.MethodOptions)

	authed.HandleFunc("/settings", d.Settings.Get).Methods(http.MethodGet)
	authed.HandleFunc("/settings", d.Settings.Update).Methods(http.MethodPatch, http.MethodOptions)
	authed.HandleFunc("/profile", d.Settings.UpdateProfile).Methods(http.MethodPatch, http.MethodOptions)

	authed.HandleFunc("/notifications", d.Notifications.List).Methods(http.MethodGet)

	authed.HandleFunc("/backups", d.Backup.Create).Methods(http.MethodPost, http.MethodOptions)
	authed.HandleFunc("/backups", d.Backup.List).Methods(http.MethodGet)
	authed.HandleFunc("/backups/{name}/verify", d.Backup.Verify).Methods(http.MethodPost, http.MethodOptions)
	authed.HandleFunc("/backups/{name}", d.Backup.Delete).Methods(http.MethodDelete, http.MethodOptions)
}
