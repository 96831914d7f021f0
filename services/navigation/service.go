// Package navigation owns the active view: which screen is shown and its
// parameters. Views replace each other wholesale; a rejected transition
// leaves the current view untouched.
package navigation

import (
	"errors"
	"strings"
	"sync"

	"animebharat/models"
)

var (
	ErrUnknownView    = errors.New("unknown view type")
	ErrUnknownTitle   = errors.New("title not found")
	ErrUnknownEpisode = errors.New("episode not found")
)

type catalogSource interface {
	BySlugOrID(key string) (models.Anime, bool)
	Episode(titleKey, episodeKey string) (models.Anime, models.Episode, bool)
}

type authSource interface {
	IsAuthenticated() bool
}

// Service is the view state machine. Any view can transition to any other,
// subject to parameter resolution and authentication gating.
type Service struct {
	catalog catalogSource
	auth    authSource

	mu      sync.RWMutex
	current models.View
}

// NewService creates the view state machine, starting at the home view.
func NewService(catalog catalogSource, auth authSource) *Service {
	return &Service{
		catalog: catalog,
		auth:    auth,
		current: models.HomeView(),
	}
}

// Current returns the active view.
func (s *Service) Current() models.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetView transitions to the given view. Parameterized views are rejected,
// keeping the previous view, when their title or episode does not resolve
// in the catalog. Identity-scoped views transition to the auth prompt when
// no user is signed in.
func (s *Service) SetView(next models.View) (models.View, error) {
	switch next.Type {
	case models.ViewHome, models.ViewAuth:
	case models.ViewAnimeDetail:
		if _, ok := s.catalog.BySlugOrID(next.Slug); !ok {
			return s.Current(), ErrUnknownTitle
		}
	case models.ViewWatch:
		if _, ok := s.catalog.BySlugOrID(next.Slug); !ok {
			return s.Current(), ErrUnknownTitle
		}
		if _, _, ok := s.catalog.Episode(next.Slug, next.Episode); !ok {
			return s.Current(), ErrUnknownEpisode
		}
	case models.ViewLibrary, models.ViewWatchList, models.ViewContinueWatching,
		models.ViewProfile, models.ViewSettings, models.ViewNotifications:
	default:
		return s.Current(), ErrUnknownView
	}

	if next.RequiresAuth() && !s.auth.IsAuthenticated() {
		next = models.AuthView()
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	return next, nil
}

// Navigate parses a route string and transitions to the view it names.
func (s *Service) Navigate(route string) (models.View, error) {
	return s.SetView(ParseRoute(route))
}

// ParseRoute turns a slash-delimited navigation fragment into a view.
// Unknown or malformed input resolves to the home view.
func ParseRoute(route string) models.View {
	route = strings.TrimPrefix(strings.TrimSpace(route), "#")
	route = strings.Trim(route, "/")
	if route == "" {
		return models.HomeView()
	}

	parts := strings.Split(route, "/")
	switch parts[0] {
	case "home":
		return models.HomeView()
	case "auth", "login":
		return models.AuthView()
	case "anime":
		if len(parts) == 2 && parts[1] != "" {
			return models.DetailView(parts[1])
		}
	case "watch":
		if len(parts) == 3 && parts[1] != "" && parts[2] != "" {
			return models.WatchView(parts[1], parts[2])
		}
	case "library":
		return models.View{Type: models.ViewLibrary}
	case "watch-list":
		return models.View{Type: models.ViewWatchList}
	case "continue-watching":
		return models.View{Type: models.ViewContinueWatching}
	case "profile":
		return models.View{Type: models.ViewProfile}
	case "settings":
		return models.View{Type: models.ViewSettings}
	case "notifications":
		return models.View{Type: models.ViewNotifications}
	}
	return models.HomeView()
}
