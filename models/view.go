package models

// ViewType names a screen of the application.
type ViewType string

const (
	ViewHome             ViewType = "home"
	ViewAuth             ViewType = "auth"
	ViewAnimeDetail      ViewType = "anime_detail"
	ViewWatch            ViewType = "watch"
	ViewLibrary          ViewType = "library"
	ViewWatchList        ViewType = "watch_list"
	ViewContinueWatching ViewType = "continue_watching"
	ViewProfile          ViewType = "profile"
	ViewSettings         ViewType = "settings"
	ViewNotifications    ViewType = "notifications"
)

// View is the single active screen descriptor. Exactly one view is active
// at a time; views are replaced wholesale, never partially mutated.
// Slug and Episode are only meaningful for the view types that carry them.
type View struct {
	Type    ViewType `json:"type"`
	Slug    string   `json:"slug,omitempty"`    // anime_detail, watch
	Episode string   `json:"episode,omitempty"` // watch
}

// HomeView is the default view.
func HomeView() View { return View{Type: ViewHome} }

// AuthView is the authentication prompt view.
func AuthView() View { return View{Type: ViewAuth} }

// DetailView describes the title detail screen for a slug.
func DetailView(slug string) View { return View{Type: ViewAnimeDetail, Slug: slug} }

// WatchView describes the player screen for an episode of a title.
func WatchView(slug, episode string) View {
	return View{Type: ViewWatch, Slug: slug, Episode: episode}
}

// RequiresAuth reports whether the view is identity-scoped and needs a
// signed-in user.
func (v View) RequiresAuth() bool {
	switch v.Type {
	case ViewLibrary, ViewWatchList, ViewContinueWatching, ViewProfile, ViewSettings, ViewNotifications:
		return true
	}
	return false
}
