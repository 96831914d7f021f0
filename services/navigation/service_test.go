package navigation_test

import (
	"errors"
	"testing"

	"animebharat/catalog"
	"animebharat/models"
	"animebharat/services/navigation"
)

type stubAuth struct{ signedIn bool }

func (s stubAuth) IsAuthenticated() bool { return s.signedIn }

func TestSetViewValidatesDetailSlug(t *testing.T) {
	svc := navigation.NewService(catalog.Default(), stubAuth{signedIn: true})

	view, err := svc.SetView(models.DetailView("attack-on-titan"))
	if err != nil {
		t.Fatalf("SetView failed: %v", err)
	}
	if view.Type != models.ViewAnimeDetail || view.Slug != "attack-on-titan" {
		t.Fatalf("unexpected view %+v", view)
	}

	if _, err := svc.SetView(models.DetailView("no-such-title")); !errors.Is(err, navigation.ErrUnknownTitle) {
		t.Fatalf("expected ErrUnknownTitle, got %v", err)
	}
	if got := svc.Current(); got.Slug != "attack-on-titan" {
		t.Fatalf("rejected transition must keep previous view, got %+v", got)
	}
}

func TestWatchWithUnknownEpisodeKeepsCurrentView(t *testing.T) {
	svc := navigation.NewService(catalog.Default(), stubAuth{signedIn: true})

	if _, err := svc.SetView(models.WatchView("attack-on-titan", "aot-ep-2")); err != nil {
		t.Fatalf("SetView failed: %v", err)
	}

	_, err := svc.SetView(models.WatchView("attack-on-titan", "ds-ep-1"))
	if !errors.Is(err, navigation.ErrUnknownEpisode) {
		t.Fatalf("expected ErrUnknownEpisode, got %v", err)
	}
	if got := svc.Current(); got.Episode != "aot-ep-2" {
		t.Fatalf("current view changed on rejected transition: %+v", got)
	}
}

func TestIdentityScopedViewsRedirectToAuth(t *testing.T) {
	svc := navigation.NewService(catalog.Default(), stubAuth{signedIn: false})

	view, err := svc.SetView(models.View{Type: models.ViewLibrary})
	if err != nil {
		t.Fatalf("SetView failed: %v", err)
	}
	if view.Type != models.ViewAuth {
		t.Fatalf("expected redirect to auth, got %+v", view)
	}

	signedIn := navigation.NewService(catalog.Default(), stubAuth{signedIn: true})
	view, err = signedIn.SetView(models.View{Type: models.ViewLibrary})
	if err != nil || view.Type != models.ViewLibrary {
		t.Fatalf("expected library view for signed-in user, got %+v err=%v", view, err)
	}
}

func TestSetViewRejectsUnknownType(t *testing.T) {
	svc := navigation.NewService(catalog.Default(), stubAuth{signedIn: true})

	if _, err := svc.SetView(models.View{Type: "carousel"}); !errors.Is(err, navigation.ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
	if got := svc.Current(); got.Type != models.ViewHome {
		t.Fatalf("expected to stay on home, got %+v", got)
	}
}

func TestParseRoute(t *testing.T) {
	cases := []struct {
		route string
		want  models.View
	}{
		{"", models.HomeView()},
		{"/", models.HomeView()},
		{"#/", models.HomeView()},
		{"home", models.HomeView()},
		{"auth", models.AuthView()},
		{"login", models.AuthView()},
		{"anime/attack-on-titan", models.DetailView("attack-on-titan")},
		{"#/anime/demon-slayer", models.DetailView("demon-slayer")},
		{"watch/attack-on-titan/aot-ep-1", models.WatchView("attack-on-titan", "aot-ep-1")},
		{"library", models.View{Type: models.ViewLibrary}},
		{"watch-list", models.View{Type: models.ViewWatchList}},
		{"continue-watching", models.View{Type: models.ViewContinueWatching}},
		{"profile", models.View{Type: models.ViewProfile}},
		{"settings", models.View{Type: models.ViewSettings}},
		{"notifications", models.View{Type: models.ViewNotifications}},
		// Malformed input falls back to home.
		{"anime", models.HomeView()},
		{"anime/", models.HomeView()},
		{"watch/attack-on-titan", models.HomeView()},
		{"watch/attack-on-titan/aot-ep-1/extra", models.HomeView()},
		{"bogus/route", models.HomeView()},
	}

	for _, tc := range cases {
		if got := navigation.ParseRoute(tc.route); got != tc.want {
			t.Errorf("ParseRoute(%q) = %+v, want %+v", tc.route, got, tc.want)
		}
	}
}

func TestNavigateParsesAndTransitions(t *testing.T) {
	svc := navigation.NewService(catalog.Default(), stubAuth{signedIn: true})

	view, err := svc.Navigate("#/watch/demon-slayer/ds-ep-2")
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if view.Type != models.ViewWatch || view.Episode != "ds-ep-2" {
		t.Fatalf("unexpected view %+v", view)
	}
}
