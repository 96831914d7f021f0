package notifications_test

import (
	"testing"
	"time"

	"animebharat/catalog"
	"animebharat/models"
	"animebharat/services/notifications"
)

func entry(animeID string, folder models.ListFolder) models.LibraryEntry {
	return models.LibraryEntry{AnimeID: animeID, Folder: folder, AddedAt: time.Now().UTC()}
}

func TestDigestOnlyAlertsOngoingTitles(t *testing.T) {
	svc := notifications.NewService(catalog.Default())

	alerts := svc.Digest([]models.LibraryEntry{
		entry("1", models.FolderWatching), // Completed, no alert
		entry("2", models.FolderWatching), // Ongoing
		entry("4", models.FolderPlanToWatch),
	}, models.DefaultSettings())

	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].Anime.ID != "2" || alerts[1].Anime.ID != "4" {
		t.Fatalf("unexpected alert order: %v, %v", alerts[0].Anime.ID, alerts[1].Anime.ID)
	}
	if alerts[0].Episode.ID != "ds-ep-2" {
		t.Fatalf("expected the newest episode, got %q", alerts[0].Episode.ID)
	}
	if alerts[0].Message != "Episode 2 of Demon Slayer is out" {
		t.Fatalf("unexpected message %q", alerts[0].Message)
	}
}

func TestDigestSkipsIgnoredFolders(t *testing.T) {
	svc := notifications.NewService(catalog.Default())

	settings := models.DefaultSettings()
	settings.NotificationIgnoreFolders = []models.ListFolder{models.FolderOnHold}

	alerts := svc.Digest([]models.LibraryEntry{
		entry("2", models.FolderOnHold),
		entry("4", models.FolderWatching),
	}, settings)

	if len(alerts) != 1 || alerts[0].Anime.ID != "4" {
		t.Fatalf("expected only the Watching title to alert, got %+v", alerts)
	}
}

func TestDigestSuppressesSubOnlyDrops(t *testing.T) {
	svc := notifications.NewService(catalog.Default())

	settings := models.DefaultSettings()
	settings.NotificationIgnoreAudio = models.NotifyAudioSub

	alerts := svc.Digest([]models.LibraryEntry{
		entry("2", models.FolderWatching), // latest drop carries sub and dub tracks
		entry("4", models.FolderWatching), // latest drop is sub-only
	}, settings)

	if len(alerts) != 1 || alerts[0].Anime.ID != "2" {
		t.Fatalf("expected the sub-only drop to be suppressed, got %+v", alerts)
	}
}

func TestDigestDubFilterPassesMixedDrops(t *testing.T) {
	svc := notifications.NewService(catalog.Default())

	settings := models.DefaultSettings()
	settings.NotificationIgnoreAudio = models.NotifyAudioDub

	alerts := svc.Digest([]models.LibraryEntry{
		entry("2", models.FolderWatching), // sub+dub drop must still alert
	}, settings)

	if len(alerts) != 1 {
		t.Fatalf("expected mixed-audio drop to pass the DUB filter, got %+v", alerts)
	}
}

func TestDigestUsesPreferredTitleLanguage(t *testing.T) {
	svc := notifications.NewService(catalog.Default())

	settings := models.DefaultSettings()
	settings.TitleLang = models.TitleLangJP

	alerts := svc.Digest([]models.LibraryEntry{entry("2", models.FolderWatching)}, settings)
	if len(alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(alerts))
	}
	want := catalog.Default()
	anime, _ := want.BySlugOrID("2")
	if alerts[0].Message != "Episode 2 of "+anime.TitleJP+" is out" {
		t.Fatalf("expected native title in message, got %q", alerts[0].Message)
	}
}

func TestDigestIgnoresUnknownTitles(t *testing.T) {
	svc := notifications.NewService(catalog.Default())

	alerts := svc.Digest([]models.LibraryEntry{entry("404", models.FolderWatching)}, models.DefaultSettings())
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts for unknown titles, got %+v", alerts)
	}
}
