// Package notifications derives new-episode alerts for titles in the
// user's library, honoring the per-user suppression rules.
package notifications

import (
	"fmt"

	"animebharat/models"
)

// Alert is one new-episode notification for a library title.
type Alert struct {
	Anime   models.Anime   `json:"anime"`
	Episode models.Episode `json:"episode"`
	Message string         `json:"message"`
}

type titleSource interface {
	BySlugOrID(key string) (models.Anime, bool)
}

// Service derives the notifications digest. It holds no state of its own;
// everything is computed from the library and settings handed to Digest.
type Service struct {
	catalog titleSource
}

// NewService creates the digest service.
func NewService(catalog titleSource) *Service {
	return &Service{catalog: catalog}
}

// Digest returns an alert for the newest episode of every Ongoing library
// title, excluding entries filed in an ignored folder and drops filtered
// out by the audio suppression setting. Entries are processed in order, so
// the digest follows the library's ordering.
func (s *Service) Digest(entries []models.LibraryEntry, settings models.Settings) []Alert {
	alerts := []Alert{}
	for _, entry := range entries {
		if folderIgnored(entry.Folder, settings.NotificationIgnoreFolders) {
			continue
		}

		anime, ok := s.catalog.BySlugOrID(entry.AnimeID)
		if !ok || anime.Status != models.StatusOngoing || len(anime.Episodes) == 0 {
			continue
		}

		latest := anime.Episodes[len(anime.Episodes)-1]
		if audioIgnored(dropAudios(anime, latest), settings.NotificationIgnoreAudio) {
			continue
		}

		alerts = append(alerts, Alert{
			Anime:   anime,
			Episode: latest,
			Message: fmt.Sprintf("Episode %d of %s is out", latest.Number, anime.DisplayTitle(settings.TitleLang)),
		})
	}
	return alerts
}

func folderIgnored(folder models.ListFolder, ignored []models.ListFolder) bool {
	for _, f := range ignored {
		if f == folder {
			return true
		}
	}
	return false
}

// dropAudios is the audio-track set of a drop: the episode's own tracks
// when listed, otherwise the title's.
func dropAudios(anime models.Anime, ep models.Episode) []models.AudioLang {
	if len(ep.AvailableAudios) > 0 {
		return ep.AvailableAudios
	}
	return anime.AvailableAudios
}

// audioIgnored applies the suppression setting: SUB suppresses sub-only
// drops (Japanese audio only), DUB suppresses dub-only drops (no Japanese
// track). Drops carrying both kinds of tracks always pass.
func audioIgnored(audios []models.AudioLang, filter models.NotificationAudioFilter) bool {
	if filter == models.NotifyAudioNone || len(audios) == 0 {
		return false
	}

	hasSub, hasDub := false, false
	for _, a := range audios {
		if a == models.AudioJapanese {
			hasSub = true
		} else {
			hasDub = true
		}
	}

	switch filter {
	case models.NotifyAudioSub:
		return hasSub && !hasDub
	case models.NotifyAudioDub:
		return hasDub && !hasSub
	}
	return false
}
