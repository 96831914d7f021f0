package utils

import (
	"golang.org/x/text/language"

	"animebharat/models"
)

// BestAudio picks the track closest to the preferred language among the
// available ones, falling back to the first available track when nothing
// matches. The second return is false only when no tracks are available.
func BestAudio(available []models.AudioLang, preferred models.AudioLang) (models.AudioLang, bool) {
	if len(available) == 0 {
		return "", false
	}

	tags := make([]language.Tag, 0, len(available))
	for _, a := range available {
		tags = append(tags, language.Make(string(a)))
	}
	matcher := language.NewMatcher(tags)

	_, idx, conf := matcher.Match(language.Make(string(preferred)))
	if conf == language.No {
		return available[0], true
	}
	return available[idx], true
}

// PlaybackAudio resolves the track to play for a title under the user's
// settings. With dubs disabled the original Japanese track wins whenever
// the title carries one.
func PlaybackAudio(available []models.AudioLang, settings models.Settings) (models.AudioLang, bool) {
	if !settings.EnableDub {
		for _, a := range available {
			if a == models.AudioJapanese {
				return a, true
			}
		}
	}
	return BestAudio(available, settings.PreferredAudio)
}
