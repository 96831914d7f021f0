package models

// AudioLang identifies an audio track language offered for a title or episode.
type AudioLang string

const (
	AudioHindi    AudioLang = "hi"
	AudioEnglish  AudioLang = "en"
	AudioJapanese AudioLang = "ja"
)

// AnimeStatus describes whether a title is still airing.
type AnimeStatus string

const (
	StatusOngoing   AnimeStatus = "Ongoing"
	StatusCompleted AnimeStatus = "Completed"
)

// AnimeType is the release format of a title.
type AnimeType string

const (
	TypeTVSeries AnimeType = "TV Series"
	TypeMovie    AnimeType = "Movie"
	TypeOVA      AnimeType = "OVA"
	TypeONA      AnimeType = "ONA"
	TypeSpecial  AnimeType = "Special"
)

// TitleLang selects which display name clients should render.
type TitleLang string

const (
	TitleLangEN TitleLang = "EN"
	TitleLangJP TitleLang = "JP"
)

// Episode is a single playable entry of an anime. Numbers are unique within
// a title and define the default playback order.
type Episode struct {
	ID              string      `json:"id"`
	Number          int         `json:"number"`
	Title           string      `json:"title,omitempty"`
	Slug            string      `json:"slug"`
	DurationSec     int         `json:"durationSec,omitempty"`
	AvailableAudios []AudioLang `json:"availableAudios,omitempty"`
}

// Anime is a catalog entry. Catalog entries are immutable within a session.
type Anime struct {
	ID              string      `json:"id"`
	Slug            string      `json:"slug"`
	TitleEN         string      `json:"titleEn"`
	TitleJP         string      `json:"titleJp,omitempty"`
	Synopsis        string      `json:"synopsis,omitempty"`
	Poster          string      `json:"poster,omitempty"`
	Banner          string      `json:"banner,omitempty"`
	Genres          []string    `json:"genres"`
	Year            int         `json:"year,omitempty"`
	Status          AnimeStatus `json:"status"`
	Type            AnimeType   `json:"type"`
	AvailableAudios []AudioLang `json:"availableAudios,omitempty"`
	Popularity      int         `json:"popularity,omitempty"`
	Episodes        []Episode   `json:"episodes"`
}

// DisplayTitle returns the name to render for the given title language
// preference, falling back to the English title when no Japanese title
// is available.
func (a Anime) DisplayTitle(lang TitleLang) string {
	if lang == TitleLangJP && a.TitleJP != "" {
		return a.TitleJP
	}
	return a.TitleEN
}

// HasAudio reports whether the title offers the given audio language.
func (a Anime) HasAudio(lang AudioLang) bool {
	for _, l := range a.AvailableAudios {
		if l == lang {
			return true
		}
	}
	return false
}

// EpisodeByID returns the episode with the given ID, if present.
func (a Anime) EpisodeByID(id string) (Episode, bool) {
	for _, ep := range a.Episodes {
		if ep.ID == id {
			return ep, true
		}
	}
	return Episode{}, false
}
