// Package filter derives the displayed subset of the catalog from a user's
// search and filter criteria. Apply is pure: it never mutates its input and
// the same inputs always produce the same output.
package filter

import (
	"sort"
	"strings"

	"animebharat/models"
)

// Sort selects an explicit ordering for results. The zero value keeps the
// catalog's own order.
type Sort string

const (
	SortNone       Sort = ""
	SortPopularity Sort = "popularity"
)

// Criteria is a value object describing what the user asked for. An unset
// or empty field matches everything.
type Criteria struct {
	Query  string             // whitespace-separated tokens, each a case-insensitive substring of a display name
	Genres []string           // title must carry every listed genre
	Year   *int               // exact match when set
	Status models.AnimeStatus // exact match when non-empty
	Type   models.AnimeType   // exact match when non-empty
	Audios []models.AudioLang // title must offer every listed audio language
	Sort   Sort
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Query == "" && len(c.Genres) == 0 && c.Year == nil &&
		c.Status == "" && c.Type == "" && len(c.Audios) == 0 && c.Sort == SortNone
}

// Apply returns the titles matching the criteria, preserving the relative
// order of the input unless an explicit sort is requested. An empty result
// is a valid outcome, never an error.
func Apply(catalog []models.Anime, c Criteria) []models.Anime {
	tokens := strings.Fields(strings.ToLower(c.Query))

	out := make([]models.Anime, 0, len(catalog))
	for _, a := range catalog {
		if !matches(a, c, tokens) {
			continue
		}
		out = append(out, a)
	}

	if c.Sort == SortPopularity {
		// Stable keeps catalog order for equal popularity.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Popularity > out[j].Popularity
		})
	}

	return out
}

func matches(a models.Anime, c Criteria, tokens []string) bool {
	// Every token must occur in one of the display names; tokens may hit
	// different names, so a mixed English/Japanese query still matches.
	for _, tok := range tokens {
		if !nameContains(a, tok) {
			return false
		}
	}

	// Genre and audio filters require the title's own set to be a superset
	// of the requested set. A title missing the field matches only when the
	// filter is unset.
	for _, g := range c.Genres {
		if !hasGenre(a, g) {
			return false
		}
	}
	for _, lang := range c.Audios {
		if !a.HasAudio(lang) {
			return false
		}
	}

	if c.Year != nil && a.Year != *c.Year {
		return false
	}
	if c.Status != "" && a.Status != c.Status {
		return false
	}
	if c.Type != "" && a.Type != c.Type {
		return false
	}

	return true
}

// nameContains checks one query token against every configured display name.
func nameContains(a models.Anime, token string) bool {
	if strings.Contains(strings.ToLower(a.TitleEN), token) {
		return true
	}
	if a.TitleJP != "" && strings.Contains(strings.ToLower(a.TitleJP), token) {
		return true
	}
	return false
}

func hasGenre(a models.Anime, genre string) bool {
	for _, g := range a.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}
