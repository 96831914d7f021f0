// Package catalog holds the static in-memory title catalog. The catalog is
// read-only within a session; all user-specific state lives elsewhere.
package catalog

import (
	"errors"
	"fmt"

	"animebharat/models"
	"animebharat/utils"
)

var (
	ErrDuplicateID      = errors.New("duplicate anime id")
	ErrDuplicateSlug    = errors.New("duplicate anime slug")
	ErrDuplicateOrdinal = errors.New("duplicate episode number within title")
)

// Service provides lookups over the static catalog.
type Service struct {
	titles []models.Anime
	byID   map[string]int
	bySlug map[string]int
}

// New builds a catalog service over the given titles. Titles without a slug
// get one derived from their English name. Episode ordinals must be unique
// within each title.
func New(titles []models.Anime) (*Service, error) {
	svc := &Service{
		titles: make([]models.Anime, len(titles)),
		byID:   make(map[string]int, len(titles)),
		bySlug: make(map[string]int, len(titles)),
	}
	copy(svc.titles, titles)

	for i := range svc.titles {
		t := &svc.titles[i]
		if t.Slug == "" {
			t.Slug = utils.Slugify(t.TitleEN)
		}
		if _, exists := svc.byID[t.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		if _, exists := svc.bySlug[t.Slug]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, t.Slug)
		}
		svc.byID[t.ID] = i
		svc.bySlug[t.Slug] = i

		seen := make(map[int]struct{}, len(t.Episodes))
		for _, ep := range t.Episodes {
			if _, dup := seen[ep.Number]; dup {
				return nil, fmt.Errorf("%w: %s #%d", ErrDuplicateOrdinal, t.ID, ep.Number)
			}
			seen[ep.Number] = struct{}{}
		}
	}

	return svc, nil
}

// Default returns a catalog service seeded with the built-in titles.
func Default() *Service {
	svc, err := New(Seed())
	if err != nil {
		// The built-in seed is validated by tests; a bad seed is a bug.
		panic(err)
	}
	return svc
}

// All returns the catalog titles in their canonical order.
func (s *Service) All() []models.Anime {
	out := make([]models.Anime, len(s.titles))
	copy(out, s.titles)
	return out
}

// Len returns the number of titles in the catalog.
func (s *Service) Len() int {
	return len(s.titles)
}

// BySlugOrID resolves a title by its slug, falling back to its ID.
func (s *Service) BySlugOrID(key string) (models.Anime, bool) {
	if i, ok := s.bySlug[key]; ok {
		return s.titles[i], true
	}
	if i, ok := s.byID[key]; ok {
		return s.titles[i], true
	}
	return models.Anime{}, false
}

// Episode resolves an episode of a title by episode ID or slug.
func (s *Service) Episode(titleKey, episodeKey string) (models.Anime, models.Episode, bool) {
	anime, ok := s.BySlugOrID(titleKey)
	if !ok {
		return models.Anime{}, models.Episode{}, false
	}
	for _, ep := range anime.Episodes {
		if ep.ID == episodeKey || ep.Slug == episodeKey {
			return anime, ep, true
		}
	}
	return models.Anime{}, models.Episode{}, false
}

// NextEpisode returns the episode with the next higher ordinal, used by
// auto-play-next. Returns false for the last episode or unknown input.
func (s *Service) NextEpisode(titleKey, episodeID string) (models.Episode, bool) {
	anime, current, ok := s.Episode(titleKey, episodeID)
	if !ok {
		return models.Episode{}, false
	}
	var next models.Episode
	found := false
	for _, ep := range anime.Episodes {
		if ep.Number <= current.Number {
			continue
		}
		if !found || ep.Number < next.Number {
			next = ep
			found = true
		}
	}
	return next, found
}
