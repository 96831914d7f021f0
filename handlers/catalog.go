package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"animebharat/catalog"
	"animebharat/models"
	"animebharat/services/appstate"
	"animebharat/utils"
	"animebharat/utils/filter"
)

type catalogService interface {
	All() []models.Anime
	BySlugOrID(key string) (models.Anime, bool)
	Episode(titleKey, episodeKey string) (models.Anime, models.Episode, bool)
	NextEpisode(titleKey, episodeID string) (models.Episode, bool)
}

var _ catalogService = (*catalog.Service)(nil)

type viewerState interface {
	User() (models.User, bool)
}

var _ viewerState = (*appstate.State)(nil)

// CatalogHandler serves the title catalog and filtered listings.
type CatalogHandler struct {
	Catalog catalogService
	Viewer  viewerState
}

func NewCatalogHandler(svc catalogService, viewer viewerState) *CatalogHandler {
	return &CatalogHandler{Catalog: svc, Viewer: viewer}
}

// List returns catalog titles matching the filter criteria in the query
// string. With no parameters it returns the whole catalog in seed order.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, filter.Apply(h.Catalog.All(), criteria))
}

// Detail returns a single title by slug or ID.
func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["slug"]
	anime, ok := h.Catalog.BySlugOrID(key)
	if !ok {
		http.Error(w, "title not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, anime)
}

type episodeResponse struct {
	Anime       models.Anime     `json:"anime"`
	Episode     models.Episode   `json:"episode"`
	Audio       models.AudioLang `json:"audio,omitempty"`
	NextEpisode *models.Episode  `json:"nextEpisode,omitempty"`
}

// Episode returns one episode of a title, resolving both by episode ID and
// by episode slug. The payload carries the audio track selected for the
// signed-in user's settings and, when the season continues, the episode a
// player with auto-next enabled would queue.
func (h *CatalogHandler) Episode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	anime, ep, ok := h.Catalog.Episode(vars["slug"], vars["episode"])
	if !ok {
		http.Error(w, "episode not found", http.StatusNotFound)
		return
	}

	settings := models.DefaultSettings()
	if user, ok := h.Viewer.User(); ok {
		settings = user.Settings
	}
	available := ep.AvailableAudios
	if len(available) == 0 {
		available = anime.AvailableAudios
	}

	resp := episodeResponse{Anime: anime, Episode: ep}
	if audio, ok := utils.PlaybackAudio(available, settings); ok {
		resp.Audio = audio
	}
	if next, ok := h.Catalog.NextEpisode(vars["slug"], ep.ID); ok {
		resp.NextEpisode = &next
	}
	writeJSON(w, http.StatusOK, resp)
}

func criteriaFromQuery(r *http.Request) (filter.Criteria, error) {
	q := r.URL.Query()

	criteria := filter.Criteria{
		Query:  q.Get("q"),
		Genres: splitParam(q["genre"]),
	}

	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return filter.Criteria{}, err
		}
		criteria.Year = &year
	}
	if v := q.Get("status"); v != "" {
		criteria.Status = models.AnimeStatus(v)
	}
	if v := q.Get("type"); v != "" {
		criteria.Type = models.AnimeType(v)
	}
	for _, a := range splitParam(q["audio"]) {
		criteria.Audios = append(criteria.Audios, models.AudioLang(a))
	}
	if q.Get("sort") == "popularity" {
		criteria.Sort = filter.SortPopularity
	}

	return criteria, nil
}

// splitParam accepts both repeated parameters and comma-separated values.
func splitParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
