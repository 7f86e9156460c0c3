package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"seriestracker/internal/metadata"
	"seriestracker/internal/misc"
	"seriestracker/internal/model"
	"seriestracker/internal/progress"
	"seriestracker/internal/schedule"
)

// maxSeasonsPerRefresh caps how many seasons one refresh will fetch from the
// provider, keeping a single request from fanning out unboundedly on shows
// with absurd season counts.
const maxSeasonsPerRefresh = 30

func (s Server) showSearch() http.HandlerFunc {
	type searchItem struct {
		ImdbID    string `json:"imdbId"`
		Title     string `json:"title"`
		Year      string `json:"year"`
		Thumbnail string `json:"thumbnail,omitempty"`
	}
	type response []searchItem
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		items, err := s.omdbClient().OMDBSearch(r.Context(), q)
		if err != nil {
			s.Logger.Errorf("showSearch: Error searching OMDB with query: %s, err: %v", q, err)
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		resp := response{}
		for _, i := range items {
			resp = append(resp, searchItem{
				ImdbID:    i.ImdbID,
				Title:     i.Title,
				Year:      i.Year,
				Thumbnail: i.Poster,
			})
		}
		s.writeJsonResponse(w, resp, http.StatusOK)
	}
}

func (s Server) showAdd() http.HandlerFunc {
	type request struct {
		ImdbID string `json:"imdbId"`
	}
	type response model.Show
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("showAdd: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if req.ImdbID == "" {
			s.Logger.Debug("showAdd: imdbId not supplied")
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		if existing, ok := s.Tracker.GetShowByID(req.ImdbID); ok {
			s.Logger.Debugf("showAdd: Show already tracked, ImdbID: %s", req.ImdbID)
			s.writeJsonResponse(w, response(existing), http.StatusOK)
			return
		}

		titleResp, err := s.omdbClient().OMDBGetTitle(r.Context(), req.ImdbID)
		if err != nil {
			s.Logger.Errorf("showAdd: Error getting OMDB title, ImdbID: %s, err: %v", req.ImdbID, err)
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		if titleResp == nil {
			s.Logger.Debugf("showAdd: No OMDB title found, ImdbID: %s", req.ImdbID)
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		show := metadata.NormalizeShow(*titleResp)
		if err = s.Tracker.AddShow(r.Context(), show); err != nil {
			s.Logger.Errorf("showAdd: Error adding Show, ImdbID: %s, err: %v", req.ImdbID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		added, _ := s.Tracker.GetShowByID(req.ImdbID)
		s.writeJsonResponse(w, response(added), http.StatusOK)
	}
}

func (s Server) showUpdate() http.HandlerFunc {
	type request model.Show
	type response struct {
		Success bool `json:"success"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("showUpdate: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if _, ok := s.Tracker.GetShowByID(req.ImdbID); !ok {
			s.Logger.Debugf("showUpdate: Show not tracked, ImdbID: %s", req.ImdbID)
			s.writeJsonResponse(w, response{Success: false}, http.StatusUnprocessableEntity)
			return
		}
		if err := s.Tracker.UpdateShow(r.Context(), model.Show(req)); err != nil {
			s.Logger.Errorf("showUpdate: Error updating Show, ImdbID: %s, err: %v", req.ImdbID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response{Success: true}, http.StatusOK)
	}
}

func (s Server) showRemove() http.HandlerFunc {
	type request struct {
		ImdbID string `json:"imdbId"`
	}
	type response struct {
		Success bool `json:"success"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("showRemove: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if _, ok := s.Tracker.GetShowByID(req.ImdbID); !ok {
			s.Logger.Debugf("showRemove: Show not tracked, ImdbID: %s", req.ImdbID)
			s.writeJsonResponse(w, response{Success: false}, http.StatusUnprocessableEntity)
			return
		}
		if err := s.Tracker.RemoveShow(r.Context(), req.ImdbID); err != nil {
			s.Logger.Errorf("showRemove: Error removing Show, ImdbID: %s, err: %v", req.ImdbID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response{Success: true}, http.StatusOK)
	}
}

func (s Server) showSetWatched() http.HandlerFunc {
	type request struct {
		ImdbID        string `json:"imdbId"`
		SeasonNumber  int    `json:"seasonNumber"`
		EpisodeNumber int    `json:"episodeNumber"`
		Watched       bool   `json:"watched"`
	}
	type response struct {
		Success bool `json:"success"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("showSetWatched: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		show, ok := s.Tracker.GetShowByID(req.ImdbID)
		if !ok {
			s.Logger.Debugf("showSetWatched: Show not tracked, ImdbID: %s", req.ImdbID)
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		found := false
		for si := range show.Seasons {
			if show.Seasons[si].SeasonNumber != req.SeasonNumber {
				continue
			}
			for ei := range show.Seasons[si].Episodes {
				if show.Seasons[si].Episodes[ei].EpisodeNumber == req.EpisodeNumber {
					show.Seasons[si].Episodes[ei].Watched = req.Watched
					found = true
					break
				}
			}
			break
		}
		if !found {
			s.Logger.Debugf("showSetWatched: Episode not found, ImdbID: %s, Season: %d, Episode: %d",
				req.ImdbID, req.SeasonNumber, req.EpisodeNumber)
			s.writeJsonResponse(w, response{Success: false}, http.StatusUnprocessableEntity)
			return
		}

		if err := s.Tracker.UpdateShow(r.Context(), show); err != nil {
			s.Logger.Errorf("showSetWatched: Error updating Show, ImdbID: %s, err: %v", req.ImdbID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response{Success: true}, http.StatusOK)
	}
}

func (s Server) showSetTentativeSchedule() http.HandlerFunc {
	type request struct {
		ImdbID               string            `json:"imdbId"`
		TentativeNextAirDate string            `json:"tentativeNextAirDate"`
		TentativeNextEpisode *model.EpisodeRef `json:"tentativeNextEpisode"`
		FrequencyDays        int               `json:"frequencyDays"`
	}
	type response struct {
		Show        model.Show `json:"show"`
		Occurrences []string   `json:"occurrences"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("showSetTentativeSchedule: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		show, ok := s.Tracker.GetShowByID(req.ImdbID)
		if !ok {
			s.Logger.Debugf("showSetTentativeSchedule: Show not tracked, ImdbID: %s", req.ImdbID)
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		show.TentativeNextAirDate = req.TentativeNextAirDate
		show.TentativeNextEpisode = req.TentativeNextEpisode
		if req.TentativeNextAirDate == "" {
			// Clearing the baseline clears the whole rule.
			show.TentativeNextEpisode = nil
			show.TentativeFrequencyDays = 0
		} else if req.FrequencyDays <= 0 {
			show.TentativeFrequencyDays = 7
		} else {
			show.TentativeFrequencyDays = req.FrequencyDays
		}
		if err := s.Tracker.UpdateShow(r.Context(), show); err != nil {
			s.Logger.Errorf("showSetTentativeSchedule: Error updating Show, ImdbID: %s, err: %v", req.ImdbID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		occurrences := []string{}
		for _, d := range schedule.ComputeOccurrences(show, schedule.DefaultMaxOccurrences) {
			occurrences = append(occurrences, d.UTC().Format(time.RFC3339))
		}
		s.writeJsonResponse(w, response{Show: show, Occurrences: occurrences}, http.StatusOK)
	}
}

func (s Server) showRefreshSeasons() http.HandlerFunc {
	type request struct {
		ImdbID string `json:"imdbId"`
	}
	type response model.Show
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("showRefreshSeasons: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		show, ok := s.Tracker.GetShowByID(req.ImdbID)
		if !ok {
			s.Logger.Debugf("showRefreshSeasons: Show not tracked, ImdbID: %s", req.ImdbID)
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		c := s.omdbClient()
		titleResp, err := c.OMDBGetTitle(r.Context(), req.ImdbID)
		if err != nil {
			s.Logger.Errorf("showRefreshSeasons: Error getting OMDB title, ImdbID: %s, err: %v", req.ImdbID, err)
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		if titleResp == nil {
			s.Logger.Debugf("showRefreshSeasons: No OMDB title found, ImdbID: %s", req.ImdbID)
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		fresh := metadata.NormalizeShow(*titleResp)
		fresh.HideWatched = show.HideWatched
		fresh.TentativeNextAirDate = show.TentativeNextAirDate
		fresh.TentativeNextEpisode = show.TentativeNextEpisode
		fresh.TentativeFrequencyDays = show.TentativeFrequencyDays

		totalSeasons := 1
		if fresh.TotalSeasons != nil {
			totalSeasons = misc.Clamp(*fresh.TotalSeasons, 1, maxSeasonsPerRefresh)
		}
		for n := 1; n <= totalSeasons; n++ {
			seasonResp, err := c.OMDBGetSeason(r.Context(), req.ImdbID, n)
			if err != nil {
				s.Logger.Errorf("showRefreshSeasons: Error getting OMDB season %d, ImdbID: %s, err: %v", n, req.ImdbID, err)
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
			if seasonResp == nil {
				s.Logger.Debugf("showRefreshSeasons: No OMDB season %d found, ImdbID: %s", n, req.ImdbID)
				continue
			}
			fresh.Seasons = append(fresh.Seasons, metadata.NormalizeSeason(*seasonResp, fresh.Title, n, show.Seasons))
		}
		fresh.NextAirDate = metadata.NextAirDate(fresh.Seasons, time.Now())

		if err = s.Tracker.UpdateShow(r.Context(), fresh); err != nil {
			s.Logger.Errorf("showRefreshSeasons: Error updating Show, ImdbID: %s, err: %v", req.ImdbID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response(fresh), http.StatusOK)
	}
}

func (s Server) showReorder() http.HandlerFunc {
	type request struct {
		FromIndex int `json:"fromIndex"`
		ToIndex   int `json:"toIndex"`
	}
	type response struct {
		ShowOrder []string `json:"showOrder"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("showReorder: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if err := s.Tracker.ReorderShows(r.Context(), req.FromIndex, req.ToIndex); err != nil {
			s.Logger.Errorf("showReorder: Error reordering Shows, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response{ShowOrder: s.Tracker.State().EffectiveOrder()}, http.StatusOK)
	}
}

func (s Server) showMoveToTop() http.HandlerFunc {
	type request struct {
		ImdbID string `json:"imdbId"`
	}
	type response struct {
		ShowOrder []string `json:"showOrder"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("showMoveToTop: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if err := s.Tracker.MoveShowToTop(r.Context(), req.ImdbID); err != nil {
			s.Logger.Errorf("showMoveToTop: Error moving Show to top, ImdbID: %s, err: %v", req.ImdbID, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response{ShowOrder: s.Tracker.State().EffectiveOrder()}, http.StatusOK)
	}
}

func (s Server) showGetOne() http.HandlerFunc {
	type response model.Show
	return func(w http.ResponseWriter, r *http.Request) {
		imdbID := mux.Vars(r)["imdbID"]
		show, ok := s.Tracker.GetShowByID(imdbID)
		if !ok {
			s.Logger.Debugf("showGetOne: Show not tracked, ImdbID: %s", imdbID)
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		s.writeJsonResponse(w, response(show), http.StatusOK)
	}
}

func (s Server) showGetAll() http.HandlerFunc {
	type response []model.Show
	return func(w http.ResponseWriter, r *http.Request) {
		shows := s.Tracker.GetOrderedShows()
		if shows == nil {
			shows = []model.Show{}
		}
		s.writeJsonResponse(w, response(shows), http.StatusOK)
	}
}

func (s Server) showProgress() http.HandlerFunc {
	type seasonProgress struct {
		SeasonNumber int `json:"seasonNumber"`
		progress.Progress
		Percentage int `json:"percentage"`
	}
	type response struct {
		progress.Progress
		Percentage int              `json:"percentage"`
		Seasons    []seasonProgress `json:"seasons"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		imdbID := mux.Vars(r)["imdbID"]
		show, ok := s.Tracker.GetShowByID(imdbID)
		if !ok {
			s.Logger.Debugf("showProgress: Show not tracked, ImdbID: %s", imdbID)
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		series := progress.Series(show)
		resp := response{
			Progress:   series,
			Percentage: series.Percentage(),
			Seasons:    []seasonProgress{},
		}
		for _, season := range show.Seasons {
			p := progress.Season(season)
			resp.Seasons = append(resp.Seasons, seasonProgress{
				SeasonNumber: season.SeasonNumber,
				Progress:     p,
				Percentage:   p.Percentage(),
			})
		}
		s.writeJsonResponse(w, resp, http.StatusOK)
	}
}
