package server

import (
	"encoding/json"
	"io"
	"net/http"

	"seriestracker/internal/misc"
	"seriestracker/internal/model"
	"seriestracker/internal/transfer"
)

func (s Server) profileGet() http.HandlerFunc {
	type response struct {
		Profile *model.UserProfile `json:"profile"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		state := s.Tracker.State()
		s.writeJsonResponse(w, response{Profile: state.Profile}, http.StatusOK)
	}
}

func (s Server) profileSet() http.HandlerFunc {
	type request struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	type response model.UserProfile
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("profileSet: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			s.Logger.Debug("profileSet: name not supplied")
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		if err := s.Tracker.SetProfile(r.Context(), model.UserProfile{Name: req.Name, Email: req.Email}); err != nil {
			s.Logger.Errorf("profileSet: Error setting UserProfile, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		profile := s.Tracker.State().Profile
		s.writeJsonResponse(w, response(*profile), http.StatusOK)
	}
}

func (s Server) omdbKeySet() http.HandlerFunc {
	type request struct {
		APIKey string `json:"apiKey"`
	}
	type response struct {
		Success bool `json:"success"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("omdbKeySet: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if err := s.Tracker.SetOMDBAPIKey(r.Context(), req.APIKey); err != nil {
			s.Logger.Errorf("omdbKeySet: Error setting OMDB API key, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response{Success: true}, http.StatusOK)
	}
}

func (s Server) notificationDaySet() http.HandlerFunc {
	type request struct {
		Day int `json:"day"`
	}
	type response struct {
		Day int `json:"day"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("notificationDaySet: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		day := misc.Clamp(req.Day, 0, 14)
		if err := s.Tracker.SetNotificationDay(r.Context(), day); err != nil {
			s.Logger.Errorf("notificationDaySet: Error setting notification day, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response{Day: day}, http.StatusOK)
	}
}

func (s Server) stateExport() http.HandlerFunc {
	type request struct {
		ShowIDs         []string `json:"showIds"`
		IncludeEpisodes bool     `json:"includeEpisodes"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.Logger.Debugf("stateExport: Error decoding JSON, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		doc := transfer.Export(s.Tracker.State(), req.ShowIDs, req.IncludeEpisodes)
		s.writeJsonResponse(w, doc, http.StatusOK)
	}
}

func (s Server) stateImport() http.HandlerFunc {
	type response struct {
		Imported int `json:"imported"`
		Skipped  int `json:"skipped"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			s.Logger.Debugf("stateImport: Error reading body, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		shows, err := transfer.Decode(body)
		if err != nil {
			s.Logger.Debugf("stateImport: Error decoding import document, err: %v", err)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		next, added := transfer.Import(s.Tracker.State(), shows)
		if err = s.Tracker.ReplaceState(r.Context(), next); err != nil {
			s.Logger.Errorf("stateImport: Error replacing TrackerState, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.Logger.Infof("stateImport: Imported %d Show(s), skipped %d", added, len(shows)-added)
		s.writeJsonResponse(w, response{Imported: added, Skipped: len(shows) - added}, http.StatusOK)
	}
}

// stateRefresh re-reads the persisted TrackerState, picking up writes made
// by another process sharing the same store.
func (s Server) stateRefresh() http.HandlerFunc {
	type response struct {
		Shows int `json:"shows"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Tracker.Refresh(r.Context()); err != nil {
			s.Logger.Errorf("stateRefresh: Error refreshing TrackerState, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response{Shows: len(s.Tracker.State().Shows)}, http.StatusOK)
	}
}

func (s Server) stateReset() http.HandlerFunc {
	type response struct {
		Success bool `json:"success"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Tracker.Reset(r.Context()); err != nil {
			s.Logger.Errorf("stateReset: Error resetting TrackerState, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, response{Success: true}, http.StatusOK)
	}
}
