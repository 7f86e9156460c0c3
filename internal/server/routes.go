package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMw)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.maxBytesMw)

	// The provider proxy handles OPTIONS and the method check itself.
	api.PathPrefix("/omdb").HandlerFunc(s.omdbProxy())

	showAPI := api.PathPrefix("/show").Subrouter()
	showAPI.HandleFunc("/search", s.showSearch()).Methods(http.MethodGet)
	showAPI.HandleFunc("/add", s.showAdd()).Methods(http.MethodPost)
	showAPI.HandleFunc("/update", s.showUpdate()).Methods(http.MethodPost)
	showAPI.HandleFunc("/remove", s.showRemove()).Methods(http.MethodPost)
	showAPI.HandleFunc("/watched", s.showSetWatched()).Methods(http.MethodPost)
	showAPI.HandleFunc("/tentative", s.showSetTentativeSchedule()).Methods(http.MethodPost)
	showAPI.HandleFunc("/refresh", s.showRefreshSeasons()).Methods(http.MethodPost)
	showAPI.HandleFunc("/reorder", s.showReorder()).Methods(http.MethodPost)
	showAPI.HandleFunc("/move-to-top", s.showMoveToTop()).Methods(http.MethodPost)
	showAPI.HandleFunc("/get/{imdbID}", s.showGetOne()).Methods(http.MethodGet)
	showAPI.HandleFunc("/get", s.showGetAll()).Methods(http.MethodGet)
	showAPI.HandleFunc("/progress/{imdbID}", s.showProgress()).Methods(http.MethodGet)
	showAPI.PathPrefix("").Handler(s.notFoundHandler())

	api.HandleFunc("/profile", s.profileGet()).Methods(http.MethodGet)
	api.HandleFunc("/profile", s.profileSet()).Methods(http.MethodPost)
	api.HandleFunc("/settings/omdb-key", s.omdbKeySet()).Methods(http.MethodPost)
	api.HandleFunc("/settings/notification-day", s.notificationDaySet()).Methods(http.MethodPost)
	api.HandleFunc("/export", s.stateExport()).Methods(http.MethodPost)
	api.HandleFunc("/import", s.stateImport()).Methods(http.MethodPost)
	api.HandleFunc("/reset", s.stateReset()).Methods(http.MethodPost)
	api.HandleFunc("/refresh", s.stateRefresh()).Methods(http.MethodPost)
	api.PathPrefix("").Handler(s.notFoundHandler())

	return r
}
