package server

import (
	"io"
	"net/http"
	"net/url"

	"seriestracker/internal/client"
)

// omdbProxyParams are the only query parameters forwarded upstream; anything
// else is dropped. "season" is renamed to the capitalized form the provider
// expects.
var omdbProxyParams = []string{"s", "i", "t", "type", "plot", "season", "page", "y"}

// omdbProxy forwards allow-listed queries to the metadata provider with the
// server-held credential injected, so browser clients never see the key.
// Upstream status, body and content type are relayed unchanged.
func (s Server) omdbProxy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", "GET")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		apiKey := s.omdbClient().OMDBAPIKey
		if apiKey == "" {
			s.Logger.Error("omdbProxy: OMDB API key is not configured")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		query := r.URL.Query()
		params := url.Values{}
		for _, p := range omdbProxyParams {
			if query.Has(p) {
				if p == "season" {
					params.Set("Season", query.Get(p))
				} else {
					params.Set(p, query.Get(p))
				}
			}
		}
		if len(params) == 0 {
			s.Logger.Debugf("omdbProxy: No recognized query parameter supplied, query: %s", r.URL.RawQuery)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		params.Set("apikey", apiKey)

		apiURL := client.OMDBBaseURL + "?" + params.Encode()
		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, apiURL, nil)
		if err != nil {
			s.Logger.Errorf("omdbProxy: Error creating upstream request, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		resp, err := s.Client.Do(req)
		if err != nil {
			s.Logger.Errorf("omdbProxy: Error doing upstream request, err: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				s.Logger.Errorf("omdbProxy: Error closing upstream response body, err: %v", err)
			}
		}()

		if ct := resp.Header.Get("Content-Type"); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.WriteHeader(resp.StatusCode)
		if _, err = io.Copy(w, http.MaxBytesReader(nil, resp.Body, 300000)); err != nil {
			s.Logger.Errorf("omdbProxy: Error copying upstream response body, err: %v", err)
		}
	}
}
