// Package transfer moves shows in and out of the library as a portable JSON
// document.
package transfer

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
	"seriestracker/internal/model"
)

// FormatV1 identifies the export document format.
const FormatV1 = "series-tracker.v1"

// Document is the portable export shape. Import also accepts a bare Show
// array without the envelope.
type Document struct {
	Shows      []model.Show `json:"shows"`
	ExportedAt string       `json:"exportedAt"`
	Format     string       `json:"format"`
}

// Export builds a document containing the selected shows. A nil selection
// exports everything. Unless includeEpisodes is set, each show's seasons are
// emptied so the document carries no granular watch history.
func Export(state model.TrackerState, selected []string, includeEpisodes bool) Document {
	var selectedSet map[string]bool
	if selected != nil {
		selectedSet = make(map[string]bool, len(selected))
		for _, id := range selected {
			selectedSet[id] = true
		}
	}
	shows := make([]model.Show, 0, len(state.Shows))
	for _, show := range state.Shows {
		if selectedSet != nil && !selectedSet[show.ImdbID] {
			continue
		}
		if !includeEpisodes {
			show.Seasons = []model.Season{}
		}
		shows = append(shows, show)
	}
	return Document{
		Shows:      shows,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Format:     FormatV1,
	}
}

// Decode parses raw document bytes, accepting either the enveloped shape or
// a bare show array.
func Decode(data []byte) ([]model.Show, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil && doc.Shows != nil {
		return doc.Shows, nil
	}
	var shows []model.Show
	if err := json.Unmarshal(data, &shows); err != nil {
		return nil, errors.Wrap(err, "error unmarshalling import document")
	}
	return shows, nil
}

// Import appends the imported shows to the state, skipping any whose title
// case-insensitively matches an existing show's trimmed title. A title
// collision means "already have it": no merge, no overwrite, regardless of
// imdbId. showOrder is left untouched; stale entries heal lazily on read.
// Returns the new state and how many shows were actually appended.
func Import(state model.TrackerState, imported []model.Show) (model.TrackerState, int) {
	existing := make(map[string]bool, len(state.Shows))
	for _, show := range state.Shows {
		existing[titleKey(show.Title)] = true
	}
	added := 0
	for _, show := range imported {
		if show.Title == "" {
			show.Title = show.ImdbID
		}
		if show.ImdbURL == "" && show.ImdbID != "" {
			show.ImdbURL = model.ImdbTitleURL(show.ImdbID)
		}
		key := titleKey(show.Title)
		if existing[key] {
			continue
		}
		existing[key] = true
		state.Shows = append(state.Shows, show)
		added++
	}
	return state, added
}

func titleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
