package transfer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seriestracker/internal/model"
)

func stateWithShows() model.TrackerState {
	return model.TrackerState{Shows: []model.Show{
		{
			ImdbID: "tt1",
			Title:  "The Wire",
			Seasons: []model.Season{{
				SeasonNumber: 1,
				Episodes:     []model.Episode{{EpisodeNumber: 1, Watched: true}, {EpisodeNumber: 2}},
			}},
		},
		{ImdbID: "tt2", Title: "Severance"},
	}}
}

func TestExportDefaultsToEmptySeasons(t *testing.T) {
	doc := Export(stateWithShows(), nil, false)

	assert.Equal(t, FormatV1, doc.Format)
	assert.NotEmpty(t, doc.ExportedAt)
	require.Len(t, doc.Shows, 2)
	for _, show := range doc.Shows {
		assert.Equal(t, []model.Season{}, show.Seasons)
	}
}

func TestExportSelection(t *testing.T) {
	doc := Export(stateWithShows(), []string{"tt2"}, false)
	require.Len(t, doc.Shows, 1)
	assert.Equal(t, "tt2", doc.Shows[0].ImdbID)
}

func TestExportIncludeEpisodes(t *testing.T) {
	doc := Export(stateWithShows(), nil, true)
	require.Len(t, doc.Shows, 2)
	require.Len(t, doc.Shows[0].Seasons, 1)
	assert.True(t, doc.Shows[0].Seasons[0].Episodes[0].Watched)
}

func TestDecodeEnvelopeAndBareArray(t *testing.T) {
	enveloped := []byte(`{"shows":[{"imdbId":"tt1","title":"The Wire"}],"format":"series-tracker.v1"}`)
	shows, err := Decode(enveloped)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, "tt1", shows[0].ImdbID)

	bare := []byte(`[{"imdbId":"tt2","title":"Severance"}]`)
	shows, err = Decode(bare)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, "tt2", shows[0].ImdbID)

	_, err = Decode([]byte("not json"))
	assert.Error(t, err)
}

func TestImportSkipsTitleCollisions(t *testing.T) {
	state := stateWithShows()
	next, added := Import(state, []model.Show{
		// Collides case-insensitively with "The Wire" despite a different id.
		{ImdbID: "tt-other", Title: "  the wire "},
		{ImdbID: "tt3", Title: "Deadwood"},
	})

	assert.Equal(t, 1, added)
	require.Len(t, next.Shows, 3)
	assert.Equal(t, "Deadwood", next.Shows[2].Title)
}

func TestImportDefaultsTitleAndURL(t *testing.T) {
	next, added := Import(model.TrackerState{Shows: []model.Show{}}, []model.Show{{ImdbID: "tt9"}})
	assert.Equal(t, 1, added)
	require.Len(t, next.Shows, 1)
	assert.Equal(t, "tt9", next.Shows[0].Title)
	assert.Equal(t, "https://www.imdb.com/title/tt9", next.Shows[0].ImdbURL)
}

func TestImportLeavesShowOrderUntouched(t *testing.T) {
	state := model.TrackerState{
		Shows:     []model.Show{{ImdbID: "tt1", Title: "The Wire"}},
		ShowOrder: []string{"tt1"},
	}
	next, _ := Import(state, []model.Show{{ImdbID: "tt2", Title: "Severance"}})
	assert.Equal(t, []string{"tt1"}, next.ShowOrder)
}

func TestRoundTripPreservesWatched(t *testing.T) {
	doc := Export(stateWithShows(), nil, true)
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	shows, err := Decode(raw)
	require.NoError(t, err)
	next, added := Import(model.TrackerState{Shows: []model.Show{}}, shows)

	assert.Equal(t, 2, added)
	require.Len(t, next.Shows, 2)
	require.Len(t, next.Shows[0].Seasons, 1)
	assert.True(t, next.Shows[0].Seasons[0].Episodes[0].Watched)
	assert.False(t, next.Shows[0].Seasons[0].Episodes[1].Watched)
}
