package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seriestracker/internal/client"
	"seriestracker/internal/model"
)

func TestCleanNumber(t *testing.T) {
	n, ok := CleanNumber("1,234,567")
	assert.True(t, ok)
	assert.Equal(t, float64(1234567), n)

	n, ok = CleanNumber("8.6")
	assert.True(t, ok)
	assert.Equal(t, 8.6, n)

	_, ok = CleanNumber("N/A")
	assert.False(t, ok)
	_, ok = CleanNumber("")
	assert.False(t, ok)
	_, ok = CleanNumber("soon")
	assert.False(t, ok)
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("23 Apr 2017")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2017, 4, 23, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseDate("2017-04-23")
	assert.True(t, ok)
	assert.Equal(t, 23, d.Day())

	_, ok = ParseDate("N/A")
	assert.False(t, ok)
	_, ok = ParseDate("someday")
	assert.False(t, ok)
}

func TestToISO(t *testing.T) {
	assert.Equal(t, "2017-04-23T00:00:00Z", ToISO("23 Apr 2017"))
	assert.Equal(t, "", ToISO("N/A"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Bryan Cranston", "Aaron Paul"}, SplitList("Bryan Cranston, Aaron Paul"))
	assert.Nil(t, SplitList("N/A"))
	assert.Nil(t, SplitList(""))
}

func TestNormalizeShow(t *testing.T) {
	show := NormalizeShow(client.OMDBTitleResponse{
		ImdbID:       "tt0903747",
		Title:        "Breaking Bad",
		Year:         "2008–2013",
		Poster:       "https://example.com/poster.jpg",
		Plot:         "A chemistry teacher turns to crime.",
		Actors:       "Bryan Cranston, Aaron Paul",
		Genre:        "Crime, Drama",
		Released:     "20 Jan 2008",
		TotalSeasons: "5",
		ImdbRating:   "9.5",
		ImdbVotes:    "1,234,567",
		Ratings:      []client.OMDBRating{{Source: "Rotten Tomatoes", Value: "96%"}},
	})

	assert.Equal(t, "tt0903747", show.ImdbID)
	assert.Equal(t, "https://www.imdb.com/title/tt0903747", show.ImdbURL)
	assert.Equal(t, []string{"Bryan Cranston", "Aaron Paul"}, show.MainCast)
	assert.Equal(t, []string{"Crime", "Drama"}, show.Genres)
	assert.Equal(t, "2008-01-20T00:00:00Z", show.ReleaseDate)
	require.NotNil(t, show.TotalSeasons)
	assert.Equal(t, 5, *show.TotalSeasons)
	require.NotNil(t, show.Rating)
	assert.Equal(t, 9.5, *show.Rating)
	require.NotNil(t, show.Votes)
	assert.Equal(t, 1234567, *show.Votes)
	assert.Equal(t, []model.Season{}, show.Seasons)
	assert.Equal(t, []model.SourceRating{{Source: "Rotten Tomatoes", Value: "96%"}}, show.Ratings)
}

func TestNormalizeShowUnparsableFields(t *testing.T) {
	show := NormalizeShow(client.OMDBTitleResponse{
		ImdbID:       "tt1",
		Title:        "Unknown",
		TotalSeasons: "N/A",
		ImdbRating:   "N/A",
		ImdbVotes:    "N/A",
		Released:     "N/A",
	})
	assert.Nil(t, show.TotalSeasons)
	assert.Nil(t, show.Rating)
	assert.Nil(t, show.Votes)
	assert.Equal(t, "", show.ReleaseDate)
}

func TestNormalizeSeasonPreservesWatched(t *testing.T) {
	previous := []model.Season{{
		SeasonNumber: 1,
		Episodes: []model.Episode{
			{EpisodeNumber: 1, Title: "old title", Watched: true},
			{EpisodeNumber: 2, Watched: false},
			{EpisodeNumber: 3, Watched: true},
		},
	}}
	season := NormalizeSeason(client.OMDBSeasonResponse{
		Title:  "Breaking Bad",
		Season: "1",
		Episodes: []client.OMDBSeasonEpisode{
			{Title: "new title", Episode: "1", Released: "20 Jan 2008", ImdbID: "tt-ep1"},
			{Title: "ep 2", Episode: "2"},
			{Title: "ep 3", Episode: "3"},
			{Title: "ep 4", Episode: "4"},
		},
	}, "Breaking Bad", 1, previous)

	assert.Equal(t, "Breaking Bad - Season 1", season.Title)
	assert.Equal(t, 1, season.SeasonNumber)
	require.Len(t, season.Episodes, 4)

	assert.Equal(t, "new title", season.Episodes[0].Title)
	assert.True(t, season.Episodes[0].Watched)
	assert.Equal(t, "2008-01-20T00:00:00Z", season.Episodes[0].ReleaseDate)
	assert.Equal(t, "https://www.imdb.com/title/tt-ep1", season.Episodes[0].ImdbURL)

	assert.False(t, season.Episodes[1].Watched)
	assert.True(t, season.Episodes[2].Watched)
	// Not previously seen, defaults to unwatched.
	assert.False(t, season.Episodes[3].Watched)
}

func TestNormalizeSeasonIgnoresOtherSeasonsWatched(t *testing.T) {
	previous := []model.Season{{
		SeasonNumber: 2,
		Episodes:     []model.Episode{{EpisodeNumber: 1, Watched: true}},
	}}
	season := NormalizeSeason(client.OMDBSeasonResponse{
		Season:   "1",
		Episodes: []client.OMDBSeasonEpisode{{Title: "ep 1", Episode: "1"}},
	}, "Show", 1, previous)
	assert.False(t, season.Episodes[0].Watched)
}

func TestNextAirDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	seasons := []model.Season{{
		SeasonNumber: 1,
		Episodes: []model.Episode{
			{EpisodeNumber: 1, ReleaseDate: "2026-08-01T00:00:00Z"},
			{EpisodeNumber: 2, ReleaseDate: "2026-09-15T00:00:00Z"},
			{EpisodeNumber: 3, ReleaseDate: "2026-09-08T00:00:00Z"},
			{EpisodeNumber: 4, ReleaseDate: "N/A"},
		},
	}}
	assert.Equal(t, "2026-09-08T00:00:00Z", NextAirDate(seasons, now))

	past := []model.Season{{Episodes: []model.Episode{{ReleaseDate: "2020-01-01T00:00:00Z"}}}}
	assert.Equal(t, "", NextAirDate(past, now))
	assert.Equal(t, "", NextAirDate(nil, now))
}
