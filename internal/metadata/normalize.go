// Package metadata maps the provider's loosely typed responses into the
// internal show shapes. Parse helpers return (value, ok) instead of erroring:
// absent or unparsable provider fields become absent model fields, never NaN
// or zero-value garbage.
package metadata

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"seriestracker/internal/client"
	"seriestracker/internal/model"
)

// dateLayouts covers the provider's native "23 Apr 2017" format plus the ISO
// forms already-normalized data may carry.
var dateLayouts = []string{
	"02 Jan 2006",
	time.RFC3339,
	"2006-01-02",
}

// CleanNumber parses a possibly comma-grouped numeric string like "1,234".
func CleanNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "N/A" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func CleanInt(s string) (int, bool) {
	n, ok := CleanNumber(s)
	if !ok {
		return 0, false
	}
	return int(n), true
}

// ParseDate accepts the provider's native date format and common ISO forms.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToISO normalizes a provider date to ISO-8601, or "" if unparsable.
func ToISO(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// SplitList splits a comma-joined provider field like the Actors list,
// trimming entries and dropping empty ones.
func SplitList(s string) []string {
	if s == "" || s == "N/A" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// NormalizeShow maps a full title response to the internal Show shape with an
// empty season list.
func NormalizeShow(full client.OMDBTitleResponse) model.Show {
	show := model.Show{
		ImdbID:      full.ImdbID,
		Title:       full.Title,
		Thumbnail:   full.Poster,
		ImdbURL:     model.ImdbTitleURL(full.ImdbID),
		ReleaseYear: full.Year,
		MainCast:    SplitList(full.Actors),
		Plot:        full.Plot,
		Seasons:     []model.Season{},
		Genres:      SplitList(full.Genre),
		ReleaseDate: ToISO(full.Released),
		Awards:      full.Awards,
		Rated:       full.Rated,
		Runtime:     full.Runtime,
		Director:    full.Director,
		Writer:      full.Writer,
		Language:    full.Language,
		Country:     full.Country,
		Metascore:   full.Metascore,
	}
	if n, ok := CleanInt(full.TotalSeasons); ok {
		show.TotalSeasons = &n
	}
	if r, ok := CleanNumber(full.ImdbRating); ok {
		show.Rating = &r
	}
	if v, ok := CleanInt(full.ImdbVotes); ok {
		show.Votes = &v
	}
	for _, r := range full.Ratings {
		show.Ratings = append(show.Ratings, model.SourceRating{Source: r.Source, Value: r.Value})
	}
	return show
}

// NormalizeSeason maps one season response, carrying watched flags over from
// the previously stored season with the same number. An episode keeps its
// watched state when its episode number is unchanged across the refetch;
// episodes not previously seen default to unwatched. All metadata fields are
// overwritten from the fresh fetch.
func NormalizeSeason(resp client.OMDBSeasonResponse, showTitle string, seasonNumber int, previous []model.Season) model.Season {
	number := seasonNumber
	if n, ok := CleanInt(resp.Season); ok {
		number = n
	}
	title := resp.Title
	if title == "" {
		title = showTitle
	}

	previousWatched := map[int]bool{}
	for _, prev := range previous {
		if prev.SeasonNumber != number {
			continue
		}
		for _, ep := range prev.Episodes {
			if ep.EpisodeNumber != 0 {
				previousWatched[ep.EpisodeNumber] = ep.Watched
			}
		}
	}

	season := model.Season{
		Title:        fmt.Sprintf("%s - Season %d", title, number),
		SeasonNumber: number,
		Episodes:     []model.Episode{},
	}
	for _, ep := range resp.Episodes {
		episode := model.Episode{
			Title:       ep.Title,
			ReleaseDate: ToISO(ep.Released),
			Rating:      ep.ImdbRating,
			ImdbID:      ep.ImdbID,
		}
		if ep.ImdbID != "" {
			episode.ImdbURL = model.ImdbTitleURL(ep.ImdbID)
		}
		if n, ok := CleanInt(ep.Episode); ok {
			episode.EpisodeNumber = n
			episode.Watched = previousWatched[n]
		}
		season.Episodes = append(season.Episodes, episode)
	}
	return season
}

// NextAirDate is the earliest strictly-future episode release across the
// given seasons, as ISO-8601, or "" when none is future-dated.
func NextAirDate(seasons []model.Season, now time.Time) string {
	var next time.Time
	for _, season := range seasons {
		for _, ep := range season.Episodes {
			t, ok := ParseDate(ep.ReleaseDate)
			if !ok || !t.After(now) {
				continue
			}
			if next.IsZero() || t.Before(next) {
				next = t
			}
		}
	}
	if next.IsZero() {
		return ""
	}
	return next.UTC().Format(time.RFC3339)
}
