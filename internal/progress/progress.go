// Package progress derives watched/total counts from the current state.
// Everything here is pure and safe to call on every render of a client.
package progress

import (
	"math"

	"seriestracker/internal/model"
)

type Progress struct {
	Watched int `json:"watched"`
	Total   int `json:"total"`
}

// Series counts watched and total episodes across all seasons of a show.
func Series(show model.Show) Progress {
	var p Progress
	for _, season := range show.Seasons {
		sp := Season(season)
		p.Watched += sp.Watched
		p.Total += sp.Total
	}
	return p
}

// Season counts watched and total episodes in one season.
func Season(season model.Season) Progress {
	var p Progress
	for _, ep := range season.Episodes {
		p.Total++
		if ep.Watched {
			p.Watched++
		}
	}
	return p
}

// Percentage is the rounded watched share, 0 for an empty episode list.
func (p Progress) Percentage() int {
	if p.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(p.Watched) / float64(p.Total)))
}
