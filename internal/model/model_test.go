package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Walter White", "walter-white"},
		{"  Walter   White!  ", "walter-white"},
		{"Jesse_Pinkman", "jessepinkman"},
		{"a--b - c", "a-b-c"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.name), "Slugify(%q)", tt.name)
	}
}

func TestEffectiveOrder(t *testing.T) {
	ts := TrackerState{Shows: []Show{{ImdbID: "tt1"}, {ImdbID: "tt2"}}}
	assert.Equal(t, []string{"tt1", "tt2"}, ts.EffectiveOrder())

	ts.ShowOrder = []string{"tt2", "tt1"}
	assert.Equal(t, []string{"tt2", "tt1"}, ts.EffectiveOrder())
}

func TestOrderedShowsDropsStaleIDs(t *testing.T) {
	ts := TrackerState{
		Shows:     []Show{{ImdbID: "tt1"}, {ImdbID: "tt2"}},
		ShowOrder: []string{"tt2", "tt-gone", "tt1"},
	}
	ordered := ts.OrderedShows()
	assert.Len(t, ordered, 2)
	assert.Equal(t, "tt2", ordered[0].ImdbID)
	assert.Equal(t, "tt1", ordered[1].ImdbID)
}

func TestNotificationLeadDays(t *testing.T) {
	ts := TrackerState{}
	assert.Equal(t, DefaultNotificationDay, ts.NotificationLeadDays())

	day := 5
	ts.NotificationDay = &day
	assert.Equal(t, 5, ts.NotificationLeadDays())

	zero := 0
	ts.NotificationDay = &zero
	assert.Equal(t, 0, ts.NotificationLeadDays())
}

func TestSeasonByNumber(t *testing.T) {
	show := Show{Seasons: []Season{{SeasonNumber: 1}, {SeasonNumber: 2}}}
	season, ok := show.SeasonByNumber(2)
	assert.True(t, ok)
	assert.Equal(t, 2, season.SeasonNumber)

	_, ok = show.SeasonByNumber(3)
	assert.False(t, ok)
}
