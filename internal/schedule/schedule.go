// Package schedule turns a show's tentative recurrence rule into concrete
// reminder firings and keeps the platform's pending set in sync with the
// tracker state.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"seriestracker/internal/metadata"
	"seriestracker/internal/misc"
	"seriestracker/internal/model"
	"seriestracker/internal/notify"
)

// DefaultMaxOccurrences bounds how many future reminders one show can hold.
const DefaultMaxOccurrences = 20

type logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type Scheduler struct {
	Notifier       notify.Notifier
	Logger         logger
	MaxOccurrences int
	// Now is replaceable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Scheduler) maxOccurrences() int {
	if s.MaxOccurrences > 0 {
		return s.MaxOccurrences
	}
	return DefaultMaxOccurrences
}

// ComputeOccurrences is the pure recurrence computation: occurrence i is the
// baseline date plus i*frequencyDays days. A show without a baseline date or
// a frequency, or with an unparsable baseline, yields no occurrences. When
// the tentative next episode and its season's episode list are known, the
// sequence is capped at the number of episodes believed to remain in that
// season. Recomputing with the same inputs always yields the same dates.
func ComputeOccurrences(show model.Show, maxOccurrences int) []time.Time {
	if show.TentativeNextAirDate == "" || show.TentativeFrequencyDays == 0 {
		return nil
	}
	base, ok := metadata.ParseDate(show.TentativeNextAirDate)
	if !ok {
		return nil
	}

	frequencyDays := misc.Max(1, show.TentativeFrequencyDays)
	count := maxOccurrences

	if next := show.TentativeNextEpisode; next != nil {
		if season, ok := show.SeasonByNumber(next.SeasonNumber); ok {
			maxEpisode := 0
			for _, ep := range season.Episodes {
				maxEpisode = misc.Max(maxEpisode, ep.EpisodeNumber)
			}
			if maxEpisode > 0 {
				remaining := maxEpisode - next.EpisodeNumber + 1
				count = misc.Min(maxOccurrences, misc.Max(1, remaining))
			}
		}
	}

	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		dates = append(dates, base.AddDate(0, 0, i*frequencyDays))
	}
	return dates
}

// Reconcile replaces the platform's pending-reminder set with one derived
// from the given state: cancel everything, then register a reminder leadDays
// before each future occurrence. Without granted permission it does nothing,
// which is an expected steady state rather than a failure. leadDays is
// assumed clamped to [0,14] by the caller.
func (s *Scheduler) Reconcile(ctx context.Context, state model.TrackerState, leadDays int) error {
	permission := s.Notifier.PermissionStatus(ctx)
	if permission != notify.PermissionGranted {
		s.Logger.Debugf("Reconcile: Notification permission is %s, skipping scheduling", permission)
		return nil
	}

	if err := s.Notifier.CancelAll(ctx); err != nil {
		return errors.Wrap(err, "error cancelling scheduled reminders")
	}

	now := s.now()
	scheduled := 0
	for _, show := range state.Shows {
		dates := ComputeOccurrences(show, s.maxOccurrences())
		baseEpisode := 0
		if show.TentativeNextEpisode != nil {
			baseEpisode = show.TentativeNextEpisode.EpisodeNumber
		}

		for idx, episodeDate := range dates {
			notifyAt := episodeDate.AddDate(0, 0, -leadDays)
			if !notifyAt.After(now) {
				continue
			}

			episodeNumber := 0
			episodeLabel := "New episode"
			if baseEpisode > 0 {
				episodeNumber = baseEpisode + idx
				episodeLabel = fmt.Sprintf("Episode %d", episodeNumber)
			}

			content := notify.Content{
				Title:         fmt.Sprintf("%s • %s", show.Title, episodeLabel),
				Body:          fmt.Sprintf("Airs on %s", episodeDate.Format("Jan 2, 2006")),
				ImdbID:        show.ImdbID,
				EpisodeNumber: episodeNumber,
				EpisodeDate:   episodeDate.UTC().Format(time.RFC3339),
			}
			if err := s.Notifier.Schedule(ctx, content, notifyAt); err != nil {
				s.Logger.Errorf("Reconcile: Error scheduling reminder for Show: %s, at: %s, err: %v",
					show.ImdbID, notifyAt, err)
				continue
			}
			scheduled++
		}
	}
	s.Logger.Debugf("Reconcile: Scheduled %d reminder(s) for %d Show(s)", scheduled, len(state.Shows))
	return nil
}
