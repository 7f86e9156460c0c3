// Package tracker is the sole mutation surface over the persisted tracker
// document. Every mutation reads the full document fresh, applies one
// transform, persists the full result, republishes the in-memory snapshot
// and, where scheduling can be affected, reconciles notifications.
package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"seriestracker/internal/misc"
	"seriestracker/internal/model"
	"seriestracker/internal/progress"
	"seriestracker/internal/schedule"
	"seriestracker/internal/store"
)

type logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type Tracker struct {
	Store     store.Store
	Scheduler *schedule.Scheduler
	Logger    logger

	// mu serializes mutations and guards the published snapshot. The storage
	// layer itself stays last-writer-wins across processes; in-process,
	// mutations queue here.
	mu    sync.RWMutex
	state model.TrackerState
}

// Load reads the persisted document, publishes it and reconciles
// notifications against it. Called once at startup.
func (t *Tracker) Load(ctx context.Context) error {
	return t.mutate(ctx, true, func(s model.TrackerState) model.TrackerState {
		return s
	})
}

// Refresh re-reads the persisted document on an external change signal.
// Publish only, no reconciliation.
func (t *Tracker) Refresh(ctx context.Context) error {
	return t.mutate(ctx, false, func(s model.TrackerState) model.TrackerState {
		return s
	})
}

// SetProfile replaces the profile wholesale, rederiving the slug from the
// name and keeping the original registration timestamp across renames.
func (t *Tracker) SetProfile(ctx context.Context, profile model.UserProfile) error {
	return t.mutate(ctx, false, func(s model.TrackerState) model.TrackerState {
		profile.Slug = model.Slugify(profile.Name)
		if profile.RegisteredAt == "" {
			if s.Profile != nil && s.Profile.RegisteredAt != "" {
				profile.RegisteredAt = s.Profile.RegisteredAt
			} else {
				profile.RegisteredAt = time.Now().UTC().Format(time.RFC3339)
			}
		}
		s.Profile = &profile
		return s
	})
}

// SetOMDBAPIKey stores a user-supplied provider credential in the document.
func (t *Tracker) SetOMDBAPIKey(ctx context.Context, key string) error {
	return t.mutate(ctx, false, func(s model.TrackerState) model.TrackerState {
		s.OMDBAPIKey = key
		return s
	})
}

// AddShow prepends a show, defaulting the hide-watched preference and
// appending its id to the order. Idempotent on imdbId.
func (t *Tracker) AddShow(ctx context.Context, show model.Show) error {
	return t.mutate(ctx, true, func(s model.TrackerState) model.TrackerState {
		if _, exists := s.FindShow(show.ImdbID); exists {
			return s
		}
		show.HideWatched = true
		s.Shows = append([]model.Show{show}, s.Shows...)
		if s.ShowOrder != nil && !contains(s.ShowOrder, show.ImdbID) {
			s.ShowOrder = append(s.ShowOrder, show.ImdbID)
		}
		return s
	})
}

// RemoveShow drops the id from both the show set and the order.
func (t *Tracker) RemoveShow(ctx context.Context, imdbID string) error {
	return t.mutate(ctx, true, func(s model.TrackerState) model.TrackerState {
		shows := s.Shows[:0:0]
		for _, sh := range s.Shows {
			if sh.ImdbID != imdbID {
				shows = append(shows, sh)
			}
		}
		s.Shows = shows
		if s.ShowOrder != nil {
			order := s.ShowOrder[:0:0]
			for _, id := range s.ShowOrder {
				if id != imdbID {
					order = append(order, id)
				}
			}
			s.ShowOrder = order
		}
		return s
	})
}

// UpdateShow replaces the show with the matching imdbId in place, preserving
// array order. Used for watched toggles, tentative-schedule edits and season
// refresh merges.
func (t *Tracker) UpdateShow(ctx context.Context, show model.Show) error {
	return t.mutate(ctx, true, func(s model.TrackerState) model.TrackerState {
		for i := range s.Shows {
			if s.Shows[i].ImdbID == show.ImdbID {
				s.Shows[i] = show
				break
			}
		}
		return s
	})
}

// ReplaceState swaps the whole document. No order validation happens here;
// stale order entries are healed lazily by OrderedShows on read.
func (t *Tracker) ReplaceState(ctx context.Context, next model.TrackerState) error {
	return t.mutate(ctx, true, func(model.TrackerState) model.TrackerState {
		return next
	})
}

// Reset wipes the document back to empty. User-initiated full wipe.
func (t *Tracker) Reset(ctx context.Context) error {
	return t.ReplaceState(ctx, model.EmptyState())
}

// SetNotificationDay stores the global reminder lead time. The caller clamps
// the value to [0,14] before invocation.
func (t *Tracker) SetNotificationDay(ctx context.Context, day int) error {
	return t.mutate(ctx, true, func(s model.TrackerState) model.TrackerState {
		s.NotificationDay = &day
		return s
	})
}

// ReorderShows removes the id at fromIndex of the effective order and
// reinserts it at toIndex. Out-of-range indexes are a no-op.
func (t *Tracker) ReorderShows(ctx context.Context, fromIndex, toIndex int) error {
	return t.mutate(ctx, false, func(s model.TrackerState) model.TrackerState {
		order := append([]string(nil), s.EffectiveOrder()...)
		if fromIndex < 0 || fromIndex >= len(order) || toIndex < 0 || toIndex >= len(order) {
			return s
		}
		moved := order[fromIndex]
		order = append(order[:fromIndex], order[fromIndex+1:]...)
		order = append(order[:toIndex], append([]string{moved}, order[toIndex:]...)...)
		s.ShowOrder = order
		return s
	})
}

// MoveShowToTop moves the id to position 0 of the effective order. No-op when
// the id is absent or already first.
func (t *Tracker) MoveShowToTop(ctx context.Context, imdbID string) error {
	return t.mutate(ctx, false, func(s model.TrackerState) model.TrackerState {
		order := s.EffectiveOrder()
		idx := -1
		for i, id := range order {
			if id == imdbID {
				idx = i
				break
			}
		}
		if idx <= 0 {
			return s
		}
		next := make([]string, 0, len(order))
		next = append(next, imdbID)
		for _, id := range order {
			if id != imdbID {
				next = append(next, id)
			}
		}
		s.ShowOrder = next
		return s
	})
}

// State returns the published in-memory snapshot.
func (t *Tracker) State() model.TrackerState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// GetShowByID is a pure read over the published snapshot.
func (t *Tracker) GetShowByID(imdbID string) (model.Show, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.FindShow(imdbID)
}

// GetOrderedShows maps the effective order through the show set, silently
// dropping stale ids.
func (t *Tracker) GetOrderedShows() []model.Show {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.OrderedShows()
}

// GetShowProgress counts watched episodes across all seasons of the show.
// Unknown ids report zero progress.
func (t *Tracker) GetShowProgress(imdbID string) progress.Progress {
	show, ok := t.GetShowByID(imdbID)
	if !ok {
		return progress.Progress{}
	}
	return progress.Series(show)
}

func (t *Tracker) mutate(ctx context.Context, reschedule bool, transform func(model.TrackerState) model.TrackerState) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, err := t.Store.GetState(ctx)
	if err != nil {
		return errors.Wrap(err, "error reading TrackerState")
	}
	next := transform(current)
	if err := t.Store.SetState(ctx, next); err != nil {
		return errors.Wrap(err, "error writing TrackerState")
	}
	t.state = next

	if reschedule && t.Scheduler != nil {
		leadDays := misc.Clamp(next.NotificationLeadDays(), 0, 14)
		if err := t.Scheduler.Reconcile(ctx, next, leadDays); err != nil {
			t.Logger.Errorf("mutate: Error reconciling notifications, err: %v", err)
		}
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
