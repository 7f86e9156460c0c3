// Package notify is the platform notification boundary: permission state,
// a pending-reminder queue, and delivery.
package notify

import (
	"context"
	"time"
)

// Permission is the platform notification permission state. Unavailable
// means the platform has no notification capability at all, distinct from
// Denied. Denial is not an error, it is a valid steady state that disables
// scheduling.
type Permission string

const (
	PermissionGranted      Permission = "granted"
	PermissionDenied       Permission = "denied"
	PermissionUndetermined Permission = "undetermined"
	PermissionUnavailable  Permission = "unavailable"
	PermissionError        Permission = "error"
)

// Content is one reminder's display text plus the payload the app reads when
// the notification is opened.
type Content struct {
	Title         string
	Body          string
	ImdbID        string
	EpisodeNumber int
	EpisodeDate   string
}

type Notifier interface {
	PermissionStatus(ctx context.Context) Permission
	RequestPermission(ctx context.Context) Permission
	// CancelAll clears every reminder this app has scheduled.
	CancelAll(ctx context.Context) error
	// Schedule registers a reminder to fire at triggerAt.
	Schedule(ctx context.Context, content Content, triggerAt time.Time) error
}
