package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"seriestracker/internal/client"
)

type logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type pendingReminder struct {
	ID        string
	Content   Content
	TriggerAt time.Time
}

// LocalNotifier holds the pending-reminder set in process and delivers due
// reminders over FCM to the configured device tokens. Permission maps onto
// delivery capability: without an FCM key and at least one token the
// platform is Unavailable.
type LocalNotifier struct {
	Client       client.Client
	DeviceTokens []string
	Logger       logger

	mu      sync.Mutex
	pending []pendingReminder
}

func (n *LocalNotifier) PermissionStatus(_ context.Context) Permission {
	if n.Client.FCMKey == "" || len(n.DeviceTokens) == 0 {
		return PermissionUnavailable
	}
	return PermissionGranted
}

func (n *LocalNotifier) RequestPermission(ctx context.Context) Permission {
	return n.PermissionStatus(ctx)
}

func (n *LocalNotifier) CancelAll(_ context.Context) error {
	n.mu.Lock()
	n.pending = nil
	n.mu.Unlock()
	return nil
}

func (n *LocalNotifier) Schedule(_ context.Context, content Content, triggerAt time.Time) error {
	n.mu.Lock()
	n.pending = append(n.pending, pendingReminder{
		ID:        uuid.NewString(),
		Content:   content,
		TriggerAt: triggerAt,
	})
	n.mu.Unlock()
	return nil
}

// PendingCount reports the current pending-reminder set size.
func (n *LocalNotifier) PendingCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pending)
}

// DispatchInInterval delivers due reminders on every tick until ctx is done.
func (n *LocalNotifier) DispatchInInterval(ctx context.Context, ticker *time.Ticker) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.dispatchDue(time.Now())
		}
	}
}

func (n *LocalNotifier) dispatchDue(now time.Time) {
	n.mu.Lock()
	var due, rest []pendingReminder
	for _, r := range n.pending {
		if r.TriggerAt.After(now) {
			rest = append(rest, r)
		} else {
			due = append(due, r)
		}
	}
	n.pending = rest
	n.mu.Unlock()

	if len(due) == 0 {
		return
	}
	sort.Slice(due, func(i, j int) bool { return due[i].TriggerAt.Before(due[j].TriggerAt) })

	for _, r := range due {
		fcmReq := client.FCMSendRequest{
			Notification: client.FCMNotification{
				Title: r.Content.Title,
				Body:  r.Content.Body,
				Sound: "default",
			},
			Data: client.FCMData{
				ImdbID:        r.Content.ImdbID,
				EpisodeNumber: r.Content.EpisodeNumber,
				EpisodeDate:   r.Content.EpisodeDate,
			},
			RegistrationIDs: n.DeviceTokens,
		}
		n.Logger.Infof("dispatchDue: Sending reminder to %d Device(s), title: %s, ID: %s",
			len(n.DeviceTokens), r.Content.Title, r.ID)
		fcmResp, err := n.Client.FCMSendNotification(fcmReq)
		if err != nil {
			n.Logger.Errorf("dispatchDue: Error sending reminder to FCM, ID: %s, err: %v", r.ID, err)
			continue
		}
		n.Logger.Debugf("dispatchDue: Send reminder results, ID: %s, success: %d, failure: %d",
			r.ID, fcmResp.Success, fcmResp.Failure)
	}
}
