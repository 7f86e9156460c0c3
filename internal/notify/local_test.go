package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seriestracker/internal/client"
)

type testLogger struct{}

func (testLogger) Debugf(format string, v ...any) {}
func (testLogger) Infof(format string, v ...any)  {}
func (testLogger) Errorf(format string, v ...any) {}

func TestLocalNotifierPermissionStatus(t *testing.T) {
	ctx := context.Background()

	n := &LocalNotifier{Logger: testLogger{}}
	assert.Equal(t, PermissionUnavailable, n.PermissionStatus(ctx))

	n.Client.FCMKey = "test-key"
	assert.Equal(t, PermissionUnavailable, n.PermissionStatus(ctx))

	n.DeviceTokens = []string{"token-1"}
	assert.Equal(t, PermissionGranted, n.PermissionStatus(ctx))
	assert.Equal(t, PermissionGranted, n.RequestPermission(ctx))
}

func TestLocalNotifierScheduleAndCancelAll(t *testing.T) {
	ctx := context.Background()
	n := &LocalNotifier{Logger: testLogger{}}

	require.NoError(t, n.Schedule(ctx, Content{Title: "first"}, time.Now()))
	require.NoError(t, n.Schedule(ctx, Content{Title: "second"}, time.Now()))
	assert.Equal(t, 2, n.PendingCount())

	require.NoError(t, n.CancelAll(ctx))
	assert.Equal(t, 0, n.PendingCount())
}

func TestLocalNotifierDispatchDue(t *testing.T) {
	var mu sync.Mutex
	var received []client.FCMSendRequest
	var authHeaders []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req client.FCMSendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		mu.Lock()
		received = append(received, req)
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		mu.Unlock()
		_, _ = w.Write([]byte(`{"success":1,"failure":0,"results":[{}]}`))
	}))
	defer srv.Close()

	n := &LocalNotifier{
		Client: client.Client{
			Client:      srv.Client(),
			FCMKey:      "test-key",
			FCMEndpoint: srv.URL,
			Logger:      testLogger{},
		},
		DeviceTokens: []string{"token-1", "token-2"},
		Logger:       testLogger{},
	}

	ctx := context.Background()
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, n.Schedule(ctx, Content{
		Title:         "Severance • Episode 5",
		Body:          "Airs on Oct 1, 2026",
		ImdbID:        "tt1",
		EpisodeNumber: 5,
		EpisodeDate:   "2026-10-01T00:00:00Z",
	}, now.Add(-time.Hour)))
	require.NoError(t, n.Schedule(ctx, Content{Title: "later"}, now.Add(time.Hour)))
	require.NoError(t, n.Schedule(ctx, Content{Title: "due now"}, now))

	n.dispatchDue(now)

	assert.Equal(t, 1, n.PendingCount())
	mu.Lock()
	require.Len(t, received, 2)
	assert.Equal(t, "Severance • Episode 5", received[0].Notification.Title)
	assert.Equal(t, "Airs on Oct 1, 2026", received[0].Notification.Body)
	assert.Equal(t, "default", received[0].Notification.Sound)
	assert.Equal(t, "tt1", received[0].Data.ImdbID)
	assert.Equal(t, 5, received[0].Data.EpisodeNumber)
	assert.Equal(t, "2026-10-01T00:00:00Z", received[0].Data.EpisodeDate)
	assert.Equal(t, []string{"token-1", "token-2"}, received[0].RegistrationIDs)
	assert.Equal(t, "due now", received[1].Notification.Title)
	assert.Equal(t, "key=test-key", authHeaders[0])
	mu.Unlock()

	n.dispatchDue(now)
	mu.Lock()
	assert.Len(t, received, 2, "already delivered reminders must not be sent again")
	mu.Unlock()
}
