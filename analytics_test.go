/*
 * Copyright (c) 2025 CopyLab
 *
 * This file is part of copylab-go, which is MIT licensed.
 * See http://opensource.org/licenses/MIT
 */

package copylab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventRecorder collects analytics request bodies by path.
type eventRecorder struct {
	mu     sync.Mutex
	bodies map[string][]map[string]any
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{bodies: map[string][]map[string]any{}}
}

func (r *eventRecorder) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		r.mu.Lock()
		r.bodies[req.URL.Path] = append(r.bodies[req.URL.Path], body)
		r.mu.Unlock()
		fmt.Fprint(w, `{"success": true}`)
	}
}

func (r *eventRecorder) get(path string) []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bodies[path]
}

func TestLogAppOpen(t *testing.T) {
	recorder := newEventRecorder()
	server := httptest.NewServer(recorder.handler(t))
	defer server.Close()

	client := newTestClient(t, server)
	client.Identify("user123")

	require.NoError(t, client.LogAppOpen(context.Background()))
	require.NoError(t, client.Flush(context.Background()))

	events := recorder.get("/log_app_open")
	require.Len(t, events, 1)
	assert.Equal(t, "user123", events[0]["user_id"])
	assert.Equal(t, "go", events[0]["platform"])
}

func TestLogAppOpenRequiresUser(t *testing.T) {
	client, err := New(&Config{APIKey: "cl_demo_secret"})
	require.NoError(t, err)

	assert.ErrorIs(t, client.LogAppOpen(context.Background()), ErrNoUser)
}

func TestLogPushOpen(t *testing.T) {
	recorder := newEventRecorder()
	server := httptest.NewServer(recorder.handler(t))
	defer server.Close()

	client := newTestClient(t, server)
	client.Identify("user123")

	require.NoError(t, client.LogPushOpen(context.Background(), PushOpenParams{
		NotificationID: "notif_42",
		PlacementID:    "daily_reminder",
		TemplateID:     "tmpl_7",
	}))
	require.NoError(t, client.Flush(context.Background()))

	events := recorder.get("/log_push_open")
	require.Len(t, events, 1)
	assert.Equal(t, "user123", events[0]["user_id"])
	assert.Equal(t, "notif_42", events[0]["notification_id"])
	assert.Equal(t, "daily_reminder", events[0]["placement_id"])
	assert.Equal(t, "tmpl_7", events[0]["template_id"])
}

func TestLogPushOpenUserOverride(t *testing.T) {
	recorder := newEventRecorder()
	server := httptest.NewServer(recorder.handler(t))
	defer server.Close()

	client := newTestClient(t, server)

	// no Identify: the per-event user stands alone
	require.NoError(t, client.LogPushOpen(context.Background(), PushOpenParams{
		UserID: "other_user",
	}))
	require.NoError(t, client.Flush(context.Background()))

	events := recorder.get("/log_push_open")
	require.Len(t, events, 1)
	assert.Equal(t, "other_user", events[0]["user_id"])
	assert.NotContains(t, events[0], "notification_id")
}

func TestSyncNotificationPermission(t *testing.T) {
	recorder := newEventRecorder()
	server := httptest.NewServer(recorder.handler(t))
	defer server.Close()

	client := newTestClient(t, server)
	client.Identify("user123")

	require.NoError(t, client.SyncNotificationPermission(context.Background(), PermissionDenied))
	require.NoError(t, client.Flush(context.Background()))

	events := recorder.get("/sync_notification_permission")
	require.Len(t, events, 1)
	assert.Equal(t, "denied", events[0]["notification_status"])

	assert.Error(t, client.SyncNotificationPermission(context.Background(), ""))
}

func TestAnalyticsFailuresDoNotPropagate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": "boom"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	client.Identify("user123")

	require.NoError(t, client.LogAppOpen(context.Background()))
	require.NoError(t, client.Flush(context.Background()))
}

func TestAnalyticsDetachedFromCallerCancellation(t *testing.T) {
	recorder := newEventRecorder()
	server := httptest.NewServer(recorder.handler(t))
	defer server.Close()

	client := newTestClient(t, server)
	client.Identify("user123")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, client.LogAppOpen(ctx))
	cancel()

	require.NoError(t, client.Flush(context.Background()))
	assert.Len(t, recorder.get("/log_app_open"), 1)
}

func TestFlushTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		fmt.Fprint(w, `{"success": true}`)
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server)
	client.Identify("user123")
	require.NoError(t, client.LogAppOpen(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, client.Flush(ctx), context.DeadlineExceeded)
}

func TestClose(t *testing.T) {
	recorder := newEventRecorder()
	server := httptest.NewServer(recorder.handler(t))
	defer server.Close()

	client := newTestClient(t, server)
	client.Identify("user123")
	require.NoError(t, client.LogAppOpen(context.Background()))
	require.NoError(t, client.Close())
	assert.Len(t, recorder.get("/log_app_open"), 1)
}
