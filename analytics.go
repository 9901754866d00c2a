/*
 * Copyright (c) 2025 CopyLab
 *
 * This file is part of copylab-go, which is MIT licensed.
 * See http://opensource.org/licenses/MIT
 */

package copylab

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PermissionStatus is a notification permission state reported by the host
// application.
type PermissionStatus string

// Permission states.
const (
	PermissionAuthorized    PermissionStatus = "authorized"
	PermissionDenied        PermissionStatus = "denied"
	PermissionNotDetermined PermissionStatus = "not_determined"
	PermissionProvisional   PermissionStatus = "provisional"
)

// PushOpenParams describe a push open event. All fields are optional; an
// empty UserID falls back to the identified user.
type PushOpenParams struct {
	UserID         string
	NotificationID string
	PlacementID    string
	TemplateID     string
}

// LogAppOpen records an app open for the identified user. The event is
// delivered in the background; failures are logged, never returned.
func (c *Client) LogAppOpen(ctx context.Context) error {
	userID, err := c.requireUser("")
	if err != nil {
		return err
	}
	c.dispatch(ctx, endpointLogAppOpen, &appOpenEvent{
		UserID:   userID,
		Platform: c.platform,
	})
	return nil
}

// LogPushOpen records a push notification open. The event is delivered in
// the background; failures are logged, never returned.
func (c *Client) LogPushOpen(ctx context.Context, params PushOpenParams) error {
	userID, err := c.requireUser(params.UserID)
	if err != nil {
		return err
	}
	c.dispatch(ctx, endpointLogPushOpen, &pushOpenEvent{
		UserID:         userID,
		Platform:       c.platform,
		NotificationID: params.NotificationID,
		PlacementID:    params.PlacementID,
		TemplateID:     params.TemplateID,
	})
	return nil
}

// SyncNotificationPermission reports the notification permission state for
// the identified user. Delivered in the background like the other events.
func (c *Client) SyncNotificationPermission(ctx context.Context, status PermissionStatus) error {
	if err := validation.Validate(string(status), validation.Required); err != nil {
		return err
	}
	userID, err := c.requireUser("")
	if err != nil {
		return err
	}
	c.dispatch(ctx, endpointSyncPermission, &permissionEvent{
		UserID:             userID,
		NotificationStatus: string(status),
		Platform:           c.platform,
	})
	return nil
}

// dispatch sends an event on its own goroutine. The request is detached
// from the caller's cancellation and bounded by the client timeout, so a
// returning caller cannot kill an event mid-flight.
func (c *Client) dispatch(ctx context.Context, endpoint string, event any) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithoutCancel(ctx)

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		if err := c.postJSON(ctx, endpoint, event, nil); err != nil {
			c.logger.Warn("analytics event failed", "endpoint", endpoint, "error", err)
		}
	}()
}

// Flush waits until in-flight analytics events are delivered or the
// context expires.
func (c *Client) Flush(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes pending analytics events, waiting at most the client
// timeout.
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.Flush(ctx)
}
