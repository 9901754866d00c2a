/*
 * Copyright (c) 2025 CopyLab
 *
 * This file is part of copylab-go, which is MIT licensed.
 * See http://opensource.org/licenses/MIT
 */

package copylab

import (
	"context"
	"sync"
)

// The package-level functions operate on a process-wide client installed
// by Configure, matching the SDK surface on other platforms. Every call
// before Configure fails with ErrNotConfigured.

var (
	defaultMu     sync.RWMutex
	defaultClient *Client
)

// Configure installs the package-level client.
func Configure(config *Config, options ...ClientOption) error {
	client, err := New(config, options...)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defaultClient = client
	defaultMu.Unlock()
	return nil
}

func getDefault() (*Client, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultClient == nil {
		return nil, ErrNotConfigured
	}
	return defaultClient, nil
}

// Identify associates subsequent package-level calls with a user identity.
func Identify(userID string) error {
	client, err := getDefault()
	if err != nil {
		return err
	}
	client.Identify(userID)
	return nil
}

// Logout clears the identified user.
func Logout() error {
	client, err := getDefault()
	if err != nil {
		return err
	}
	client.Logout()
	return nil
}

// GenerateNotification calls Client.GenerateNotification on the
// package-level client.
func GenerateNotification(ctx context.Context, params GenerateParams) (*Notification, error) {
	client, err := getDefault()
	if err != nil {
		return nil, err
	}
	return client.GenerateNotification(ctx, params)
}

// Notify calls Client.Notify on the package-level client.
func Notify(ctx context.Context, placementID string, variables map[string]any) (*Notification, error) {
	client, err := getDefault()
	if err != nil {
		return nil, err
	}
	return client.Notify(ctx, placementID, variables)
}

// SubscribeToTopic calls Client.SubscribeToTopic on the package-level client.
func SubscribeToTopic(ctx context.Context, topicID string) error {
	client, err := getDefault()
	if err != nil {
		return err
	}
	return client.SubscribeToTopic(ctx, topicID)
}

// UnsubscribeFromTopic calls Client.UnsubscribeFromTopic on the
// package-level client.
func UnsubscribeFromTopic(ctx context.Context, topicID string) error {
	client, err := getDefault()
	if err != nil {
		return err
	}
	return client.UnsubscribeFromTopic(ctx, topicID)
}

// GetTopicSubscribers calls Client.GetTopicSubscribers on the
// package-level client.
func GetTopicSubscribers(ctx context.Context, topicID string) ([]string, error) {
	client, err := getDefault()
	if err != nil {
		return nil, err
	}
	return client.GetTopicSubscribers(ctx, topicID)
}

// LogAppOpen calls Client.LogAppOpen on the package-level client.
func LogAppOpen(ctx context.Context) error {
	client, err := getDefault()
	if err != nil {
		return err
	}
	return client.LogAppOpen(ctx)
}

// LogPushOpen calls Client.LogPushOpen on the package-level client.
func LogPushOpen(ctx context.Context, params PushOpenParams) error {
	client, err := getDefault()
	if err != nil {
		return err
	}
	return client.LogPushOpen(ctx, params)
}

// SyncNotificationPermission calls Client.SyncNotificationPermission on
// the package-level client.
func SyncNotificationPermission(ctx context.Context, status PermissionStatus) error {
	client, err := getDefault()
	if err != nil {
		return err
	}
	return client.SyncNotificationPermission(ctx, status)
}

// Flush waits for the package-level client's pending analytics events.
func Flush(ctx context.Context) error {
	client, err := getDefault()
	if err != nil {
		return err
	}
	return client.Flush(ctx)
}

// Close flushes the package-level client.
func Close() error {
	client, err := getDefault()
	if err != nil {
		return err
	}
	return client.Close()
}
