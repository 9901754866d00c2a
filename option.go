/*
 * Copyright (c) 2025 CopyLab
 *
 * This file is part of copylab-go, which is MIT licensed.
 * See http://opensource.org/licenses/MIT
 */

package copylab

import (
	"log/slog"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// ClientOption type
type ClientOption func(*Client)

// WithLogger is logger setter
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// WithHTTPClient is http.Client setter
func WithHTTPClient(c httpClient) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithBaseURL overrides the CopyLab API base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(client *Client) {
		client.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTimeout is request timeout setter
func WithTimeout(timeout time.Duration) ClientOption {
	return func(client *Client) {
		client.timeout = timeout
	}
}

// WithPlatform overrides the platform tag sent with analytics events.
func WithPlatform(platform string) ClientOption {
	return func(client *Client) {
		client.platform = platform
	}
}

// WithTokenSource supplies a token source for service account auth,
// replacing the one built from Config.ServiceAccountPath.
func WithTokenSource(ts oauth2.TokenSource) ClientOption {
	return func(client *Client) {
		client.tokenSource = ts
	}
}
