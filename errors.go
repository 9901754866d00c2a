/*
 * Copyright (c) 2025 CopyLab
 *
 * This file is part of copylab-go, which is MIT licensed.
 * See http://opensource.org/licenses/MIT
 */

package copylab

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrNoUser is returned when an operation needs a user and none was
// identified or supplied.
var ErrNoUser = errors.New("no user identified")

// ErrUnauthorized reports a rejected API key or token.
var ErrUnauthorized = errors.New("invalid or missing API key")

// Configuration sentinels. All are *ConfigurationError values and compare
// with errors.Is.
var (
	ErrNotConfigured      = &ConfigurationError{Reason: "client is not configured"}
	ErrMissingCredentials = &ConfigurationError{Reason: "an API key or a service account is required"}
	ErrMissingAppID       = &ConfigurationError{Reason: "app ID is required with a service account"}
)

// ConfigurationError reports invalid or incomplete client setup.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// RemoteError reports a failed exchange with the CopyLab API.
type RemoteError struct {
	// StatusCode is the HTTP status of the response, zero when the request
	// never completed.
	StatusCode int
	// Message is the error reported by the service, if any.
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("api error: %s (status %d)", e.Message, e.StatusCode)
	case e.StatusCode != 0:
		return fmt.Sprintf("server error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	case e.Err != nil:
		return "request failed: " + e.Err.Error()
	}
	return "request failed"
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
