/*
 * Copyright (c) 2025 CopyLab
 *
 * This file is part of copylab-go, which is MIT licensed.
 * See http://opensource.org/licenses/MIT
 */

package copylab

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

// serviceAccountTokenSource builds an ID token source from a service
// account JSON file, with the function base URL as audience.
func serviceAccountTokenSource(ctx context.Context, path, audience string) (oauth2.TokenSource, error) {
	ts, err := idtoken.NewTokenSource(ctx, audience, option.WithCredentialsFile(path))
	if err != nil {
		return nil, &ConfigurationError{Reason: "load service account: " + err.Error()}
	}
	return ts, nil
}

// authorize sets the auth headers for a request: the API key when one is
// configured, otherwise a bearer token from the service account.
func (c *Client) authorize(header *http.Header) error {
	if c.apiKey != "" {
		header.Set(headerAPIKey, c.apiKey)
		return nil
	}

	token, err := c.tokenSource.Token()
	if err != nil {
		return &RemoteError{Err: errors.Wrap(err, "fetch service account token")}
	}
	header.Set("Authorization", "Bearer "+token.AccessToken)
	header.Set(headerAppID, c.appID)
	return nil
}
