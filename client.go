/*
 * Copyright (c) 2025 CopyLab
 *
 * This file is part of copylab-go, which is MIT licensed.
 * See http://opensource.org/licenses/MIT
 */

// Package copylab is a client for the CopyLab notification template service.
package copylab

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// httpClient defines the minimal interface needed for an http.Client to be implemented.
type httpClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a CopyLab API client.
type Client struct {
	apiKey      string
	appID       string
	baseURL     string
	platform    string
	timeout     time.Duration
	tokenSource oauth2.TokenSource
	logger      *slog.Logger
	httpClient  httpClient

	mu     sync.RWMutex
	userID string

	// in-flight analytics events
	pending sync.WaitGroup
}

// New returns a new CopyLab client instance. The config must carry either
// an API key or a service account path with an explicit app ID.
func New(config *Config, options ...ClientOption) (*Client, error) {
	if config == nil {
		config = &Config{}
	}
	c := &Client{
		apiKey: config.APIKey,
		appID:  config.resolveAppID(),
	}

	for _, option := range options {
		option(c)
	}

	// set defaults
	c.setDefaultOptions()

	if c.apiKey == "" {
		if c.tokenSource == nil && config.ServiceAccountPath == "" {
			return nil, ErrMissingCredentials
		}
		if config.AppID == "" {
			return nil, ErrMissingAppID
		}
		if c.tokenSource == nil {
			ts, err := serviceAccountTokenSource(context.Background(), config.ServiceAccountPath, c.baseURL)
			if err != nil {
				return nil, err
			}
			c.tokenSource = ts
		}
	}

	c.logger.Debug("configured", "appId", c.appID, "baseURL", c.baseURL)

	return c, nil
}

// Identify associates subsequent calls with a user identity.
func (c *Client) Identify(userID string) {
	c.mu.Lock()
	c.userID = userID
	c.mu.Unlock()
	c.logger.Debug("identified user", "userId", userID)
}

// Logout clears the identified user.
func (c *Client) Logout() {
	c.mu.Lock()
	c.userID = ""
	c.mu.Unlock()
	c.logger.Debug("logged out user")
}

// UserID returns the identified user, or an empty string.
func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// requireUser resolves the user for an operation: the override wins, then
// the identified user, otherwise ErrNoUser.
func (c *Client) requireUser(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if userID := c.UserID(); userID != "" {
		return userID, nil
	}
	return "", ErrNoUser
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "marshal %s request", endpoint)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(endpoint, nil), bytes.NewReader(payload))
	if err != nil {
		return errors.Wrapf(err, "create %s request", endpoint)
	}
	req.Header.Set("Content-Type", "application/json")
	if err = c.authorize(&req.Header); err != nil {
		return err
	}

	return c.do(req, endpoint, out)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL(endpoint, query), nil)
	if err != nil {
		return errors.Wrapf(err, "create %s request", endpoint)
	}
	if err = c.authorize(&req.Header); err != nil {
		return err
	}

	return c.do(req, endpoint, out)
}

// do performs the request and maps the response onto out. Transport
// failures, non-2xx statuses and error bodies all surface as *RemoteError.
func (c *Client) do(req *http.Request, endpoint string, out any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteError{Err: errors.Wrapf(err, "request %s", endpoint)}
	}
	defer closeResponse(res)

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &RemoteError{StatusCode: res.StatusCode, Err: errors.Wrapf(err, "read %s response", endpoint)}
	}

	// the service reports failures as {"error": "..."}, usually with a
	// non-2xx status but not always
	var envelope struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(data, &envelope)

	if res.StatusCode == http.StatusUnauthorized {
		return &RemoteError{StatusCode: res.StatusCode, Message: envelope.Error, Err: ErrUnauthorized}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &RemoteError{StatusCode: res.StatusCode, Message: envelope.Error}
	}
	if envelope.Error != "" {
		return &RemoteError{StatusCode: res.StatusCode, Message: envelope.Error}
	}

	if out != nil {
		if err = json.Unmarshal(data, out); err != nil {
			return errors.Wrapf(err, "unmarshal %s response", endpoint)
		}
	}
	return nil
}

func (c *Client) endpointURL(endpoint string, query url.Values) string {
	u := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// setDefaultOptions set default options.
func (c *Client) setDefaultOptions() {
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.platform == "" {
		c.platform = defaultPlatform
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: c.timeout,
		}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
}

func closeResponse(res *http.Response) error {
	defer res.Body.Close()
	_, err := io.Copy(io.Discard, res.Body)
	return err
}
