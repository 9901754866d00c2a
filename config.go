/*
 * Copyright (c) 2025 CopyLab
 *
 * This file is part of copylab-go, which is MIT licensed.
 * See http://opensource.org/licenses/MIT
 */

package copylab

import "strings"

// Config type
type Config struct {
	// APIKey is the CopyLab API key (starts with cl_).
	APIKey string `json:"apiKey,omitempty"`
	// ServiceAccountPath is the path to the CopyLab project's service
	// account JSON file. An alternative to APIKey.
	ServiceAccountPath string `json:"serviceAccountPath,omitempty"`
	// AppID is the explicit app ID (e.g. "nomigo"). Optional with an API
	// key, required with a service account.
	AppID string `json:"appId,omitempty"`
}

// resolveAppID prefers the explicit app ID, then the one embedded in a
// cl_-prefixed API key.
func (c *Config) resolveAppID() string {
	if c.AppID != "" {
		return c.AppID
	}
	if strings.HasPrefix(c.APIKey, apiKeyPrefix) {
		parts := strings.Split(c.APIKey, "_")
		if len(parts) >= 2 {
			return parts[1]
		}
	}
	return unknownAppID
}
