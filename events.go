/*
 * Copyright (c) 2025 CopyLab
 *
 * This file is part of copylab-go, which is MIT licensed.
 * See http://opensource.org/licenses/MIT
 */

package copylab

// Analytics event payloads.

type appOpenEvent struct {
	UserID   string `json:"user_id"`
	Platform string `json:"platform"`
}

type pushOpenEvent struct {
	UserID         string `json:"user_id"`
	Platform       string `json:"platform"`
	NotificationID string `json:"notification_id,omitempty"`
	PlacementID    string `json:"placement_id,omitempty"`
	TemplateID     string `json:"template_id,omitempty"`
}

type permissionEvent struct {
	UserID             string `json:"user_id"`
	NotificationStatus string `json:"notification_status"`
	Platform           string `json:"platform"`
}
