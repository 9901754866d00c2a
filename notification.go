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

	"github.com/nac5504/copylab-go/internal/render"
)

type generateRequest struct {
	PlacementID     string         `json:"placement_id"`
	Variables       map[string]any `json:"variables"`
	Data            map[string]any `json:"data"`
	FallbackTitle   string         `json:"fallback_title,omitempty"`
	FallbackMessage string         `json:"fallback_message,omitempty"`
}

// Notification is generated notification content, ready for the caller's
// own delivery code.
type Notification struct {
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	// TemplateUsed reports whether an active remote template produced the
	// content. False means the fallback path.
	TemplateUsed bool   `json:"template_used"`
	TemplateName string `json:"template_name"`
}

// GenerateParams are the inputs of GenerateNotification.
type GenerateParams struct {
	// PlacementID names the template slot on the service (e.g. "welcome_message").
	PlacementID string
	// Variables substitute {name} placeholders in the template.
	Variables map[string]any
	// Data is an additional payload carried through to the notification.
	Data map[string]any
	// FallbackTitle and FallbackMessage are used when the placement has no
	// active template. Placeholders are substituted here too.
	FallbackTitle   string
	FallbackMessage string
}

// Validate checks the params before any request is made.
func (p GenerateParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.PlacementID, validation.Required, validation.Length(1, 255)),
	)
}

// GenerateNotification fetches notification content for a placement. When
// the service reports no active template, the fallback title and message
// are rendered locally and returned without error.
func (c *Client) GenerateNotification(ctx context.Context, params GenerateParams) (*Notification, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	body := &generateRequest{
		PlacementID:     params.PlacementID,
		Variables:       params.Variables,
		Data:            params.Data,
		FallbackTitle:   params.FallbackTitle,
		FallbackMessage: params.FallbackMessage,
	}
	if body.Variables == nil {
		body.Variables = map[string]any{}
	}
	if body.Data == nil {
		body.Data = map[string]any{}
	}

	var notification Notification
	if err := c.postJSON(ctx, endpointGenerateNotification, body, &notification); err != nil {
		return nil, err
	}
	if !notification.TemplateUsed {
		c.logger.Debug("no active template, using fallbacks", "placementId", params.PlacementID)
		return fallbackNotification(params), nil
	}
	return &notification, nil
}

// Notify is shorthand for GenerateNotification with variables only.
func (c *Client) Notify(ctx context.Context, placementID string, variables map[string]any) (*Notification, error) {
	return c.GenerateNotification(ctx, GenerateParams{
		PlacementID: placementID,
		Variables:   variables,
	})
}

// fallbackNotification renders fallback content locally, mirroring what
// the service produces for inactive placements.
func fallbackNotification(params GenerateParams) *Notification {
	title, message, data := render.Content(
		params.FallbackTitle,
		params.FallbackMessage,
		params.Data,
		params.Variables,
		nil,
		maxMessageLength,
	)

	data[attrPlacementID] = params.PlacementID
	data[attrPlacementName] = params.PlacementID
	data[attrTemplateID] = "fallback"
	data[attrTemplateName] = "Fallback"

	return &Notification{
		Title:        title,
		Message:      message,
		Data:         data,
		TemplateUsed: false,
	}
}
