/*
 * Copyright (c) 2025 CopyLab
 *
 * This file is part of copylab-go, which is MIT licensed.
 * See http://opensource.org/licenses/MIT
 */

package copylab

import (
	"context"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type topicRequest struct {
	TopicID string `json:"topic_id"`
	UserID  string `json:"user_id"`
}

type topicSubscribersResponse struct {
	SubscriberIDs []string `json:"subscriber_ids"`
}

// SubscribeToTopic subscribes the identified user to a topic.
func (c *Client) SubscribeToTopic(ctx context.Context, topicID string) error {
	return c.updateTopic(ctx, endpointSubscribeToTopic, topicID)
}

// UnsubscribeFromTopic removes the identified user from a topic.
func (c *Client) UnsubscribeFromTopic(ctx context.Context, topicID string) error {
	return c.updateTopic(ctx, endpointUnsubscribeFromTopic, topicID)
}

func (c *Client) updateTopic(ctx context.Context, endpoint, topicID string) error {
	if err := validateTopicID(topicID); err != nil {
		return err
	}
	userID, err := c.requireUser("")
	if err != nil {
		return err
	}
	return c.postJSON(ctx, endpoint, &topicRequest{TopicID: topicID, UserID: userID}, nil)
}

// GetTopicSubscribers returns the user IDs subscribed to a topic. Topic
// membership lives on the service; nothing is cached here.
func (c *Client) GetTopicSubscribers(ctx context.Context, topicID string) ([]string, error) {
	if err := validateTopicID(topicID); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("topic_id", topicID)

	var response topicSubscribersResponse
	if err := c.getJSON(ctx, endpointGetTopicSubscribers, query, &response); err != nil {
		return nil, err
	}
	if response.SubscriberIDs == nil {
		return []string{}, nil
	}
	return response.SubscriberIDs, nil
}

func validateTopicID(topicID string) error {
	return validation.Validate(topicID, validation.Required, validation.Length(1, 255))
}
