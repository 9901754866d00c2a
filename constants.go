/*
 * Copyright (c) 2025 CopyLab
 *
 * This file is part of copylab-go, which is MIT licensed.
 * See http://opensource.org/licenses/MIT
 */

package copylab

import "time"

// CopyLab Cloud Functions constants.
const (
	defaultBaseURL = "https://us-central1-copylab-3f220.cloudfunctions.net"

	endpointGenerateNotification = "generate_notification"
	endpointGetTopicSubscribers  = "get_topic_subscribers"
	endpointSubscribeToTopic     = "subscribe_to_topic"
	endpointUnsubscribeFromTopic = "unsubscribe_from_topic"
	endpointLogPushOpen          = "log_push_open"
	endpointLogAppOpen           = "log_app_open"
	endpointSyncPermission       = "sync_notification_permission"

	headerAPIKey = "X-API-Key"
	headerAppID  = "X-App-Id"

	// API keys look like cl_{app_id}_{secret}.
	apiKeyPrefix = "cl_"

	// app ID reported when none is configured and none can be derived
	unknownAppID = "unknown"
)

// Default values
const (
	// default request timeout
	defaultTimeout = 30 * time.Second

	// default platform tag on analytics events
	defaultPlatform = "go"

	// notification messages longer than this are cut with an ellipsis
	maxMessageLength = 200
)

// Attribution keys added to notification data.
const (
	attrPlacementID   = "copylab_placement_id"
	attrPlacementName = "copylab_placement_name"
	attrTemplateID    = "copylab_template_id"
	attrTemplateName  = "copylab_template_name"
)
