/*
 * Copyright (c) 2025 CopyLab
 *
 * This file is part of copylab-go, which is MIT licensed.
 * See http://opensource.org/licenses/MIT
 */

// Command copylab verifies a CopyLab deployment end to end: it generates
// notification content, round-trips a topic subscription and logs
// analytics events against the live API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	copylab "github.com/nac5504/copylab-go"
)

const usage = `Usage: copylab [flags]

Verifies a CopyLab deployment with a live API key.

The API key is read from the COPYLAB_API_KEY environment variable or the
-api-key flag. Get your API key from the CopyLab dashboard.

Flags:
`

// fileConfig is the optional YAML config file.
type fileConfig struct {
	BaseURL   string         `yaml:"base_url"`
	Placement string         `yaml:"placement"`
	Variables map[string]any `yaml:"variables"`
	Topic     string         `yaml:"topic"`
}

func main() {
	var (
		apiKey     string
		configFile string
		timeout    time.Duration
		verbose    bool
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.StringVar(&apiKey, "api-key", os.Getenv("COPYLAB_API_KEY"), "CopyLab API key (defaults to COPYLAB_API_KEY)")
	flag.StringVar(&configFile, "config", "", "YAML config file (base_url, placement, variables, topic)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	flag.BoolVar(&verbose, "verbose", false, "debug logging")
	flag.Parse()

	if apiKey == "" {
		flag.Usage()
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := loadConfig(configFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", configFile).Msg("load config")
	}

	ctx := context.Background()
	if err := run(ctx, log, apiKey, timeout, cfg); err != nil {
		log.Fatal().Err(err).Msg("verification failed")
	}
	log.Info().Msg("all checks passed")
}

func loadConfig(filename string) (*fileConfig, error) {
	cfg := &fileConfig{
		Placement: "daily_reminder",
		Variables: map[string]any{"user_name": "Alex", "streak_days": 5},
	}
	if filename == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, log zerolog.Logger, apiKey string, timeout time.Duration, cfg *fileConfig) error {
	options := []copylab.ClientOption{copylab.WithTimeout(timeout)}
	if cfg.BaseURL != "" {
		options = append(options, copylab.WithBaseURL(cfg.BaseURL))
	}
	client, err := copylab.New(&copylab.Config{APIKey: apiKey}, options...)
	if err != nil {
		return err
	}
	defer client.Close()

	// disposable identities so the checks never touch real users
	userID := "test_user_" + uuid.NewString()[:8]
	topicID := cfg.Topic
	if topicID == "" {
		topicID = "test_topic_" + uuid.NewString()[:8]
	}
	client.Identify(userID)
	log.Info().Str("user", userID).Str("topic", topicID).Msg("identified")

	// remote template path
	n, err := client.GenerateNotification(ctx, copylab.GenerateParams{
		PlacementID: cfg.Placement,
		Variables:   cfg.Variables,
	})
	if err != nil {
		return fmt.Errorf("generate %s: %w", cfg.Placement, err)
	}
	log.Info().
		Str("title", n.Title).
		Str("message", n.Message).
		Bool("templateUsed", n.TemplateUsed).
		Str("template", n.TemplateName).
		Msg("generated notification")

	// fallback path: a placement that cannot exist
	fb, err := client.GenerateNotification(ctx, copylab.GenerateParams{
		PlacementID:     "nonexistent_" + uuid.NewString()[:8],
		Variables:       map[string]any{"user_name": "Alex"},
		FallbackTitle:   "Hello {user_name}!",
		FallbackMessage: "Fallback content.",
	})
	if err != nil {
		return fmt.Errorf("generate fallback: %w", err)
	}
	if fb.TemplateUsed {
		return fmt.Errorf("fallback generate unexpectedly used a template %q", fb.TemplateName)
	}
	if fb.Title != "Hello Alex!" {
		return fmt.Errorf("fallback title %q, want %q", fb.Title, "Hello Alex!")
	}
	log.Info().Str("title", fb.Title).Msg("fallback rendered")

	// topic round trip
	if err := client.SubscribeToTopic(ctx, topicID); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	subscribers, err := client.GetTopicSubscribers(ctx, topicID)
	if err != nil {
		return fmt.Errorf("get subscribers: %w", err)
	}
	found := false
	for _, id := range subscribers {
		if id == userID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("user %s missing from %d subscribers of %s", userID, len(subscribers), topicID)
	}
	if err := client.UnsubscribeFromTopic(ctx, topicID); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	log.Info().Int("subscribers", len(subscribers)).Msg("topic round trip ok")

	// analytics, then drain before exit
	if err := client.LogAppOpen(ctx); err != nil {
		return fmt.Errorf("log app open: %w", err)
	}
	if err := client.LogPushOpen(ctx, copylab.PushOpenParams{
		NotificationID: "verify_" + uuid.NewString()[:8],
		PlacementID:    cfg.Placement,
	}); err != nil {
		return fmt.Errorf("log push open: %w", err)
	}
	if err := client.SyncNotificationPermission(ctx, copylab.PermissionAuthorized); err != nil {
		return fmt.Errorf("sync permission: %w", err)
	}
	if err := client.Flush(ctx); err != nil {
		return fmt.Errorf("flush analytics: %w", err)
	}
	log.Info().Msg("analytics flushed")

	return nil
}
