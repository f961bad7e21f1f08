package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"posgrad/internal/config"
	"posgrad/internal/logger"

	"cloud.google.com/go/pubsub"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// 'host.docker.internal' lets the emulator container reach the mailer on the host.
const mailerBaseURLLocal = "http://host.docker.internal:8081"

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on system environment variables.")
	}

	logger := logger.New()
	logger.Info().Msg("Starting Pub/Sub setup for the local environment.")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Failed to load config: %v", err)
	}
	if cfg.PubSubEmulatorHost == "" {
		logger.Fatal().Msg("PUBSUB_EMULATOR_HOST must be set for local environment.")
	}
	projectID := cfg.GetGCPProjectID()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := pubsub.NewClient(ctx, projectID,
		option.WithEndpoint(cfg.PubSubEmulatorHost),
		option.WithoutAuthentication(),
	)
	if err != nil {
		logger.Fatal().Msgf("Failed to create Pub/Sub client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error().Msgf("Failed to close pubsub client: %v", err)
		}
	}()

	res := contactResources(cfg.PubSubContactTopic, mailerBaseURLLocal)
	if err := reset(ctx, client, res, logger); err != nil {
		logger.Fatal().Err(err).Msg("Failed to reset emulator resources")
	}
	if err := create(ctx, client, res, logger); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create emulator resources")
	}

	logger.Info().Str("project", projectID).Msg("Pub/Sub setup for local environment complete.")
}

// reset drops the subscriptions and topics this tool owns. Only ever run it
// against the emulator.
func reset(ctx context.Context, client *pubsub.Client, res resources, logger zerolog.Logger) error {
	owned := map[string]bool{res.SubID: true, res.DLQSubID: true}
	subs := client.Subscriptions(ctx)
	for {
		sub, err := subs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return fmt.Errorf("listing subscriptions: %w", err)
		}
		if !owned[sub.ID()] {
			continue
		}
		logger.Info().Str("subscription", sub.ID()).Msg("Deleting subscription")
		if err := sub.Delete(ctx); err != nil {
			logger.Warn().Err(err).Str("subscription", sub.ID()).Msg("Failed to delete subscription")
		}
	}

	for _, id := range []string{res.TopicID, res.DLQTopicID} {
		topic := client.Topic(id)
		exists, err := topic.Exists(ctx)
		if err != nil {
			return fmt.Errorf("checking topic %s: %w", id, err)
		}
		if !exists {
			continue
		}
		logger.Info().Str("topic", id).Msg("Deleting topic")
		if err := topic.Delete(ctx); err != nil {
			logger.Warn().Err(err).Str("topic", id).Msg("Failed to delete topic")
		}
	}
	return nil
}

func create(ctx context.Context, client *pubsub.Client, res resources, logger zerolog.Logger) error {
	dlqTopic, err := client.CreateTopicWithConfig(ctx, res.DLQTopicID, &pubsub.TopicConfig{RetentionDuration: res.Retention})
	if err != nil {
		return fmt.Errorf("creating topic %s: %w", res.DLQTopicID, err)
	}
	mainTopic, err := client.CreateTopicWithConfig(ctx, res.TopicID, &pubsub.TopicConfig{RetentionDuration: res.Retention})
	if err != nil {
		return fmt.Errorf("creating topic %s: %w", res.TopicID, err)
	}
	logger.Info().Str("topic", res.TopicID).Str("dlq", res.DLQTopicID).Msg("Topics created")

	_, err = client.CreateSubscription(ctx, res.SubID, pubsub.SubscriptionConfig{
		Topic:       mainTopic,
		PushConfig:  pubsub.PushConfig{Endpoint: res.PushEndpoint},
		AckDeadline: res.AckDeadline,
		RetryPolicy: &pubsub.RetryPolicy{
			MinimumBackoff: res.MinBackoff,
			MaximumBackoff: res.MaxBackoff,
		},
		DeadLetterPolicy: &pubsub.DeadLetterPolicy{
			DeadLetterTopic:     dlqTopic.String(),
			MaxDeliveryAttempts: res.MaxDeliveryAttempts,
		},
	})
	if err != nil {
		return fmt.Errorf("creating subscription %s: %w", res.SubID, err)
	}

	_, err = client.CreateSubscription(ctx, res.DLQSubID, pubsub.SubscriptionConfig{
		Topic:             dlqTopic,
		PushConfig:        pubsub.PushConfig{Endpoint: res.DLQPushEndpoint},
		AckDeadline:       res.AckDeadline,
		RetentionDuration: res.Retention,
	})
	if err != nil {
		return fmt.Errorf("creating subscription %s: %w", res.DLQSubID, err)
	}
	logger.Info().Str("subscription", res.SubID).Str("endpoint", res.PushEndpoint).Str("dlq_endpoint", res.DLQPushEndpoint).Msg("Subscriptions created")
	return nil
}
