// Package redis publishes logged entries to a Redis channel so external
// integrations can follow the mood stream. The dashboard works without it.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Redis struct {
	Client       *redis.Client
	Logger       *zap.SugaredLogger
	EventChannel string
}

func New(host, password, eventChannel string, logger *zap.SugaredLogger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     host,
		Password: password,
	})

	_, err := client.Ping(context.Background()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Redis{
		Client:       client,
		Logger:       logger,
		EventChannel: eventChannel,
	}, nil
}

func (r *Redis) Produce(data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	err = r.Client.Publish(context.Background(), r.EventChannel, jsonData).Err()
	if err != nil {
		return err
	}

	r.Logger.Infow("redis: Produce", "channel", r.EventChannel, "data", data)

	return nil
}
