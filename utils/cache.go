// File: utils/cache.go
package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dakota/config"

	"github.com/go-redis/redis/v8"
)

// ErrCacheDisabled is returned when REDIS_ADDR is empty.
var ErrCacheDisabled = errors.New("redis address not configured")

// WebhookCacheClient backs the Stripe webhook event ledger.
var WebhookCacheClient *redis.Client

// InitWebhookCache connects the Redis client used for webhook replay protection.
func InitWebhookCache() error {
	if config.AppConfig.RedisAddr == "" {
		return ErrCacheDisabled
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWebhookDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (Webhook): %w", err)
	}
	WebhookCacheClient = client
	return nil
}

// GetWebhookCacheClient returns the webhook client, or nil when Redis is not in use.
func GetWebhookCacheClient() *redis.Client {
	return WebhookCacheClient
}

// CloseCaches releases every open Redis client.
func CloseCaches() {
	if WebhookCacheClient != nil {
		_ = WebhookCacheClient.Close()
		WebhookCacheClient = nil
	}
}
