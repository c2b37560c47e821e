// Package store persists memos, users and reminder indexes in Redis.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store wraps a Redis client.
type Store struct {
	rdb    *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Store from a Redis URL.
func New(redisURL string, logger *zap.Logger) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info("Redis connected")
	return &Store{rdb: rdb, logger: logger, now: time.Now}, nil
}

// Close shuts down the Redis connection.
func (s *Store) Close() error {
	return s.rdb.Close()
}

func memoKey(userID, memoID string) string {
	return fmt.Sprintf("memo:%s:%s", userID, memoID)
}

func memosKey(userID string) string {
	return fmt.Sprintf("user:%s:memos", userID)
}

func categoryKey(userID, category string) string {
	return fmt.Sprintf("user:%s:category:%s", userID, category)
}

const pendingRemindersKey = "reminders:pending"
