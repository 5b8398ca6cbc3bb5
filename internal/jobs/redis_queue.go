package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisQueue implements Queue on a Redis list (LPUSH to publish, BRPOP
// to consume). A popped message is gone; Delete is a no-op.
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisQueue wraps a Redis client.
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	if client == nil {
		panic("jobs: redis client cannot be nil")
	}
	if strings.TrimSpace(queueName) == "" {
		panic("jobs: redis queue name cannot be empty")
	}
	return &RedisQueue{client: client, queueName: queueName}
}

func (q *RedisQueue) Send(ctx context.Context, body string) error {
	if err := q.client.LPush(ctx, q.queueName, body).Err(); err != nil {
		return fmt.Errorf("jobs: failed to push job to redis: %w", err)
	}
	return nil
}

// Receive blocks up to waitSeconds for the first message, then drains without
// blocking until maxMessages are collected.
func (q *RedisQueue) Receive(ctx context.Context, maxMessages int, waitSeconds int) ([]queueMessage, error) {
	if maxMessages <= 0 {
		maxMessages = 1
	}
	wait := time.Duration(waitSeconds) * time.Second
	if wait <= 0 {
		wait = time.Second
	}

	result, err := q.client.BRPop(ctx, wait, q.queueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("jobs: failed to pop from redis: %w", err)
	}
	// BRPOP returns [queueName, value]
	if len(result) < 2 {
		return nil, errors.New("jobs: unexpected BRPOP result format")
	}

	messages := []queueMessage{newRedisMessage(result[1])}
	for len(messages) < maxMessages {
		body, err := q.client.RPop(ctx, q.queueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				break
			}
			return messages, nil
		}
		messages = append(messages, newRedisMessage(body))
	}
	return messages, nil
}

func (q *RedisQueue) Delete(_ context.Context, _ string) error {
	return nil
}

// Health checks if Redis is reachable.
func (q *RedisQueue) Health(ctx context.Context) error {
	if err := q.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("jobs: redis health check failed: %w", err)
	}
	return nil
}

// QueueLength returns the number of pending jobs.
func (q *RedisQueue) QueueLength(ctx context.Context) (int64, error) {
	length, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("jobs: failed to get queue length: %w", err)
	}
	return length, nil
}

func newRedisMessage(body string) queueMessage {
	return queueMessage{ID: uuid.NewString(), Body: body}
}
