package matchinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ROHITH-1234/ai-resume-platform-sub001/recruitment/match"
	"github.com/redis/go-redis/v9"
)

// RedisRescoreQueue implements match.RescoreQueue using Redis lists, with a
// sorted set holding delayed (retry) signals.
type RedisRescoreQueue struct {
	client    *redis.Client
	queueName string
}

// NewRedisRescoreQueue creates a new Redis-based rescore queue
func NewRedisRescoreQueue(client *redis.Client, queueName string) match.RescoreQueue {
	return &RedisRescoreQueue{
		client:    client,
		queueName: queueName,
	}
}

// Enqueue adds a rescore signal to the queue
func (q *RedisRescoreQueue) Enqueue(ctx context.Context, signal *match.RescoreSignal) error {
	data, err := json.Marshal(signal)
	if err != nil {
		return fmt.Errorf("marshal rescore signal %s: %w", signal.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue rescore signal %s: %w", signal.ID, err)
	}

	return nil
}

// EnqueueDelayed schedules a signal for later processing (retries)
func (q *RedisRescoreQueue) EnqueueDelayed(ctx context.Context, signal *match.RescoreSignal, delay time.Duration) error {
	data, err := json.Marshal(signal)
	if err != nil {
		return fmt.Errorf("marshal delayed rescore signal %s: %w", signal.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedQueue(), redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed rescore signal %s: %w", signal.ID, err)
	}

	return nil
}

// Dequeue gets a signal from the queue (blocking with timeout)
func (q *RedisRescoreQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when the timeout elapses with no signals
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue rescore signal: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return []byte(result[1]), nil
}

// MoveDelayedToReady moves due delayed signals to the main queue
func (q *RedisRescoreQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := float64(time.Now().Unix())

	signals, err := q.client.ZRangeByScore(ctx, q.delayedQueue(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed rescore signals: %w", err)
	}

	if len(signals) == 0 {
		return 0, nil
	}

	pipe := q.client.Pipeline()
	for _, signal := range signals {
		pipe.LPush(ctx, q.queueName, signal)
		pipe.ZRem(ctx, q.delayedQueue(), signal)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed rescore signals to ready: %w", err)
	}

	return len(signals), nil
}

// Stats returns queue depth statistics
func (q *RedisRescoreQueue) Stats(ctx context.Context) (map[string]any, error) {
	ready, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return nil, fmt.Errorf("get queue size: %w", err)
	}

	delayed, err := q.client.ZCard(ctx, q.delayedQueue()).Result()
	if err != nil {
		return nil, fmt.Errorf("get delayed queue size: %w", err)
	}

	return map[string]any{
		"queue_name":      q.queueName,
		"ready_signals":   ready,
		"delayed_signals": delayed,
		"total_signals":   ready + delayed,
	}, nil
}

func (q *RedisRescoreQueue) delayedQueue() string {
	return q.queueName + ":delayed"
}
