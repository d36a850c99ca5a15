package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const (
	popularKey = "battery-guide:search:popular"
	emptyKey   = "battery-guide:search:empty"
)

// RedisRecorder keeps query counts in Redis sorted sets
type RedisRecorder struct {
	client *redis.Client
}

// NewRedisRecorder connects to Redis and verifies the connection
func NewRedisRecorder(ctx context.Context, address, password string, db int) (*RedisRecorder, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRecorder{client: client}, nil
}

// RecordSearch increments the query's score. Queries without results are
// also counted in a second set so content gaps can be spotted.
func (r *RedisRecorder) RecordSearch(ctx context.Context, query string, results int) error {
	q := NormalizeQuery(query)
	if q == "" {
		return nil
	}

	pipe := r.client.TxPipeline()
	pipe.ZIncrBy(ctx, popularKey, 1, q)
	if results == 0 {
		pipe.ZIncrBy(ctx, emptyKey, 1, q)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}

	slog.Debug("search recorded", "query", q, "results", results)
	return nil
}

// Popular returns up to limit queries by descending count
func (r *RedisRecorder) Popular(ctx context.Context, limit int) ([]QueryCount, error) {
	return r.top(ctx, popularKey, limit)
}

// Unanswered returns up to limit zero-result queries by descending count
func (r *RedisRecorder) Unanswered(ctx context.Context, limit int) ([]QueryCount, error) {
	return r.top(ctx, emptyKey, limit)
}

func (r *RedisRecorder) top(ctx context.Context, key string, limit int) ([]QueryCount, error) {
	if limit <= 0 {
		return []QueryCount{}, nil
	}

	entries, err := r.client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	result := make([]QueryCount, 0, len(entries))
	for _, z := range entries {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		result = append(result, QueryCount{Query: member, Count: z.Score})
	}
	return result, nil
}

// Type returns the dependency type
func (r *RedisRecorder) Type() string {
	return "redis"
}

// HealthCheck checks if Redis is reachable
func (r *RedisRecorder) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisRecorder) Close() error {
	return r.client.Close()
}
