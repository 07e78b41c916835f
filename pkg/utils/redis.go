package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tabashir-engine/internal/config"
)

// RedisClient wraps the Redis client used to coordinate translation work:
// short-TTL in-flight locks so racing requests do not translate the same
// posting twice, and a dead-letter list for postings that keep failing.
type RedisClient struct {
	client *redis.Client
	config *config.Config
}

// DeadLetterEntry records a posting whose translation failed after the
// background path gave up on it.
type DeadLetterEntry struct {
	JobID     int64     `json:"job_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	translationLockTTL = 2 * time.Minute
	deadLetterKey      = "translations:dead_letter"
)

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config) *RedisClient {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisClient{
		client: redis.NewClient(opts),
		config: cfg,
	}
}

// Ping tests the Redis connection
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// AcquireTranslationLock claims the in-flight lock for a posting. Returns
// false when another worker already holds it.
func (r *RedisClient) AcquireTranslationLock(ctx context.Context, jobID int64) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.lockKey(jobID), time.Now().Format(time.RFC3339), translationLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire translation lock: %w", err)
	}
	return ok, nil
}

// ReleaseTranslationLock drops the in-flight lock for a posting.
func (r *RedisClient) ReleaseTranslationLock(ctx context.Context, jobID int64) error {
	return r.client.Del(ctx, r.lockKey(jobID)).Err()
}

// PushDeadLetter appends a failed posting to the translation dead-letter
// list for offline inspection.
func (r *RedisClient) PushDeadLetter(ctx context.Context, jobID int64, reason string) error {
	entry := DeadLetterEntry{
		JobID:     jobID,
		Reason:    reason,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal dead-letter entry: %w", err)
	}

	return r.client.RPush(ctx, deadLetterKey, payload).Err()
}

// DeadLetters returns up to limit entries from the dead-letter list.
func (r *RedisClient) DeadLetters(ctx context.Context, limit int64) ([]DeadLetterEntry, error) {
	raw, err := r.client.LRange(ctx, deadLetterKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read dead-letter list: %w", err)
	}

	entries := make([]DeadLetterEntry, 0, len(raw))
	for _, item := range raw {
		var entry DeadLetterEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *RedisClient) lockKey(jobID int64) string {
	return fmt.Sprintf("translations:lock:%d", jobID)
}
