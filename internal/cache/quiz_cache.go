package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// QuizCache keeps generated quizzes per language so repeated requests
// for the same language do not hit the tutor service again within the
// TTL. Values are the opaque tutor response, stored as-is.
type QuizCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewQuizCache(client *redisv9.Client, ttl time.Duration) *QuizCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QuizCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *QuizCache) Get(ctx context.Context, language string) (string, bool, error) {
	raw, err := c.client.Get(ctx, c.key(language)).Result()
	if err == redisv9.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get quiz failed: %w", err)
	}
	return raw, true, nil
}

func (c *QuizCache) Set(ctx context.Context, language, quiz string) error {
	if err := c.client.Set(ctx, c.key(language), quiz, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set quiz failed: %w", err)
	}
	return nil
}

func (c *QuizCache) key(language string) string {
	return fmt.Sprintf("tutor:quiz:%s", strings.ToLower(language))
}
