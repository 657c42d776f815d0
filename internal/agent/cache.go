package agent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// AnswerCache stores knowledge answers by question
type AnswerCache interface {
	Get(ctx context.Context, question string) (*Answer, bool, error)
	Set(ctx context.Context, question string, answer *Answer) error
}

const answerKeyPrefix = "cardiomed:knowledge:answer:"

// RedisAnswerCache keeps answers in Redis with a TTL
type RedisAnswerCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAnswerCache(client *redis.Client, ttl time.Duration) *RedisAnswerCache {
	return &RedisAnswerCache{client: client, ttl: ttl}
}

// answerKey normalises case and whitespace so trivially different phrasings share an entry
func answerKey(question string) string {
	normalised := strings.Join(strings.Fields(strings.ToLower(question)), " ")
	sum := sha256.Sum256([]byte(normalised))
	return answerKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisAnswerCache) Get(ctx context.Context, question string) (*Answer, bool, error) {
	data, err := c.client.Get(ctx, answerKey(question)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var answer Answer
	if err := json.Unmarshal(data, &answer); err != nil {
		return nil, false, err
	}
	return &answer, true, nil
}

func (c *RedisAnswerCache) Set(ctx context.Context, question string, answer *Answer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, answerKey(question), data, c.ttl).Err()
}
