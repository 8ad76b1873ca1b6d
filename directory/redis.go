// directory/redis.go
package directory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisDirectory stores user records as JSON values under user:<id>.
type RedisDirectory struct {
	client *redis.Client
}

func NewRedisDirectory(client *redis.Client) *RedisDirectory {
	return &RedisDirectory{client: client}
}

func (d *RedisDirectory) Get(ctx context.Context, userID string) (*UserRecord, bool, error) {
	raw, err := d.client.Get(ctx, userKey(userID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to get user from directory: %w", err)
	}

	var record UserRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal user record: %w", err)
	}
	return &record, true, nil
}

func (d *RedisDirectory) Put(ctx context.Context, userID string, record *UserRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal user record: %w", err)
	}
	if err := d.client.Set(ctx, userKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to store user record: %w", err)
	}
	return nil
}

func userKey(userID string) string {
	return "user:" + userID
}
