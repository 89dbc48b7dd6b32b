package report

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "storage-bench:timings"

// Redis складывает замеры в список, по JSON-документу на элемент.
type Redis struct {
	client *redis.Client
	key    string
}

func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	return &Redis{client: client, key: key}
}

func (r *Redis) Report(ctx context.Context, t Timing) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return r.client.RPush(ctx, r.key, data).Err()
}

// Timings читает все сохраненные замеры.
func (r *Redis) Timings(ctx context.Context) ([]Timing, error) {
	items, err := r.client.LRange(ctx, r.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	timings := make([]Timing, 0, len(items))
	for _, item := range items {
		var t Timing
		if err = json.Unmarshal([]byte(item), &t); err != nil {
			return nil, err
		}
		timings = append(timings, t)
	}
	return timings, nil
}
