package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

var _ KV = (*Redis)(nil)

type Redis struct {
	client *redis.Client
}

func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password set
		DB:       0,  // Use default DB
		Protocol: 2,  // Connection protocol
	})

	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, k string, out any) (bool, error) {
	res := r.client.Get(ctx, k)
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return false, nil
		}
		return false, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return false, err
	}

	return true, nil
}

func (r *Redis) Set(ctx context.Context, k string, v any, ttl time.Duration) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, k, value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, k string) error {
	return r.client.Del(ctx, k).Err()
}
