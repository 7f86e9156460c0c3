package store

import (
	"context"

	"github.com/go-redis/redis/v9"
	"github.com/pkg/errors"
	"seriestracker/internal/model"
)

// RedisStore keeps the tracker document under StateKey in Redis.
type RedisStore struct {
	Redis *redis.Client
}

func ConnectRedis(ctx context.Context, redisURI string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing Redis URI: %s", redisURI)
	}
	c := redis.NewClient(opts)
	if err := c.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrapf(err, "error pinging Redis at: %s", redisURI)
	}
	return c, nil
}

func NewRedisStore(c *redis.Client) *RedisStore {
	return &RedisStore{Redis: c}
}

func (rs *RedisStore) GetState(ctx context.Context) (model.TrackerState, error) {
	raw, err := rs.Redis.Get(ctx, StateKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.EmptyState(), nil
		}
		return model.EmptyState(), errors.Wrapf(err, "error getting state from Redis, key: %s", StateKey)
	}
	return decodeState(raw), nil
}

func (rs *RedisStore) SetState(ctx context.Context, state model.TrackerState) error {
	raw, err := encodeState(state)
	if err != nil {
		return errors.Wrap(err, "error marshalling TrackerState")
	}
	if err := rs.Redis.Set(ctx, StateKey, raw, 0).Err(); err != nil {
		return errors.Wrapf(err, "error setting state in Redis, key: %s", StateKey)
	}
	return nil
}
