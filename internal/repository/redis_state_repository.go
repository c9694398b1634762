package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/uniflow-app/uniflow-api/internal/models"
	appErrors "github.com/uniflow-app/uniflow-api/pkg/errors"
)

// RedisStateRepository stores the state document under a single fixed
// key with no expiry.
type RedisStateRepository struct {
	client *redis.Client
}

// NewRedisStateRepository constructs a Redis-backed state repository.
func NewRedisStateRepository(client *redis.Client) *RedisStateRepository {
	return &RedisStateRepository{client: client}
}

// Load fetches the document, returning ErrStateMissing on an empty key.
func (r *RedisStateRepository) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, models.StateKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrStateMissing
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, fmt.Sprintf("redis get %s", models.StateKey))
	}
	return data, nil
}

// Save overwrites the document unconditionally, without expiry.
func (r *RedisStateRepository) Save(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, models.StateKey, data, 0).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, fmt.Sprintf("redis set %s", models.StateKey))
	}
	return nil
}

// Clear removes the stored document.
func (r *RedisStateRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, models.StateKey).Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, fmt.Sprintf("redis del %s", models.StateKey))
	}
	return nil
}
