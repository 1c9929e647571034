// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"franchise-catalog/internal/models"
)

// RedisStore keeps one JSON document per franchise under <prefix>:<id> and
// the ids, in insertion order, in the list <prefix>s. Writes run inside
// WATCH/MULTI so a concurrent writer aborts the transaction.
type RedisStore struct {
	client   redis.UniversalClient
	prefix   string
	indexKey string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "franchise"
	}
	return &RedisStore{client: client, prefix: prefix, indexKey: prefix + "s"}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Franchise, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	return decode(data)
}

func (s *RedisStore) Put(ctx context.Context, f *models.Franchise) (*models.Franchise, error) {
	key := s.key(f.ID())
	next := f.Version() + 1
	payload, err := encode(f, next)
	if err != nil {
		return nil, err
	}

	txf := func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Bytes()
		exists := true
		switch {
		case errors.Is(err, redis.Nil):
			exists = false
		case err != nil:
			return fmt.Errorf("redis get %s: %w", f.ID(), err)
		}

		if exists {
			var head struct {
				Version int64 `json:"version"`
			}
			if err := json.Unmarshal(stored, &head); err != nil {
				return fmt.Errorf("decode franchise document: %w", err)
			}
			if head.Version != f.Version() {
				return ErrVersionConflict
			}
		} else if f.Version() != 0 {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			if !exists {
				pipe.RPush(ctx, s.indexKey, f.ID())
			}
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txf, key); err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return nil, ErrVersionConflict
		}
		return nil, err
	}
	return f.WithVersion(next), nil
}

func (s *RedisStore) List(ctx context.Context) ([]*models.Franchise, error) {
	ids, err := s.client.LRange(ctx, s.indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list franchises: %w", err)
	}
	if len(ids) == 0 {
		return []*models.Franchise{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget franchises: %w", err)
	}

	out := make([]*models.Franchise, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		f, err := decode([]byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
