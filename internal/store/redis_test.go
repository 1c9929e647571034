package store

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisStore(t *testing.T) {
	_, client := setupRedis(t)
	runStoreContract(t, NewRedisStore(client, ""))
}

func TestRedisStore_Layout(t *testing.T) {
	mr, client := setupRedis(t)
	s := NewRedisStore(client, "catalog")
	ctx := context.Background()

	_, err := s.Put(ctx, sampleFranchise(t, "f-1", "Acme"))
	require.NoError(t, err)

	assert.True(t, mr.Exists("catalog:f-1"))
	ids, err := mr.List("catalogs")
	require.NoError(t, err)
	assert.Equal(t, []string{"f-1"}, ids)

	raw, err := mr.Get("catalog:f-1")
	require.NoError(t, err)
	assert.Contains(t, raw, `"version":1`)

	current, err := s.Get(ctx, "f-1")
	require.NoError(t, err)
	_, err = s.Put(ctx, current)
	require.NoError(t, err)

	ids, err = mr.List("catalogs")
	require.NoError(t, err)
	assert.Equal(t, []string{"f-1"}, ids, "updates must not re-index")
}

func TestRedisStore_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("get error is returned", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectGet("franchise:f-1").SetErr(errors.New("connection refused"))

		_, err := NewRedisStore(db, "").Get(ctx, "f-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDocumentNotFound)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil maps to not found", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectGet("franchise:f-1").RedisNil()

		_, err := NewRedisStore(db, "").Get(ctx, "f-1")
		assert.ErrorIs(t, err, ErrDocumentNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list error is returned", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectLRange("franchises", 0, -1).SetErr(errors.New("timeout"))

		_, err := NewRedisStore(db, "").List(ctx)
		assert.ErrorContains(t, err, "timeout")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty list", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectLRange("franchises", 0, -1).SetVal([]string{})

		all, err := NewRedisStore(db, "").List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
