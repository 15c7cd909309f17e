package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"doc-quiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(db)
	ctx := context.Background()
	key := "docquiz:quiz:data:01HZ"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(`{"id":"01HZ"}`)
		val, err := cache.Get(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, `{"id":"01HZ"}`, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CacheMiss", func(t *testing.T) {
		mock.ExpectGet(key).RedisNil()
		val, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection reset")
		mock.ExpectGet(key).SetErr(redisErr)
		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, redisErr)
		assert.NotErrorIs(t, err, domain.ErrCacheMiss)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(db)
	ctx := context.Background()
	ttl := 24 * time.Hour

	mock.ExpectSet("k", "v", ttl).SetVal("OK")
	assert.NoError(t, cache.Set(ctx, "k", "v", ttl))

	redisErr := errors.New("OOM")
	mock.ExpectSet("k", "v", ttl).SetErr(redisErr)
	assert.ErrorIs(t, cache.Set(ctx, "k", "v", ttl), redisErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_DeleteAndPing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewRedisCacheAdapter(db)
	ctx := context.Background()

	mock.ExpectDel("k").SetVal(1)
	assert.NoError(t, cache.Delete(ctx, "k"))

	mock.ExpectDel("missing").SetVal(0)
	assert.NoError(t, cache.Delete(ctx, "missing"))

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, cache.Ping(ctx))

	mock.ExpectPing().SetErr(redis.ErrClosed)
	assert.Error(t, cache.Ping(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}
