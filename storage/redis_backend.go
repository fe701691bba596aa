package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const redisWatchRetries = 5

// RedisBackend stores each record as a plain string at its physical key.
// Namespaces holding data are tracked in a set.
type RedisBackend struct {
	client       *redis.Client
	namespaceSet string
}

func NewRedisBackend(client *redis.Client, namespaceSet string) *RedisBackend {
	return &RedisBackend{client: client, namespaceSet: namespaceSet}
}

func (b *RedisBackend) Load(ctx context.Context, physicalKey string) ([]byte, bool, error) {
	return redisLoad(ctx, b.client, physicalKey)
}

func (b *RedisBackend) Save(ctx context.Context, rec Record) error {
	_, err := b.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		queueSave(ctx, p, b.namespaceSet, rec)
		return nil
	})
	return err
}

// Atomic watches physicalKey and retries fn when another writer got there first.
func (b *RedisBackend) Atomic(ctx context.Context, physicalKey string, fn func(ctx context.Context, tx Tx) error) error {
	for i := 0; i < redisWatchRetries; i++ {
		err := b.client.Watch(ctx, func(tx *redis.Tx) error {
			return fn(ctx, redisTx{tx: tx, namespaceSet: b.namespaceSet})
		}, physicalKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("gave up on %s after %d conflicting writes", physicalKey, redisWatchRetries)
}

func (b *RedisBackend) Namespaces(ctx context.Context) ([]string, error) {
	return b.client.SMembers(ctx, b.namespaceSet).Result()
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

type redisTx struct {
	tx           *redis.Tx
	namespaceSet string
}

func (t redisTx) Load(ctx context.Context, physicalKey string) ([]byte, bool, error) {
	return redisLoad(ctx, t.tx, physicalKey)
}

func (t redisTx) Save(ctx context.Context, rec Record) error {
	_, err := t.tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
		queueSave(ctx, p, t.namespaceSet, rec)
		return nil
	})
	return err
}

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func redisLoad(ctx context.Context, c redisGetter, physicalKey string) ([]byte, bool, error) {
	value, err := c.Get(ctx, physicalKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func queueSave(ctx context.Context, p redis.Pipeliner, namespaceSet string, rec Record) {
	p.Set(ctx, rec.PhysicalKey, rec.Value, 0)
	p.SAdd(ctx, namespaceSet, rec.Namespace)
}
