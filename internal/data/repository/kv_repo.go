package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"salon-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KVRepository is the durable key-value store. Get returns nil, nil for a
// missing key.
type KVRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// ==================== POSTGRES ====================

type kvRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewKVRepository(db database.PgxIface, log *zap.Logger) KVRepository {
	return &kvRepository{
		db:  db,
		log: log.With(zap.String("repository", "kv"), zap.String("driver", "postgres")),
	}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value []byte
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to read key", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	return value, nil
}

func (r *kvRepository) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		r.log.Error("Failed to write key", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("put %s: %w", key, err)
	}

	return nil
}

// ==================== REDIS ====================

type redisKVRepository struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisKVRepository(client *redis.Client, log *zap.Logger) KVRepository {
	return &redisKVRepository{
		client: client,
		log:    log.With(zap.String("repository", "kv"), zap.String("driver", "redis")),
	}
}

func (r *redisKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to read key", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	return value, nil
}

// Put stores the value without expiry; ledgers outlive sessions.
func (r *redisKVRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		r.log.Error("Failed to write key", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("put %s: %w", key, err)
	}

	return nil
}

// ==================== MEMORY ====================

type memoryKVRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKVRepository keeps values in process memory; they are lost on restart.
func NewMemoryKVRepository() KVRepository {
	return &memoryKVRepository{data: make(map[string][]byte)}
}

func (r *memoryKVRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(value), nil
}

func (r *memoryKVRepository) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = slices.Clone(value)
	return nil
}
