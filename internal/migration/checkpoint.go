package migration

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"

	"product-catalog-service/pkg/e"
)

// Progress es el estado del job: páginas procesadas, registros migrados y si terminó
type Progress struct {
	Page     int64 `json:"page"`
	Migrated int64 `json:"migrated"`
	Done     bool  `json:"done"`
}

// CheckpointStore persiste Progress entre ticks y reinicios
type CheckpointStore interface {
	Load(ctx context.Context) (Progress, error)
	Save(ctx context.Context, p Progress) error
}

// MemoryCheckpoint guarda el progreso solo durante la vida del proceso
type MemoryCheckpoint struct {
	mu sync.Mutex
	p  Progress
}

func NewMemoryCheckpoint() *MemoryCheckpoint {
	return &MemoryCheckpoint{}
}

func (m *MemoryCheckpoint) Load(context.Context) (Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.p, nil
}

func (m *MemoryCheckpoint) Save(_ context.Context, p Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.p = p
	return nil
}

// RedisCheckpoint guarda el progreso como JSON en una clave de Redis
type RedisCheckpoint struct {
	client *redis.Client
	key    string
}

func NewRedisCheckpoint(client *redis.Client, key string) *RedisCheckpoint {
	return &RedisCheckpoint{client: client, key: key}
}

func (r *RedisCheckpoint) Load(ctx context.Context) (Progress, error) {
	var p Progress

	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return p, nil
		}
		return p, e.Wrap("load checkpoint", err)
	}

	if err := json.Unmarshal(data, &p); err != nil {
		return p, e.Wrap("decode checkpoint", err)
	}
	return p, nil
}

func (r *RedisCheckpoint) Save(ctx context.Context, p Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return e.Wrap("encode checkpoint", err)
	}

	// sin TTL: el progreso debe sobrevivir a reinicios
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return e.Wrap("save checkpoint", err)
	}
	return nil
}

// Reset borra el progreso guardado para volver a ejecutar el job desde cero
func (r *RedisCheckpoint) Reset(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return e.Wrap("reset checkpoint", err)
	}
	return nil
}
