package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/asset-sync/internal/config"
)

const runLockKey = "asset-sync:run-lock"

// ErrLockHeld is returned when another sync process holds the run lock.
var ErrLockHeld = errors.New("sync run lock already held")

// RunLock is an advisory lock backed by Redis. It keeps two sync processes
// from writing to the same tables at once. When Redis is not configured the
// lock degrades to a no-op: a missing lock service never blocks a run.
type RunLock struct {
	client *redis.Client
	logger *zap.Logger
	token  string
}

// NewRunLock connects to Redis using the provided configuration. A blank
// address disables the lock.
func NewRunLock(cfg config.RedisConfig, logger *zap.Logger) *RunLock {
	if cfg.Addr == "" {
		logger.Warn("REDIS_ADDR not provided; running without a run lock")
		return &RunLock{logger: logger}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis; running without a run lock", zap.Error(err))
		_ = client.Close()
		return &RunLock{logger: logger}
	}

	logger.Info("connected to redis")
	return &RunLock{client: client, logger: logger}
}

// Acquire takes the lock for at most ttl. Returns ErrLockHeld when another
// process owns it.
func (l *RunLock) Acquire(ctx context.Context, token string, ttl time.Duration) error {
	if l == nil || l.client == nil {
		return nil
	}
	ok, err := l.client.SetNX(ctx, runLockKey, token, ttl).Result()
	if err != nil {
		l.logger.Warn("run lock acquire failed; continuing without lock", zap.Error(err))
		return nil
	}
	if !ok {
		return ErrLockHeld
	}
	l.token = token
	return nil
}

// Release frees the lock if this process still owns it.
func (l *RunLock) Release(ctx context.Context) {
	if l == nil || l.client == nil || l.token == "" {
		return
	}
	held, err := l.client.Get(ctx, runLockKey).Result()
	if err == nil && held == l.token {
		_ = l.client.Del(ctx, runLockKey).Err()
	}
	l.token = ""
}

// Close closes the client.
func (l *RunLock) Close() {
	if l != nil && l.client != nil {
		_ = l.client.Close()
	}
}
