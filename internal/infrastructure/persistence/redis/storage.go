// Package redis stores the whole UltiStudent document as one JSON value in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ultistudent/ultistudent/internal/domain/shared"
	"github.com/ultistudent/ultistudent/internal/domain/store"
	"github.com/ultistudent/ultistudent/internal/infrastructure/persistence"
	"github.com/ultistudent/ultistudent/pkg/logger"
	"github.com/ultistudent/ultistudent/pkg/retry"
	"github.com/ultistudent/ultistudent/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config holds Redis connection configuration.
type Config struct {
	// Addr is the Redis address in "host:port" format.
	Addr string

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// Key holds the document. Key+":saved_at" holds the time of the last save.
	Key string

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Addr:         "localhost:6379",
		Key:          "ultistudent:data",
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// ErrKeyEmpty is returned when no key is configured.
var ErrKeyEmpty = errors.New("redis: key cannot be empty")

// ══════════════════════════════════════════════════════════════════════════════
// STORAGE
// ══════════════════════════════════════════════════════════════════════════════

// Storage implements persistence.Storage on a single Redis key.
type Storage struct {
	client *redis.Client
	key    string
	log    *logger.Logger
}

// Open connects and pings Redis, retrying while the server comes up.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Storage, error) {
	if cfg.Key == "" {
		return nil, ErrKeyEmpty
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(logger.Backend("redis"), logger.String("key", cfg.Key))

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     2,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	r := retry.DatabaseRetrier().With(retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		log.Warn("redis not ready, retrying",
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Err(err),
		)
	}))
	if err := r.Do(ctx, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: connection failed: %w", err)
	}

	return &Storage{client: client, key: cfg.Key, log: log}, nil
}

// Close closes the Redis connection.
func (s *Storage) Close() error {
	return s.client.Close()
}

func (s *Storage) savedAtKey() string {
	return s.key + ":saved_at"
}

// Load reads and validates the stored document.
func (s *Storage) Load(ctx context.Context) (store.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return store.Snapshot{}, shared.WrapError("storage", "Load", shared.ErrDataNotFound,
				"No saved data found", err)
		}
		return store.Snapshot{}, fmt.Errorf("redis: get %s: %w", s.key, err)
	}

	snap, err := persistence.DecodeSnapshot(data, persistence.FormatJSON)
	if err != nil {
		return store.Snapshot{}, err
	}

	s.log.Info("data loaded", logger.Records(snap.Size()))
	return snap, nil
}

// Save writes the document and its timestamp in one MULTI/EXEC transaction.
func (s *Storage) Save(ctx context.Context, snap store.Snapshot) error {
	data, err := persistence.Encode(persistence.FromSnapshot(snap), persistence.FormatJSON)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key, data, 0)
		pipe.Set(ctx, s.savedAtKey(), timeutil.Now().Format(time.RFC3339), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: save %s: %w", s.key, err)
	}

	s.log.Info("data saved", logger.Records(snap.Size()))
	return nil
}
