package redis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.DefinitionStore using Redis.
// Each description is a hash {format, data}; names are indexed in a sorted set whose
// score is the expiry time, so List can prune expired entries lazily.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for published descriptions.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "turing:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(name string) string {
	return s.prefix + "machine:" + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// SaveDefinition publishes a description.
func (s *Store) SaveDefinition(ctx context.Context, desc *ports.Description) error {
	if desc.Name == "" {
		return fmt.Errorf("definition missing name")
	}

	pipe := s.client.TxPipeline()

	// 1. Replace the hash, with TTL when configured
	pipe.Del(ctx, s.key(desc.Name))
	pipe.HSet(ctx, s.key(desc.Name), "format", string(desc.Format), "data", desc.Data)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key(desc.Name), s.ttl)
	}

	// 2. Add to Index (ZSET)
	// Score = Now + TTL. If TTL = 0, Score = +Inf (approx).
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01 (Far enough for now)
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: desc.Name,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// GetDefinition retrieves a description.
func (s *Store) GetDefinition(ctx context.Context, name string) (*ports.Description, error) {
	fields, err := s.client.HGetAll(ctx, s.key(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	data, ok := fields["data"]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
	}

	format := domain.Format(fields["format"])
	if format == "" {
		format = domain.FormatText
	}
	return &ports.Description{Name: name, Format: format, Data: []byte(data)}, nil
}

// DeleteDefinition removes a description.
func (s *Store) DeleteDefinition(ctx context.Context, name string) error {
	pipe := s.client.TxPipeline()

	pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)

	_, err := pipe.Exec(ctx)
	return err
}

// ListDefinitions returns the published names, pruning expired ones from the index.
func (s *Store) ListDefinitions(ctx context.Context) ([]string, error) {
	// Lazy Cleanup: Remove expired names from Index
	// ZREMRANGEBYSCORE key -inf (now
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("(%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired definitions: %w", err)
	}

	// The index is ordered by expiry, callers expect names.
	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
