package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mrlokans/userbooks/internal/entities"
)

// Config holds everything needed to reach Redis.
type Config struct {
	Addr      string
	Password  string
	Database  int
	KeyPrefix string
}

// Store bundles the user and book repositories sharing one client.
type Store struct {
	client redis.UniversalClient
	Users  *Repository[entities.User]
	Books  *Repository[entities.Book]
}

// Open connects to Redis and verifies it answers before returning.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Addr},
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping failed: %w", err)
	}

	return NewStore(client, cfg.KeyPrefix), nil
}

func NewStore(client redis.UniversalClient, prefix string) *Store {
	return &Store{
		client: client,
		Users:  NewRepository[entities.User](client, prefix, entities.KindUser),
		Books:  NewRepository[entities.Book](client, prefix, entities.KindBook),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
