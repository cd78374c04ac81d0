package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultProfileKey is the key the blob lives under unless configured otherwise.
const DefaultProfileKey = "fofo_super_tic_tac_toe_data"

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository stores one opaque blob under a fixed key.
type ProfileRepository interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, blob string) error
	Delete(ctx context.Context) error
}

type dbProfile struct {
	client *redis.Client
	key    string
}

func NewProfileRepository(client *redis.Client, key string) ProfileRepository {
	if key == "" {
		key = DefaultProfileKey
	}

	return &dbProfile{
		client: client,
		key:    key,
	}
}

func (that *dbProfile) Get(ctx context.Context) (string, error) {
	response, err := that.client.Get(ctx, that.key).Result()

	if errors.Is(err, redis.Nil) {
		return "", ErrProfileNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get profile: %w", err)
	}

	return response, nil
}

func (that *dbProfile) Set(ctx context.Context, blob string) error {
	if err := that.client.Set(ctx, that.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("failed to set profile: %w", err)
	}

	return nil
}

func (that *dbProfile) Delete(ctx context.Context) error {
	if err := that.client.Del(ctx, that.key).Err(); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	return nil
}
