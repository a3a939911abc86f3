package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"vet-patient-records/internal/ports/kv"
)

// KVStore implementa kv.Store con strings de Redis (sin TTL).
type KVStore struct {
	client *redis.Client
}

func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{client: client}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kv key required")
	}
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		if isOutOfMemory(err) {
			return fmt.Errorf("%w: %v", kv.ErrQuotaExceeded, err)
		}
		return err
	}
	return nil
}

// isOutOfMemory detecta el rechazo por maxmemory ("OOM command not allowed ...").
func isOutOfMemory(err error) bool {
	var rerr redis.Error
	return errors.As(err, &rerr) && strings.HasPrefix(rerr.Error(), "OOM ")
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
