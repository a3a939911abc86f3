package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"vet-patient-records/internal/ports/kv"
)

type kvStore struct {
	mu    sync.RWMutex
	byKey map[string]string

	// quota en bytes (claves + valores). 0 = sin límite.
	quota int
	used  int
}

// NewKVStore crea un store en memoria sin límite de tamaño.
func NewKVStore() kv.Store {
	return NewKVStoreWithQuota(0)
}

// NewKVStoreWithQuota simula la cuota del storage del navegador:
// si un Set la supera devuelve kv.ErrQuotaExceeded y no toca el valor previo.
func NewKVStoreWithQuota(quotaBytes int) kv.Store {
	if quotaBytes < 0 {
		quotaBytes = 0
	}
	return &kvStore{
		byKey: make(map[string]string),
		quota: quotaBytes,
	}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.byKey[key]
	return v, ok, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kv key required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used
	if prev, ok := s.byKey[key]; ok {
		used -= len(key) + len(prev)
	}
	used += len(key) + len(value)

	if s.quota > 0 && used > s.quota {
		return kv.ErrQuotaExceeded
	}

	s.byKey[key] = value
	s.used = used
	return nil
}

func (s *kvStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.byKey[key]; ok {
		s.used -= len(key) + len(prev)
		delete(s.byKey, key)
	}
	return nil
}
