package main

import (
	"context"
	"fmt"

	mem "vet-patient-records/internal/adapters/storage/memory"
	pg "vet-patient-records/internal/adapters/storage/postgres"
	rds "vet-patient-records/internal/adapters/storage/redis"
	"vet-patient-records/internal/config"
	"vet-patient-records/internal/platform/logger"
	"vet-patient-records/internal/ports/kv"
)

// openStore abre el backend configurado. close libera conexiones (no-op en memoria).
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (kv.Store, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		store := pg.NewKVStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure kv schema: %w", err)
		}
		log.Info("storage backend ready", map[string]any{"backend": cfg.StorageBackend})
		return store, func() { _ = db.Close() }, nil

	case config.BackendRedis:
		client, err := rds.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("storage backend ready", map[string]any{"backend": cfg.StorageBackend})
		return rds.NewKVStore(client), func() { _ = client.Close() }, nil

	default:
		// en memoria: se pierde al reiniciar el proceso
		log.Warn("using in-memory storage", map[string]any{"quota_bytes": cfg.MemoryQuotaBytes})
		if cfg.MemoryQuotaBytes > 0 {
			return mem.NewKVStoreWithQuota(cfg.MemoryQuotaBytes), func() {}, nil
		}
		return mem.NewKVStore(), func() {}, nil
	}
}
