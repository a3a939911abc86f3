package main

import (
	"bytes"
	"context"
	"testing"

	"vet-patient-records/internal/config"
	"vet-patient-records/internal/domain/patients"
	"vet-patient-records/internal/platform/logger"
	"vet-patient-records/internal/ports/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_MemoryWithQuota(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StorageBackend: config.BackendMemory, MemoryQuotaBytes: 10}

	store, closeFn, err := openStore(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, store.Set(ctx, "k", "v"))
	assert.ErrorIs(t, store.Set(ctx, "k", "0123456789"), kv.ErrQuotaExceeded)
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, nil)
	assert.Contains(t, buf.String(), "No hay pacientes")

	buf.Reset()
	printTable(&buf, []patients.Patient{{ID: "p-1", PatientName: "Luna", Species: "Perro", OwnerName: "Ana"}})
	out := buf.String()
	assert.Contains(t, out, "PATIENT")
	assert.Contains(t, out, "Luna")
	assert.Contains(t, out, "p-1")
}
