package patients

import (
	"context"
	"encoding/json"

	"vet-patient-records/internal/storage"
)

// Repository persiste la colección completa de fichas bajo una sola clave.
// LoadAll nunca falla: datos ausentes o corruptos se leen como lista vacía.
type Repository interface {
	LoadAll(ctx context.Context) []Patient
	SaveAll(ctx context.Context, items []Patient) error
}

type storeRepo struct {
	store *storage.Adapter
}

// NewStoreRepository guarda las fichas en storage.KeyPatients.
func NewStoreRepository(store *storage.Adapter) Repository {
	return &storeRepo{store: store}
}

func (r *storeRepo) LoadAll(ctx context.Context) []Patient {
	items, _ := storage.LoadEach[Patient](ctx, r.store, storage.KeyPatients)
	if items == nil {
		items = []Patient{}
	}
	return items
}

// SaveAll reescribe la lista. Los elementos guardados que no se pudieron leer
// como ficha se conservan al final, sin tocar.
func (r *storeRepo) SaveAll(ctx context.Context, items []Patient) error {
	_, rest := storage.LoadEach[Patient](ctx, r.store, storage.KeyPatients)

	out := make([]json.RawMessage, 0, len(items)+len(rest))
	for _, p := range items {
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}
		out = append(out, b)
	}
	out = append(out, rest...)
	return r.store.Save(ctx, storage.KeyPatients, out)
}
