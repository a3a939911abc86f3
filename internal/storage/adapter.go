package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"vet-patient-records/internal/platform/logger"
	"vet-patient-records/internal/ports/kv"
)

// Claves lógicas del store compartido.
const (
	KeyUsers    = "vet_users"
	KeyPatients = "vet_patients"
	KeyLoggedIn = "vet_logged_in_user"
)

// Adapter serializa valores a JSON sobre un kv.Store.
// Las lecturas nunca fallan hacia arriba: ante datos ausentes o corruptos usan el default.
// Las escrituras sí devuelven error (p.ej. kv.ErrQuotaExceeded).
type Adapter struct {
	store     kv.Store
	log       logger.Logger
	namespace string
}

type Options struct {
	Logger logger.Logger
	// Namespace se antepone a cada clave ("ns:vet_users"). Vacío = claves tal cual.
	Namespace string
}

func NewAdapter(store kv.Store, opts Options) *Adapter {
	l := opts.Logger
	if l == nil {
		l = logger.Nop()
	}
	return &Adapter{
		store:     store,
		log:       l.With(map[string]any{"component": "storage"}),
		namespace: strings.TrimSpace(opts.Namespace),
	}
}

// Load lee key y la decodifica en un T. Si la clave falta, está vacía, es null
// o no se puede leer/decodificar, devuelve def.
func Load[T any](ctx context.Context, a *Adapter, key string, def T) T {
	raw, ok, err := a.store.Get(ctx, a.key(key))
	if err != nil {
		a.log.Error("storage read failed", map[string]any{"key": key, "error": err})
		return def
	}
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" || raw == "null" {
		return def
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		a.log.Error("storage value malformed, using default", map[string]any{"key": key, "error": err})
		return def
	}
	return out
}

// LoadEach lee key como un array JSON y decodifica elemento por elemento.
// Los que no se pueden decodificar se devuelven crudos en rest para que el
// que guarda los reescriba; un elemento roto no vacía la lista.
func LoadEach[T any](ctx context.Context, a *Adapter, key string) (items []T, rest []json.RawMessage) {
	raws := Load[[]json.RawMessage](ctx, a, key, nil)
	for i, raw := range raws {
		if string(bytes.TrimSpace(raw)) == "null" {
			rest = append(rest, raw)
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			a.log.Error("storage element malformed, kept as is", map[string]any{"key": key, "index": i, "error": err})
			rest = append(rest, raw)
			continue
		}
		items = append(items, v)
	}
	return items, rest
}

// Save reemplaza el valor completo de key. O se escribe todo o no se escribe nada.
func (a *Adapter) Save(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %q: %w", key, err)
	}
	if err := a.store.Set(ctx, a.key(key), string(b)); err != nil {
		a.log.Error("storage write failed", map[string]any{"key": key, "bytes": len(b), "error": err})
		return fmt.Errorf("storage: save %q: %w", key, err)
	}
	return nil
}

// Clear borra key (logout).
func (a *Adapter) Clear(ctx context.Context, key string) error {
	if err := a.store.Remove(ctx, a.key(key)); err != nil {
		return fmt.Errorf("storage: clear %q: %w", key, err)
	}
	return nil
}

func (a *Adapter) key(k string) string {
	if a.namespace == "" {
		return k
	}
	return a.namespace + ":" + k
}
