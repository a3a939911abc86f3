package patients

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("patient not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrIDExhausted  = errors.New("could not generate a unique patient id")
)

// maxIDAttempts acota los reintentos ante ids repetidos.
const maxIDAttempts = 8

// Service es el repositorio de fichas: alta, listado ordenado, edición y baja.
// Create/Update no validan: el alta llama a Validate antes y la edición usa Edit.
type Service struct {
	// serializa lectura-modificación-escritura dentro del proceso;
	// entre procesos sobre el mismo store gana la última escritura.
	mu sync.Mutex

	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: newTimeOrderedID,
	}
}

// ListFilter filtra el listado. Vacío = todas las fichas.
type ListFilter struct {
	// Query busca (sin distinguir mayúsculas) en nombre, especie, raza y responsable.
	Query string
}

// List devuelve las fichas de la más nueva a la más vieja.
// A igual createdAt se respeta el orden guardado.
func (s *Service) List(ctx context.Context, filter ListFilter) []Patient {
	items := s.repo.LoadAll(ctx)

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]Patient, 0, len(items))
	for _, p := range items {
		if q != "" {
			hay := strings.ToLower(strings.Join([]string{p.PatientName, p.Species, p.Breed, p.OwnerName}, " "))
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Time.After(out[j].CreatedAt.Time)
	})
	return out
}

func (s *Service) Get(ctx context.Context, id string) (Patient, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Patient{}, ErrNotFound
	}
	for _, p := range s.repo.LoadAll(ctx) {
		if p.ID == id {
			return p, nil
		}
	}
	return Patient{}, ErrNotFound
}

func (s *Service) Create(ctx context.Context, d Draft) (Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.repo.LoadAll(ctx)

	id, err := s.uniqueID(items)
	if err != nil {
		return Patient{}, err
	}

	d = d.normalized()
	p := Patient{
		ID:               id,
		PatientName:      d.PatientName,
		Species:          d.Species,
		Breed:            d.Breed,
		Age:              d.Age,
		VaccinesUpToDate: d.VaccinesUpToDate,
		Operations:       d.Operations,
		RecentStudies:    d.RecentStudies,
		OwnerName:        d.OwnerName,
		OwnerPhone:       d.OwnerPhone,
		Notes:            d.Notes,
		CreatedAt:        NewTimestamp(s.now()),
	}

	items = append(items, p)
	if err := s.repo.SaveAll(ctx, items); err != nil {
		return Patient{}, err
	}
	return p, nil
}

// Update aplica los campos presentes en patch; id y createdAt se mantienen.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Patient, error) {
	return s.update(ctx, id, patch, false)
}

// Edit es Update validando la ficha resultante contra lo guardado, dentro del
// mismo lock que la escritura. Si no es válida devuelve ValidationErrors y no guarda.
func (s *Service) Edit(ctx context.Context, id string, patch Patch) (Patient, error) {
	return s.update(ctx, id, patch, true)
}

func (s *Service) update(ctx context.Context, id string, patch Patch, validate bool) (Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.TrimSpace(id)
	items := s.repo.LoadAll(ctx)

	idx := indexOf(items, id)
	if id == "" || idx == -1 {
		return Patient{}, ErrNotFound
	}

	cur := items[idx]
	merged := cur.Draft().Apply(patch)
	if validate {
		if errs := Validate(merged); len(errs) > 0 {
			return Patient{}, errs
		}
	}
	d := merged.normalized()

	updated := Patient{
		ID:               cur.ID,
		PatientName:      d.PatientName,
		Species:          d.Species,
		Breed:            d.Breed,
		Age:              d.Age,
		VaccinesUpToDate: d.VaccinesUpToDate,
		Operations:       d.Operations,
		RecentStudies:    d.RecentStudies,
		OwnerName:        d.OwnerName,
		OwnerPhone:       d.OwnerPhone,
		Notes:            d.Notes,
		CreatedAt:        cur.CreatedAt,
	}

	items[idx] = updated
	if err := s.repo.SaveAll(ctx, items); err != nil {
		return Patient{}, err
	}
	return updated, nil
}

// Delete borra la ficha. Devuelve false si no existía (no es error).
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.TrimSpace(id)
	items := s.repo.LoadAll(ctx)

	idx := indexOf(items, id)
	if id == "" || idx == -1 {
		return false, nil
	}

	items = append(items[:idx], items[idx+1:]...)
	if err := s.repo.SaveAll(ctx, items); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) uniqueID(items []Patient) (string, error) {
	taken := make(map[string]struct{}, len(items))
	for _, p := range items {
		taken[p.ID] = struct{}{}
	}

	for i := 0; i < maxIDAttempts; i++ {
		id := strings.TrimSpace(s.newID())
		if id == "" {
			continue
		}
		if _, dup := taken[id]; !dup {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

func indexOf(items []Patient, id string) int {
	for i, p := range items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// newTimeOrderedID usa UUIDv7 (prefijo de milisegundos + aleatorio).
func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
