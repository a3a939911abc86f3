package users

import (
	"context"
	"errors"
	"strings"
	"sync"

	"vet-patient-records/internal/platform/logger"
	"vet-patient-records/internal/ports/auth"
	"vet-patient-records/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Manager valida credenciales contra la lista de usuarios guardada
// y mantiene la única sesión activa del perfil.
type Manager struct {
	mu    sync.Mutex
	store *storage.Adapter
	log   logger.Logger
}

func NewManager(store *storage.Adapter, log logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		store: store,
		log:   log.With(map[string]any{"component": "users"}),
	}
}

// EnsureDefaultAccount agrega la cuenta sembrada si todavía no existe. Idempotente.
func (m *Manager) EnsureDefaultAccount(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := storage.Load(ctx, m.store, storage.KeyUsers, []User{})
	for _, u := range users {
		if u.Email == DefaultEmail {
			return nil
		}
	}

	users = append(users, User{
		Email:    DefaultEmail,
		Password: DefaultPassword,
		Name:     DefaultName,
	})
	if err := m.store.Save(ctx, storage.KeyUsers, users); err != nil {
		return err
	}

	m.log.Info("default account seeded", map[string]any{"email": DefaultEmail})
	return nil
}

// Login busca email+password exactos (sensible a mayúsculas) y persiste la sesión.
func (m *Manager) Login(ctx context.Context, email, password string) (auth.Session, error) {
	email = strings.TrimSpace(email)

	users := storage.Load(ctx, m.store, storage.KeyUsers, []User{})

	var found *User
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			found = &users[i]
			break
		}
	}
	if found == nil {
		m.log.Warn("login rejected", map[string]any{"email": email})
		return auth.Session{}, ErrInvalidCredentials
	}

	s := auth.Session{Email: found.Email, Name: found.Name}
	if err := m.store.Save(ctx, storage.KeyLoggedIn, s); err != nil {
		return auth.Session{}, err
	}

	m.log.Info("login", map[string]any{"email": s.Email})
	return s, nil
}

// Logout borra la sesión persistida.
func (m *Manager) Logout(ctx context.Context) error {
	return m.store.Clear(ctx, storage.KeyLoggedIn)
}

// CurrentSession devuelve la sesión guardada. Sin expiración.
func (m *Manager) CurrentSession(ctx context.Context) (auth.Session, bool) {
	s := storage.Load(ctx, m.store, storage.KeyLoggedIn, auth.Session{})
	if strings.TrimSpace(s.Email) == "" {
		return auth.Session{}, false
	}
	return s, true
}
