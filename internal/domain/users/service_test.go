package users

import (
	"context"
	"errors"
	"testing"

	"vet-patient-records/internal/adapters/storage/memory"
	"vet-patient-records/internal/storage"
)

func newTestManager() (*Manager, *storage.Adapter) {
	st := storage.NewAdapter(memory.NewKVStore(), storage.Options{})
	return NewManager(st, nil), st
}

func TestManager_EnsureDefaultAccount_Idempotent(t *testing.T) {
	ctx := context.Background()
	m, st := newTestManager()

	if err := m.EnsureDefaultAccount(ctx); err != nil {
		t.Fatalf("EnsureDefaultAccount #1 error: %v", err)
	}
	if err := m.EnsureDefaultAccount(ctx); err != nil {
		t.Fatalf("EnsureDefaultAccount #2 error: %v", err)
	}

	users := storage.Load(ctx, st, storage.KeyUsers, []User{})
	seeded := 0
	for _, u := range users {
		if u.Email == DefaultEmail {
			seeded++
		}
	}
	if seeded != 1 {
		t.Fatalf("expected exactly 1 seeded account, got %d (%#v)", seeded, users)
	}
}

func TestManager_EnsureDefaultAccount_KeepsExistingUsers(t *testing.T) {
	ctx := context.Background()
	m, st := newTestManager()

	_ = st.Save(ctx, storage.KeyUsers, []User{{Email: "vet@clinic", Password: "x", Name: "Vet"}})

	if err := m.EnsureDefaultAccount(ctx); err != nil {
		t.Fatalf("EnsureDefaultAccount error: %v", err)
	}

	users := storage.Load(ctx, st, storage.KeyUsers, []User{})
	if len(users) != 2 || users[0].Email != "vet@clinic" || users[1].Email != DefaultEmail {
		t.Fatalf("expected existing user kept and seed appended, got %#v", users)
	}
}

func TestManager_Login_AfterSeed(t *testing.T) {
	ctx := context.Background()
	m, st := newTestManager()

	if err := m.EnsureDefaultAccount(ctx); err != nil {
		t.Fatalf("EnsureDefaultAccount error: %v", err)
	}

	s, err := m.Login(ctx, " admin@vet.local ", "admin123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if s.Email != DefaultEmail || s.Name != DefaultName {
		t.Fatalf("unexpected session %#v", s)
	}

	// la sesión persistida nunca lleva password
	raw := storage.Load(ctx, st, storage.KeyLoggedIn, map[string]any{})
	if _, has := raw["password"]; has {
		t.Fatalf("stored session must not carry the password: %#v", raw)
	}

	cur, ok := m.CurrentSession(ctx)
	if !ok || cur != s {
		t.Fatalf("expected current session %#v, got %#v ok=%v", s, cur, ok)
	}
}

func TestManager_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()
	_ = m.EnsureDefaultAccount(ctx)

	for _, tc := range []struct{ email, password string }{
		{"admin@vet.local", "wrong"},
		{"admin@vet.local", "ADMIN123"},
		{"Admin@vet.local", "admin123"},
		{"admin@vet.local", " admin123"},
		{"nobody@vet.local", "admin123"},
	} {
		_, err := m.Login(ctx, tc.email, tc.password)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("Login(%q,%q): expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
	}

	if _, ok := m.CurrentSession(ctx); ok {
		t.Fatalf("failed logins must not create a session")
	}
}

func TestManager_Logout_ClearsSession(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()
	_ = m.EnsureDefaultAccount(ctx)

	if _, err := m.Login(ctx, DefaultEmail, DefaultPassword); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if _, ok := m.CurrentSession(ctx); ok {
		t.Fatalf("expected no session after logout")
	}
	// logout sin sesión no falla
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout #2 error: %v", err)
	}
}

func TestManager_Login_EmptyStore_Fails(t *testing.T) {
	m, _ := newTestManager()

	if _, err := m.Login(context.Background(), DefaultEmail, DefaultPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials without seed, got %v", err)
	}
}
