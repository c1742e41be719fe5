package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "test.db"))

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	})

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return store
}

func TestStoreAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	saved, err := store.SaveUser(ctx, &User{
		Nombre:    "Ana",
		Apellidos: "Ruiz",
		Email:     "ana@example.com",
		DNI:       "12345678",
		Role:      RoleAdministrator,
		Active:    true,
	}, "s3cret")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !saved.IsAdmin() {
		t.Errorf("saved.IsAdmin(): expected true")
	}

	for _, identifier := range []string{"ana@example.com", "12345678"} {
		user, err := store.Authenticate(ctx, identifier, "s3cret")
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := saved.ID, user.ID; e != g {
			t.Errorf("user.ID: expected '%v', got '%v'", e, g)
		}
	}

	if _, err := store.Authenticate(ctx, "ana@example.com", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("err: expected '%v', got '%v'", ErrInvalidPassword, err)
	}

	if _, err := store.Authenticate(ctx, "nobody@example.com", "s3cret"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err: expected '%v', got '%v'", ErrNotFound, err)
	}

	// Updating without password keeps the existing hash
	if _, err := store.SaveUser(ctx, &User{Nombre: "Ana María", Email: "ana@example.com", Role: RoleUser, Active: true}, ""); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	user, err := store.Authenticate(ctx, "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "Ana María", user.Nombre; e != g {
		t.Errorf("user.Nombre: expected '%v', got '%v'", e, g)
	}

	if user.IsAdmin() {
		t.Errorf("user.IsAdmin(): expected false")
	}

	count, err := store.CountUsers(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), count; e != g {
		t.Errorf("count: expected '%v', got '%v'", e, g)
	}
}

func TestStoreInactiveUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	saved, err := store.SaveUser(ctx, &User{Nombre: "Luis", Email: "luis@example.com", Role: RoleUser, Active: false}, "pass")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := store.FindActiveUser(ctx, "luis@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err: expected '%v', got '%v'", ErrNotFound, err)
	}

	if _, err := store.GetUser(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err: expected '%v', got '%v'", ErrNotFound, err)
	}
}

func TestStoreTouchLastAccess(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	saved, err := store.SaveUser(ctx, &User{Nombre: "Luis", Email: "luis@example.com", Role: RoleUser, Active: true}, "pass")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !saved.LastAccess.IsZero() {
		t.Errorf("saved.LastAccess: expected zero, got '%v'", saved.LastAccess)
	}

	if err := store.TouchLastAccess(ctx, saved.ID); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	user, err := store.GetUser(ctx, saved.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if user.LastAccess.IsZero() {
		t.Errorf("user.LastAccess: expected non zero value")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	laravel := "$2y$" + string(hash)[4:]

	testCases := []struct {
		Password string
		Stored   string
		Expected bool
	}{
		{"secret", string(hash), true},
		{"secret", laravel, true},
		{"wrong", laravel, false},
		{"plain", "plain", true},
		{"plain", "other", false},
		{"", "", false},
	}

	for idx, tc := range testCases {
		if e, g := tc.Expected, verifyPassword(tc.Password, tc.Stored); e != g {
			t.Errorf("Case #%d: expected '%v', got '%v'", idx, e, g)
		}
	}
}
