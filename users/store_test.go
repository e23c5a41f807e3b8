// SPDX-License-Identifier: GPL-3.0-only

package users

import (
	"errors"
	"fmt"
	"petdor-server/crypto"
	"petdor-server/models"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return NewStore(conn, crypto.NewCrypto())
}

func TestRegisterAndAuthenticate(t *testing.T) {
	store := testStore(t)

	id, err := store.Register(Registration{
		DisplayName: "Maria Silva",
		Email:       "maria@example.com",
		Password:    "Sup3r$ecret",
		Role:        models.RoleTutor,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if id == 0 {
		t.Fatal("Register should return a non-zero user ID")
	}

	user, err := store.Authenticate("maria@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.ID != id {
		t.Errorf("Authenticate returned user %d, want %d", user.ID, id)
	}
	if user.Password == "Sup3r$ecret" {
		t.Error("Stored password must never be the plaintext")
	}
	if user.Role != models.RoleTutor {
		t.Errorf("Unexpected role %q", user.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := testStore(t)

	reg := Registration{
		DisplayName: "First",
		Email:       "dup@example.com",
		Password:    "Sup3r$ecret",
		Role:        models.RoleTutor,
	}
	if _, err := store.Register(reg); err != nil {
		t.Fatalf("First Register failed: %v", err)
	}

	reg.DisplayName = "Second"
	reg.Password = "Other$ecret9"
	if _, err := store.Register(reg); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("Second Register should fail with ErrDuplicateEmail, got %v", err)
	}

	// Original credentials must remain intact.
	if _, err := store.Authenticate("dup@example.com", "Sup3r$ecret"); err != nil {
		t.Errorf("Original credentials should still authenticate: %v", err)
	}
}

func TestAuthenticateDoesNotLeakEnumeration(t *testing.T) {
	store := testStore(t)

	if _, err := store.Register(Registration{
		DisplayName: "Known",
		Email:       "known@example.com",
		Password:    "Sup3r$ecret",
		Role:        models.RoleTutor,
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, errUnknown := store.Authenticate("unknown@example.com", "whatever")
	_, errWrongPass := store.Authenticate("known@example.com", "wrongpass")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("Unknown email should yield ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Errorf("Wrong password should yield ErrInvalidCredentials, got %v", errWrongPass)
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Error("Unknown email and wrong password must be indistinguishable to the caller")
	}
}

func TestAuthenticateIsCaseSensitive(t *testing.T) {
	store := testStore(t)

	if _, err := store.Register(Registration{
		DisplayName: "Exact",
		Email:       "Exact@Example.com",
		Password:    "Sup3r$ecret",
		Role:        models.RoleTutor,
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := store.Authenticate("exact@example.com", "Sup3r$ecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Email lookup must be an exact string match, got %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	store := testStore(t)

	id, err := store.Register(Registration{
		DisplayName: "Rot",
		Email:       "rot@example.com",
		Password:    "OldPass$123",
		Role:        models.RoleVeterinarian,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := store.SetPassword(id, "NewPass$456"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}

	if _, err := store.Authenticate("rot@example.com", "OldPass$123"); err == nil {
		t.Error("Old password should no longer authenticate")
	}
	if _, err := store.Authenticate("rot@example.com", "NewPass$456"); err != nil {
		t.Errorf("New password should authenticate: %v", err)
	}

	if err := store.SetPassword(99999, "NewPass$456"); err == nil {
		t.Error("SetPassword for unknown user should fail")
	}
}
