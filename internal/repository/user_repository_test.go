package repository

import (
	"errors"
	"testing"

	apperrors "github.com/labrinth/backend/internal/errors"
	"github.com/labrinth/backend/internal/models"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	st := newTestStore(t)
	repo := NewUserRepository(st)

	user := &models.User{ID: "u1", Username: "alice", Email: "alice@example.com", DisplayName: "Alice", Password: "secret"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	byID, err := repo.GetByID("u1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("Expected username alice, got %s", byID.Username)
	}

	byName, err := repo.GetByUsername("alice")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if byName.ID != "u1" {
		t.Errorf("Expected id u1, got %s", byName.ID)
	}

	if _, err := repo.GetByID("missing"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Create_Duplicates(t *testing.T) {
	st := newTestStore(t)
	repo := NewUserRepository(st)

	if err := repo.Create(&models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := repo.Create(&models.User{ID: "u2", Username: "alice", Email: "other@example.com"})
	if !errors.Is(err, apperrors.ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}

	err = repo.Create(&models.User{ID: "u3", Username: "bob", Email: "alice@example.com"})
	if !errors.Is(err, apperrors.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}

	users, _ := repo.List()
	if len(users) != 1 {
		t.Errorf("Expected 1 user, got %d", len(users))
	}
}

func TestUserRepository_Save(t *testing.T) {
	st := newTestStore(t)
	repo := NewUserRepository(st)

	if err := repo.Create(&models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated := &models.User{ID: "u1", Username: "alice", Email: "alice@example.com", DisplayName: "Alice the Great", IsBanned: true}
	if err := repo.Save(updated); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	stored, _ := repo.GetByID("u1")
	if stored.DisplayName != "Alice the Great" || !stored.IsBanned {
		t.Errorf("Expected full record rewrite, got %+v", stored)
	}

	if err := repo.Save(&models.User{ID: "missing"}); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	st := newTestStore(t)
	repo := NewUserRepository(st)

	if err := repo.Create(&models.User{ID: "u1", Username: "alice", Email: "alice@example.com", Password: "old"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.UpdatePassword("u1", "new"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	stored, _ := repo.GetByID("u1")
	if stored.Password != "new" {
		t.Errorf("Expected new password, got %q", stored.Password)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	st := newTestStore(t)
	repo := NewUserRepository(st)

	if err := repo.Create(&models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete("u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID("u1"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound after delete, got %v", err)
	}
	if err := repo.Delete("u1"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound on repeat delete, got %v", err)
	}
}
