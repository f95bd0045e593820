package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/labrinth/backend/internal/auth"
	"github.com/labrinth/backend/internal/models"
	"github.com/labrinth/backend/internal/repository"
	"github.com/labrinth/backend/internal/store"
)

func setupAuthRouter(t *testing.T, users ...models.User) (*gin.Engine, *repository.UserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	userRepo := repository.NewUserRepository(st)
	for i := range users {
		if err := userRepo.Create(&users[i]); err != nil {
			t.Fatalf("Failed to seed user %s: %v", users[i].Username, err)
		}
	}

	handler := NewAuthHandler(userRepo, auth.NewJWTService("test-secret", 24))

	router := gin.New()
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/update-password", handler.UpdatePassword)
	router.POST("/auth/delete-account", handler.DeleteAccount)
	return router, userRepo
}

func TestAuthHandler_Register(t *testing.T) {
	router, repo := setupAuthRouter(t)

	w := postJSON(t, router, "/auth/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("Expected a session token")
	}
	if resp.User.Password != "" {
		t.Error("Expected password stripped from the response")
	}
	if resp.User.DisplayName != "alice" {
		t.Errorf("Expected display name to default to the username, got %q", resp.User.DisplayName)
	}
	if resp.User.Role != models.RoleUser {
		t.Errorf("Expected role user, got %q", resp.User.Role)
	}

	stored, err := repo.GetByUsername("alice")
	if err != nil {
		t.Fatalf("Expected user persisted: %v", err)
	}
	if stored.ID != resp.User.ID {
		t.Errorf("Expected stored id %s, got %s", resp.User.ID, stored.ID)
	}
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	existing := models.User{ID: "u1", Username: "alice", Email: "alice@example.com", DisplayName: "Alice"}
	router, _ := setupAuthRouter(t, existing)

	w := postJSON(t, router, "/auth/register", gin.H{
		"username": "alice",
		"email":    "new@example.com",
		"password": "secret123",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	existing := models.User{ID: "u1", Username: "alice", Email: "alice@example.com", DisplayName: "Alice", Password: "secret123"}
	router, _ := setupAuthRouter(t, existing)

	w := postJSON(t, router, "/auth/login", gin.H{"username": "alice", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("Expected a session token")
	}
	if resp.User.Password != "" {
		t.Error("Expected password stripped from the response")
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	existing := models.User{ID: "u1", Username: "alice", Email: "alice@example.com", DisplayName: "Alice", Password: "secret123"}
	router, _ := setupAuthRouter(t, existing)

	tests := []struct {
		name string
		body gin.H
	}{
		{"Wrong password", gin.H{"username": "alice", "password": "wrong"}},
		{"Unknown username", gin.H{"username": "nobody", "password": "secret123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, "/auth/login", tt.body)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d", w.Code)
			}
		})
	}
}

// A login with an active ban still succeeds; the ban state rides along in the
// user record for the client to present.
func TestAuthHandler_Login_BannedUserStillLogsIn(t *testing.T) {
	reason := "spam"
	banned := models.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", DisplayName: "Alice",
		Password: "secret123", IsBanned: true, BanReason: &reason,
	}
	router, _ := setupAuthRouter(t, banned)

	w := postJSON(t, router, "/auth/login", gin.H{"username": "alice", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.User.IsBanned {
		t.Error("Expected the ban state in the login response")
	}
}

// An expired ban is cleared at login and the correction is persisted, so the
// stored record no longer claims the user is banned.
func TestAuthHandler_Login_ExpiredBanIsCleared(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	reason := "spam"
	expired := models.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", DisplayName: "Alice",
		Password: "secret123", IsBanned: true, BanReason: &reason, BanEndDate: &past,
	}
	router, repo := setupAuthRouter(t, expired)

	w := postJSON(t, router, "/auth/login", gin.H{"username": "alice", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.User.IsBanned {
		t.Error("Expected the expired ban cleared in the response")
	}

	stored, _ := repo.GetByID("u1")
	if stored.IsBanned {
		t.Error("Expected the cleared ban persisted to the store")
	}
}

func TestAuthHandler_UpdatePassword(t *testing.T) {
	existing := models.User{ID: "u1", Username: "alice", Email: "alice@example.com", DisplayName: "Alice", Password: "old-pass"}
	router, repo := setupAuthRouter(t, existing)

	w := postJSON(t, router, "/auth/update-password", gin.H{
		"userId":          "u1",
		"currentPassword": "wrong",
		"newPassword":     "new-pass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for wrong current password, got %d", w.Code)
	}

	w = postJSON(t, router, "/auth/update-password", gin.H{
		"userId":          "u1",
		"currentPassword": "old-pass",
		"newPassword":     "new-pass",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	stored, _ := repo.GetByID("u1")
	if stored.Password != "new-pass" {
		t.Errorf("Expected new password persisted, got %q", stored.Password)
	}
}

func TestAuthHandler_DeleteAccount(t *testing.T) {
	existing := models.User{ID: "u1", Username: "alice", Email: "alice@example.com", DisplayName: "Alice"}
	router, repo := setupAuthRouter(t, existing)

	w := postJSON(t, router, "/auth/delete-account", gin.H{"userId": "u1"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if _, err := repo.GetByID("u1"); err == nil {
		t.Error("Expected account removed from the store")
	}

	w = postJSON(t, router, "/auth/delete-account", gin.H{"userId": "u1"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 on repeat delete, got %d", w.Code)
	}
}
