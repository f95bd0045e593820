package moderation

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/labrinth/backend/internal/errors"
	"github.com/labrinth/backend/internal/models"
	"github.com/labrinth/backend/internal/repository"
	"github.com/labrinth/backend/internal/store"
)

func newTestService(t *testing.T, users ...models.User) (*Service, *repository.UserRepository) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	repo := repository.NewUserRepository(st)
	for i := range users {
		if err := repo.Create(&users[i]); err != nil {
			t.Fatalf("Failed to seed user %s: %v", users[i].Username, err)
		}
	}
	svc := NewService(repo)
	return svc, repo
}

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func moderatorRecord() models.User {
	return models.User{ID: "mod1", Username: "mod", Email: "mod@example.com", DisplayName: "ModOne", Role: models.RoleModerator}
}

func targetRecord() models.User {
	return models.User{ID: "target1", Username: "target", Email: "target@example.com", DisplayName: "Target", Role: models.RoleUser}
}

func adminRecord() models.User {
	return models.User{ID: "admin1", Username: "admin", Email: "admin@example.com", DisplayName: "Admin", Role: models.RoleAdmin}
}

func TestService_Ban_Temporary(t *testing.T) {
	svc, repo := newTestService(t, moderatorRecord(), targetRecord())
	svc.now = fixedClock

	user, err := svc.Ban("mod1", "target1", "harassment", 5)
	if err != nil {
		t.Fatalf("Ban failed: %v", err)
	}

	if !user.IsBanned {
		t.Error("Expected user to be banned")
	}
	if user.BanReason == nil || *user.BanReason != "harassment" {
		t.Errorf("Expected reason harassment, got %v", user.BanReason)
	}
	if user.BannedBy == nil || *user.BannedBy != "ModOne" {
		t.Errorf("Expected BannedBy ModOne, got %v", user.BannedBy)
	}
	wantEnd := testNow.Add(5 * 24 * time.Hour)
	if user.BanEndDate == nil || !user.BanEndDate.Equal(wantEnd) {
		t.Errorf("Expected ban end %v, got %v", wantEnd, user.BanEndDate)
	}

	// The transition must be persisted, not just returned.
	stored, err := repo.GetByID("target1")
	if err != nil {
		t.Fatalf("Failed to reload target: %v", err)
	}
	if !stored.IsBanned {
		t.Error("Expected stored record to be banned")
	}
}

func TestService_Ban_Permanent(t *testing.T) {
	svc, _ := newTestService(t, moderatorRecord(), targetRecord())
	svc.now = fixedClock

	user, err := svc.Ban("mod1", "target1", "", 0)
	if err != nil {
		t.Fatalf("Ban failed: %v", err)
	}

	if !user.IsBanned {
		t.Error("Expected user to be banned")
	}
	if user.BanEndDate != nil {
		t.Errorf("Expected permanent ban to carry no end date, got %v", user.BanEndDate)
	}
	if user.BanReason == nil || *user.BanReason != DefaultReason {
		t.Errorf("Expected default reason, got %v", user.BanReason)
	}
}

func TestService_Ban_AdminProtected(t *testing.T) {
	svc, repo := newTestService(t, moderatorRecord(), adminRecord())

	_, err := svc.Ban("mod1", "admin1", "power grab", 0)
	if !errors.Is(err, apperrors.ErrAdminProtected) {
		t.Fatalf("Expected ErrAdminProtected, got %v", err)
	}

	stored, _ := repo.GetByID("admin1")
	if stored.IsBanned {
		t.Error("Expected admin record to remain untouched")
	}
}

func TestService_Ban_PermissionDenied(t *testing.T) {
	regular := models.User{ID: "u1", Username: "alice", Email: "alice@example.com", DisplayName: "Alice", Role: models.RoleUser}
	svc, _ := newTestService(t, regular, targetRecord())

	_, err := svc.Ban("u1", "target1", "", 0)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("Expected ErrPermissionDenied, got %v", err)
	}
}

func TestService_Ban_LookupErrors(t *testing.T) {
	svc, _ := newTestService(t, moderatorRecord(), targetRecord())

	// An unknown moderator is reported before anything else.
	if _, err := svc.Ban("missing", "target1", "", 0); !errors.Is(err, apperrors.ErrModeratorNotFound) {
		t.Errorf("Expected ErrModeratorNotFound, got %v", err)
	}
	if _, err := svc.Ban("mod1", "missing", "", 0); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestService_Unban(t *testing.T) {
	svc, repo := newTestService(t, moderatorRecord(), targetRecord())
	svc.now = fixedClock

	if _, err := svc.Ban("mod1", "target1", "spam", 7); err != nil {
		t.Fatalf("Ban failed: %v", err)
	}

	user, err := svc.Unban("mod1", "target1")
	if err != nil {
		t.Fatalf("Unban failed: %v", err)
	}

	if user.IsBanned || user.BanReason != nil || user.BanDate != nil || user.BanEndDate != nil || user.BannedBy != nil {
		t.Errorf("Expected every ban field cleared, got %+v", user)
	}

	stored, _ := repo.GetByID("target1")
	if stored.IsBanned {
		t.Error("Expected stored record to be unbanned")
	}
}

func TestService_Mute(t *testing.T) {
	svc, _ := newTestService(t, moderatorRecord(), targetRecord())
	svc.now = fixedClock

	user, err := svc.Mute("mod1", "target1", "spam", 2)
	if err != nil {
		t.Fatalf("Mute failed: %v", err)
	}

	if !user.IsMuted {
		t.Error("Expected user to be muted")
	}
	if user.MuteReason == nil || *user.MuteReason != "spam" {
		t.Errorf("Expected reason spam, got %v", user.MuteReason)
	}
	if user.MutedBy == nil || *user.MutedBy != "ModOne" {
		t.Errorf("Expected MutedBy ModOne, got %v", user.MutedBy)
	}
	wantEnd := testNow.Add(2 * time.Hour)
	if user.MuteEndDate == nil || !user.MuteEndDate.Equal(wantEnd) {
		t.Errorf("Expected mute end %v, got %v", wantEnd, user.MuteEndDate)
	}
}

func TestService_Mute_RequiresDuration(t *testing.T) {
	svc, repo := newTestService(t, moderatorRecord(), targetRecord())

	for _, hours := range []int{0, -3} {
		if _, err := svc.Mute("mod1", "target1", "spam", hours); !errors.Is(err, apperrors.ErrMuteDurationRequired) {
			t.Errorf("Mute(%d): expected ErrMuteDurationRequired, got %v", hours, err)
		}
	}

	stored, _ := repo.GetByID("target1")
	if stored.IsMuted {
		t.Error("Expected rejected mute to leave the record unchanged")
	}
}

func TestService_Mute_AdminProtected(t *testing.T) {
	svc, _ := newTestService(t, moderatorRecord(), adminRecord())

	if _, err := svc.Mute("mod1", "admin1", "", 2); !errors.Is(err, apperrors.ErrAdminProtected) {
		t.Fatalf("Expected ErrAdminProtected, got %v", err)
	}
}

func TestService_Unmute(t *testing.T) {
	svc, _ := newTestService(t, moderatorRecord(), targetRecord())
	svc.now = fixedClock

	if _, err := svc.Mute("mod1", "target1", "spam", 2); err != nil {
		t.Fatalf("Mute failed: %v", err)
	}

	user, err := svc.Unmute("mod1", "target1")
	if err != nil {
		t.Fatalf("Unmute failed: %v", err)
	}
	if user.IsMuted || user.MuteReason != nil || user.MuteDate != nil || user.MuteEndDate != nil || user.MutedBy != nil {
		t.Errorf("Expected every mute field cleared, got %+v", user)
	}
}

// Ban and mute are independent: clearing one leaves the other in place.
func TestService_SanctionsAreIndependent(t *testing.T) {
	svc, _ := newTestService(t, moderatorRecord(), targetRecord())
	svc.now = fixedClock

	if _, err := svc.Ban("mod1", "target1", "", 0); err != nil {
		t.Fatalf("Ban failed: %v", err)
	}
	if _, err := svc.Mute("mod1", "target1", "", 2); err != nil {
		t.Fatalf("Mute failed: %v", err)
	}

	user, err := svc.Unban("mod1", "target1")
	if err != nil {
		t.Fatalf("Unban failed: %v", err)
	}
	if user.IsBanned {
		t.Error("Expected ban cleared")
	}
	if !user.IsMuted {
		t.Error("Expected mute to survive the unban")
	}
}

func TestResolveExpired(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)
	reason := "spam"

	tests := []struct {
		name        string
		user        models.User
		wantChanged bool
		wantBanned  bool
		wantMuted   bool
	}{
		{
			name:        "Clean user",
			user:        models.User{},
			wantChanged: false,
		},
		{
			name: "Expired ban clears",
			user: models.User{
				IsBanned: true, BanReason: &reason, BanEndDate: &past,
			},
			wantChanged: true,
			wantBanned:  false,
		},
		{
			name: "Active ban survives",
			user: models.User{
				IsBanned: true, BanEndDate: &future,
			},
			wantChanged: false,
			wantBanned:  true,
		},
		{
			name: "Permanent ban never expires",
			user: models.User{
				IsBanned: true, BanEndDate: nil,
			},
			wantChanged: false,
			wantBanned:  true,
		},
		{
			name: "Expired mute clears",
			user: models.User{
				IsMuted: true, MuteReason: &reason, MuteEndDate: &past,
			},
			wantChanged: true,
			wantMuted:   false,
		},
		{
			name: "Active mute survives",
			user: models.User{
				IsMuted: true, MuteEndDate: &future,
			},
			wantChanged: false,
			wantMuted:   true,
		},
		{
			name: "Both expired clear together",
			user: models.User{
				IsBanned: true, BanEndDate: &past,
				IsMuted: true, MuteEndDate: &past,
			},
			wantChanged: true,
			wantBanned:  false,
			wantMuted:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user
			changed := ResolveExpired(&u, testNow)
			if changed != tt.wantChanged {
				t.Errorf("ResolveExpired() = %v, want %v", changed, tt.wantChanged)
			}
			if u.IsBanned != tt.wantBanned {
				t.Errorf("IsBanned = %v, want %v", u.IsBanned, tt.wantBanned)
			}
			if u.IsMuted != tt.wantMuted {
				t.Errorf("IsMuted = %v, want %v", u.IsMuted, tt.wantMuted)
			}
			if changed && !u.IsBanned && u.BanReason != nil {
				t.Error("Expected ban fields cleared with the flag")
			}
		})
	}
}
