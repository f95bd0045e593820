// Package moderation implements the ban/mute state machine. Ban and mute are
// independent flags on the user record: a user can be both at once, and
// clearing one never touches the other.
package moderation

import (
	"time"

	apperrors "github.com/labrinth/backend/internal/errors"
	"github.com/labrinth/backend/internal/models"
	"github.com/labrinth/backend/internal/permissions"
	"github.com/labrinth/backend/internal/repository"
)

// DefaultReason is recorded when a ban or mute is issued without one.
const DefaultReason = "Violation of forum rules"

type Service struct {
	users *repository.UserRepository
	// now is swappable for tests.
	now func() time.Time
}

func NewService(users *repository.UserRepository) *Service {
	return &Service{users: users, now: time.Now}
}

// Ban transitions the target user to Banned. durationDays <= 0 means a
// permanent ban (no end date); otherwise the ban expires durationDays from
// now. The acting moderator must exist and hold ban rights, and the target
// must exist and must not be an admin. The full user record is rewritten with
// the moderator's display name recorded for audit.
func (s *Service) Ban(moderatorID, targetID, reason string, durationDays int) (*models.User, error) {
	moderator, target, err := s.lookup(moderatorID, targetID)
	if err != nil {
		return nil, err
	}
	if !permissions.CanBanUser(moderator) {
		return nil, apperrors.ErrPermissionDenied
	}
	if target.Role == models.RoleAdmin {
		return nil, apperrors.ErrAdminProtected
	}

	now := s.now()
	if reason == "" {
		reason = DefaultReason
	}

	target.IsBanned = true
	target.BanReason = &reason
	target.BanDate = &now
	target.BannedBy = &moderator.DisplayName
	if durationDays > 0 {
		end := now.Add(time.Duration(durationDays) * 24 * time.Hour)
		target.BanEndDate = &end
	} else {
		target.BanEndDate = nil
	}

	if err := s.users.Save(target); err != nil {
		return nil, err
	}
	return target, nil
}

// Unban transitions the target back to Active, clearing every ban field.
// No duration check: an explicit unban always lifts the ban.
func (s *Service) Unban(moderatorID, targetID string) (*models.User, error) {
	moderator, target, err := s.lookup(moderatorID, targetID)
	if err != nil {
		return nil, err
	}
	if !permissions.CanBanUser(moderator) {
		return nil, apperrors.ErrPermissionDenied
	}

	clearBan(target)
	if err := s.users.Save(target); err != nil {
		return nil, err
	}
	return target, nil
}

// Mute transitions the target to Muted. Unlike a ban, a mute can never be
// permanent: durationHours must be positive or the action fails validation
// before anything is looked at beyond the actor and target.
func (s *Service) Mute(moderatorID, targetID, reason string, durationHours int) (*models.User, error) {
	moderator, target, err := s.lookup(moderatorID, targetID)
	if err != nil {
		return nil, err
	}
	if !permissions.CanMuteUser(moderator) {
		return nil, apperrors.ErrPermissionDenied
	}
	if target.Role == models.RoleAdmin {
		return nil, apperrors.ErrAdminProtected
	}
	if durationHours <= 0 {
		return nil, apperrors.ErrMuteDurationRequired
	}

	now := s.now()
	if reason == "" {
		reason = DefaultReason
	}
	end := now.Add(time.Duration(durationHours) * time.Hour)

	target.IsMuted = true
	target.MuteReason = &reason
	target.MuteDate = &now
	target.MuteEndDate = &end
	target.MutedBy = &moderator.DisplayName

	if err := s.users.Save(target); err != nil {
		return nil, err
	}
	return target, nil
}

// Unmute transitions the target back to Active, clearing every mute field.
func (s *Service) Unmute(moderatorID, targetID string) (*models.User, error) {
	moderator, target, err := s.lookup(moderatorID, targetID)
	if err != nil {
		return nil, err
	}
	if !permissions.CanMuteUser(moderator) {
		return nil, apperrors.ErrPermissionDenied
	}

	clearMute(target)
	if err := s.users.Save(target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *Service) lookup(moderatorID, targetID string) (*models.User, *models.User, error) {
	moderator, err := s.users.GetByID(moderatorID)
	if err != nil {
		return nil, nil, apperrors.ErrModeratorNotFound
	}
	target, err := s.users.GetByID(targetID)
	if err != nil {
		return nil, nil, apperrors.ErrUserNotFound
	}
	return moderator, target, nil
}

// ResolveExpired clears an expired ban and/or mute on the in-memory record
// and reports whether anything changed. A permanent ban (nil end date) never
// expires. Callers decide whether to persist the corrected record; the login
// path does, so a lifted ban does not depend on what the client has cached.
func ResolveExpired(u *models.User, now time.Time) bool {
	changed := false
	if u.IsBanned && u.BanEndDate != nil && now.After(*u.BanEndDate) {
		clearBan(u)
		changed = true
	}
	if u.IsMuted && u.MuteEndDate != nil && now.After(*u.MuteEndDate) {
		clearMute(u)
		changed = true
	}
	return changed
}

func clearBan(u *models.User) {
	u.IsBanned = false
	u.BanReason = nil
	u.BanDate = nil
	u.BanEndDate = nil
	u.BannedBy = nil
}

func clearMute(u *models.User) {
	u.IsMuted = false
	u.MuteReason = nil
	u.MuteDate = nil
	u.MuteEndDate = nil
	u.MutedBy = nil
}
