package repository

import (
	"fmt"

	apperrors "github.com/labrinth/backend/internal/errors"
	"github.com/labrinth/backend/internal/models"
	"github.com/labrinth/backend/internal/store"
)

type UserRepository struct {
	store *store.Store
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// Create appends a new user, refusing duplicate usernames and emails.
func (r *UserRepository) Create(user *models.User) error {
	return r.store.Update(func(tx *store.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		for i := range users {
			if users[i].Username == user.Username {
				return apperrors.ErrUsernameTaken
			}
			if users[i].Email == user.Email {
				return apperrors.ErrEmailTaken
			}
		}
		tx.SaveUsers(append(users, *user))
		return nil
	})
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	users, err := r.store.Users()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	users, err := r.store.Users()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for i := range users {
		if users[i].Username == username {
			u := users[i]
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// List returns every user record.
func (r *UserRepository) List() ([]models.User, error) {
	users, err := r.store.Users()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

// Save rewrites the stored record matching user.ID with the given value.
// Every moderation transition funnels through here so the full record,
// audit fields included, is persisted in one write.
func (r *UserRepository) Save(user *models.User) error {
	return r.store.Update(func(tx *store.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		for i := range users {
			if users[i].ID == user.ID {
				users[i] = *user
				tx.SaveUsers(users)
				return nil
			}
		}
		return apperrors.ErrUserNotFound
	})
}

// UpdatePassword sets a new password for the user.
func (r *UserRepository) UpdatePassword(id, newPassword string) error {
	return r.store.Update(func(tx *store.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		for i := range users {
			if users[i].ID == id {
				users[i].Password = newPassword
				tx.SaveUsers(users)
				return nil
			}
		}
		return apperrors.ErrUserNotFound
	})
}

// Delete removes the user record.
func (r *UserRepository) Delete(id string) error {
	return r.store.Update(func(tx *store.Tx) error {
		users, err := tx.Users()
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		for i := range users {
			if users[i].ID == id {
				tx.SaveUsers(append(users[:i], users[i+1:]...))
				return nil
			}
		}
		return apperrors.ErrUserNotFound
	})
}
