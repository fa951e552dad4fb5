package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"stays-backend/internal/models"
	"stays-backend/internal/password"
	"stays-backend/internal/validation"
)

// AccountPatch holds profile changes. Empty fields are left unchanged.
type AccountPatch struct {
	Name     string
	Email    string
	Password string
}

type AccountService struct {
	users UserRepository
	now   func() time.Time
}

func NewAccountService(users UserRepository) *AccountService {
	return &AccountService{users: users, now: time.Now}
}

func (s *AccountService) Get(ctx context.Context, id string) (models.User, error) {
	user, err := s.users.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.User{}, mapMissing(err, "User", id)
	}
	return user, nil
}

func (s *AccountService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Update changes the supplied fields of account id. A new password must score strong.
func (s *AccountService) Update(ctx context.Context, actor Actor, id string, patch AccountPatch) (models.User, error) {
	id = strings.TrimSpace(id)
	if !actor.CanManage(id) {
		return models.User{}, ErrForbidden
	}

	name := strings.TrimSpace(patch.Name)
	email := strings.TrimSpace(patch.Email)
	if name == "" && email == "" && strings.TrimSpace(patch.Password) == "" {
		return models.User{}, invalid("account", "No fields to update. Please provide at least one field to change.")
	}
	if email != "" && !validation.IsEmail(email) {
		return models.User{}, invalid("email", "Invalid email format")
	}
	var hash string
	if strings.TrimSpace(patch.Password) != "" {
		check := password.Check(patch.Password)
		if !check.IsValid {
			return models.User{}, invalid("password", check.Message)
		}
		var err error
		if hash, err = password.Hash(patch.Password); err != nil {
			return models.User{}, err
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, mapMissing(err, "Account", id)
	}
	if email != "" && !strings.EqualFold(email, user.Email) {
		if err := s.ensureEmailFree(ctx, email); err != nil {
			return models.User{}, err
		}
		user.Email = strings.ToLower(email)
	}
	if name != "" {
		user.Name = name
	}
	if hash != "" {
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.now()

	if err := s.users.Update(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, emailTaken()
		}
		return models.User{}, mapMissing(err, "Account", id)
	}
	return user, nil
}

// Delete removes the account. Bookings and favorites made by it remain.
func (s *AccountService) Delete(ctx context.Context, actor Actor, id string) (models.User, error) {
	id = strings.TrimSpace(id)
	if !actor.CanManage(id) {
		return models.User{}, ErrForbidden
	}
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return models.User{}, mapMissing(err, "Account", id)
	}
	return deleted, nil
}

func (s *AccountService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	switch {
	case err == nil:
		return emailTaken()
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil
	default:
		return err
	}
}

func emailTaken() *ConflictError {
	return &ConflictError{Message: "An account with this email already exists"}
}
