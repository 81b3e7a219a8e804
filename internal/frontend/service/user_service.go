package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"libraryhub/internal/frontend/dto"
	"libraryhub/internal/liberr"
	"libraryhub/internal/models"
)

type UserService interface {
	Enroll(ctx context.Context, req dto.EnrollUserRequest) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

type userService struct {
	users UserRepository
}

func NewUserService(users UserRepository) UserService {
	return &userService{users: users}
}

// Enroll registers a new user. The pre-check gives a clean error for the
// common duplicate case; the unique index on email is what actually
// guarantees uniqueness under concurrent enrollment, so a duplicate-key
// violation from the insert is translated to the same 400.
func (s *userService) Enroll(ctx context.Context, req dto.EnrollUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Firstname) == "" ||
		strings.TrimSpace(req.Lastname) == "" {
		return nil, liberr.NewValidation("Missing required fields")
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, liberr.Normalize(err)
	}
	if existing != nil {
		return nil, liberr.NewValidation("Email already registered")
	}

	user := &models.User{
		Email:     req.Email,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, liberr.NewValidation("Email already registered")
		}
		return nil, liberr.Normalize(err)
	}
	return user, nil
}

func (s *userService) ListAll(ctx context.Context) ([]models.User, error) {
	return s.users.ListAll(ctx)
}
