package user

import (
	"log/slog"

	"github.com/horvathbencetibor/booking-system-be/internal"
	"github.com/horvathbencetibor/booking-system-be/internal/auth"
)

type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetAll() ([]*User, error)
	Update(u *User) error
	Delete(id int64) error
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a user with a bcrypt-hashed secret. Email uniqueness is
// enforced by the database constraint, not by a prior lookup.
func (s *Service) Register(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(u); err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrUserNotFound, internal.ErrEmailExists)
	}

	s.logger.Info("user registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrUserNotFound, internal.ErrEmailExists)
	}
	return u, nil
}

func (s *Service) GetAll() ([]*User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrUserNotFound, internal.ErrEmailExists)
	}
	return users, nil
}

// Update changes profile fields; a supplied password is re-hashed,
// otherwise the stored hash is untouched.
func (s *Service) Update(id int64, dto UpdateUserDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ClassifyStorageError(err, internal.ErrUserNotFound, internal.ErrEmailExists)
	}

	if dto.Name != "" {
		u.Name = dto.Name
	}
	if dto.Email != "" {
		u.Email = dto.Email
	}
	if dto.Password != "" {
		hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
		if err != nil {
			return internal.NewInternalError("failed to hash password", err)
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(u); err != nil {
		return internal.ClassifyStorageError(err, internal.ErrUserNotFound, internal.ErrEmailExists)
	}

	s.logger.Info("user updated", "user_id", id, "password_rotated", dto.Password != "")
	return nil
}

// Delete removes the user row; bookings and role assignments go with it via
// the database cascades.
func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return internal.ClassifyStorageError(err, internal.ErrUserNotFound, internal.ErrEmailExists)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
