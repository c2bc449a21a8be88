package room

import (
	"log/slog"

	"github.com/horvathbencetibor/booking-system-be/internal"
)

type Repository interface {
	Create(rm *Room) error
	GetByID(id int64) (*Room, error)
	GetAll() ([]*Room, error)
	Update(rm *Room) error
	Delete(id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(dto CreateRoomDTO) (*Room, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	rm := &Room{
		Name:     dto.Name,
		Capacity: dto.Capacity,
	}
	if err := s.repo.Create(rm); err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrRoomNotFound, nil)
	}

	s.logger.Info("room created", "room_id", rm.ID, "name", rm.Name)
	return rm, nil
}

func (s *Service) GetByID(id int64) (*Room, error) {
	rm, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrRoomNotFound, nil)
	}
	return rm, nil
}

func (s *Service) GetAll() ([]*Room, error) {
	rooms, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrRoomNotFound, nil)
	}
	return rooms, nil
}

func (s *Service) Update(id int64, dto UpdateRoomDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	rm, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ClassifyStorageError(err, internal.ErrRoomNotFound, nil)
	}

	if dto.Name != "" {
		rm.Name = dto.Name
	}
	if dto.Capacity > 0 {
		rm.Capacity = dto.Capacity
	}

	if err := s.repo.Update(rm); err != nil {
		return internal.ClassifyStorageError(err, internal.ErrRoomNotFound, nil)
	}
	return nil
}

// Delete physically removes the room; its timeslots (and their bookings)
// disappear through the cascade chain.
func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return internal.ClassifyStorageError(err, internal.ErrRoomNotFound, nil)
	}
	s.logger.Info("room deleted", "room_id", id)
	return nil
}
