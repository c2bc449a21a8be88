package timeslot

import (
	"log/slog"

	"github.com/horvathbencetibor/booking-system-be/internal"
)

type Repository interface {
	Create(ts *Timeslot) error
	GetByID(id int64) (*Timeslot, error)
	GetAll() ([]*Timeslot, error)
	Update(ts *Timeslot) error
	Delete(id int64) error
	ByRoom(roomID int64) ([]*Timeslot, error)
	AvailableByRoom(roomID int64) ([]*Timeslot, error)
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

func (s *Service) Create(dto CreateTimeslotDTO) (*Timeslot, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidInterval)
	}

	ts := &Timeslot{
		RoomID:    dto.RoomID,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
	}
	if err := s.repo.Create(ts); err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrTimeslotNotFound, nil)
	}

	s.logger.Info("timeslot created", "timeslot_id", ts.ID, "room_id", ts.RoomID)
	return ts, nil
}

func (s *Service) GetByID(id int64) (*Timeslot, error) {
	ts, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrTimeslotNotFound, nil)
	}
	return ts, nil
}

func (s *Service) GetAll() ([]*Timeslot, error) {
	slots, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrTimeslotNotFound, nil)
	}
	return slots, nil
}

func (s *Service) Update(id int64, dto UpdateTimeslotDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeInvalidInterval)
	}

	ts, err := s.repo.GetByID(id)
	if err != nil {
		return internal.ClassifyStorageError(err, internal.ErrTimeslotNotFound, nil)
	}

	if dto.RoomID > 0 {
		ts.RoomID = dto.RoomID
	}
	if !dto.StartTime.IsZero() {
		ts.StartTime = dto.StartTime
	}
	if !dto.EndTime.IsZero() {
		ts.EndTime = dto.EndTime
	}

	// partial updates may leave an inverted interval even when each field
	// validated on its own
	if !ts.StartTime.Before(ts.EndTime) {
		return internal.NewValidationError("start_time must be before end_time", internal.ErrCodeInvalidInterval)
	}

	if err := s.repo.Update(ts); err != nil {
		return internal.ClassifyStorageError(err, internal.ErrTimeslotNotFound, nil)
	}
	return nil
}

func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return internal.ClassifyStorageError(err, internal.ErrTimeslotNotFound, nil)
	}
	s.logger.Info("timeslot deleted", "timeslot_id", id)
	return nil
}

// ByRoom lists a room's timeslots ordered by start time.
func (s *Service) ByRoom(roomID int64) ([]*Timeslot, error) {
	slots, err := s.repo.ByRoom(roomID)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrTimeslotNotFound, nil)
	}
	return slots, nil
}

// AvailableByRoom lists the room's timeslots that have no booking row at
// all. A cancelled booking still occupies its slot, so the slot is not
// reported here.
func (s *Service) AvailableByRoom(roomID int64) ([]*Timeslot, error) {
	slots, err := s.repo.AvailableByRoom(roomID)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrTimeslotNotFound, nil)
	}
	return slots, nil
}
