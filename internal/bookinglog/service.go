package bookinglog

import (
	"log/slog"

	"github.com/horvathbencetibor/booking-system-be/internal"
)

type Repository interface {
	Create(entry *BookingLog) error
	GetByID(id int64) (*BookingLog, error)
	GetAll() ([]*BookingLog, error)
	ByBooking(bookingID int64) ([]*BookingLog, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record appends one audit row. There is no update or delete path through
// the service.
func (s *Service) Record(bookingID int64, operation string, actorID int64) error {
	entry := &BookingLog{
		BookingID: bookingID,
		Operation: operation,
		CreatedBy: actorID,
	}
	if err := s.repo.Create(entry); err != nil {
		return internal.ClassifyStorageError(err, nil, nil)
	}

	s.logger.Info("booking audit recorded",
		"booking_id", bookingID,
		"operation", operation,
		"actor_id", actorID)
	return nil
}

func (s *Service) GetByID(id int64) (*BookingLog, error) {
	entry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, nil, nil)
	}
	return entry, nil
}

func (s *Service) GetAll() ([]*BookingLog, error) {
	entries, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.ClassifyStorageError(err, nil, nil)
	}
	return entries, nil
}

func (s *Service) ByBooking(bookingID int64) ([]*BookingLog, error) {
	entries, err := s.repo.ByBooking(bookingID)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, nil, nil)
	}
	return entries, nil
}
