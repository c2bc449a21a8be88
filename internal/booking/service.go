package booking

import (
	"context"
	"log/slog"

	"github.com/horvathbencetibor/booking-system-be/internal"
	"github.com/horvathbencetibor/booking-system-be/internal/core/events"
)

type Repository interface {
	Create(b *Booking) error
	GetByID(id int64) (*Booking, error)
	GetAll() ([]*Booking, error)
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
	ByUser(userID int64) ([]*UserBooking, error)
	ByRoom(roomID int64) ([]*RoomBooking, error)
}

type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

// Service is the booking allocator. It never checks availability before
// inserting: the unique constraint on timeslot_id is the only arbiter, so
// two concurrent creates for one slot resolve atomically in the store.
type Service struct {
	repo   Repository
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo Repository, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// Create inserts a booking. A duplicate timeslot surfaces as
// SLOT_ALREADY_BOOKED, a dangling user or timeslot reference as a
// not-found kind. actorID is the authenticated principal, recorded in the
// audit trail; it need not equal dto.UserID.
func (s *Service) Create(ctx context.Context, dto CreateBookingDTO, actorID int64) (*Booking, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	status := dto.Status
	if status == "" {
		status = StatusBooked
	}

	b := &Booking{
		UserID:     dto.UserID,
		TimeslotID: dto.TimeslotID,
		Status:     status,
	}

	if err := s.repo.Create(b); err != nil {
		s.logger.Warn("booking create failed",
			"user_id", dto.UserID,
			"timeslot_id", dto.TimeslotID,
			"error", err)
		return nil, internal.ClassifyStorageError(err, internal.ErrBookingNotFound, internal.ErrSlotAlreadyBooked)
	}

	s.logger.Info("booking created",
		"booking_id", b.ID,
		"user_id", b.UserID,
		"timeslot_id", b.TimeslotID,
		"status", b.Status)

	// The booking row is committed at this point; a failed audit write is
	// still reported to the caller rather than dropped.
	if err := s.bus.PublishSync(ctx, events.NewBookingEvent(events.BookingCreated, b.ID, actorID, b.Status)); err != nil {
		s.logger.Error("audit record failed for booking create", "booking_id", b.ID, "error", err)
		return nil, internal.NewInternalError("failed to record booking audit entry", err)
	}

	return b, nil
}

func (s *Service) GetByID(id int64) (*Booking, error) {
	b, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrBookingNotFound, internal.ErrSlotAlreadyBooked)
	}
	return b, nil
}

func (s *Service) GetAll() ([]*Booking, error) {
	bookings, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrBookingNotFound, internal.ErrSlotAlreadyBooked)
	}
	return bookings, nil
}

// UpdateStatus overwrites the status unconditionally. Any transition is
// accepted, including completed back to booked; the source system behaves
// this way and tightening it is an open product decision.
func (s *Service) UpdateStatus(ctx context.Context, id int64, dto UpdateStatusDTO, actorID int64) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeInvalidStatus)
	}

	if err := s.repo.UpdateStatus(id, dto.Status); err != nil {
		return internal.ClassifyStorageError(err, internal.ErrBookingNotFound, internal.ErrSlotAlreadyBooked)
	}

	s.logger.Info("booking status updated", "booking_id", id, "status", dto.Status)

	if err := s.bus.PublishSync(ctx, events.NewBookingEvent(events.BookingStatusUpdated, id, actorID, dto.Status)); err != nil {
		s.logger.Error("audit record failed for status update", "booking_id", id, "error", err)
		return internal.NewInternalError("failed to record booking audit entry", err)
	}

	return nil
}

// Cancel marks the booking cancelled. The row stays, so the timeslot
// remains occupied; only Delete frees it.
func (s *Service) Cancel(ctx context.Context, id int64, actorID int64) error {
	if err := s.repo.UpdateStatus(id, StatusCancelled); err != nil {
		return internal.ClassifyStorageError(err, internal.ErrBookingNotFound, internal.ErrSlotAlreadyBooked)
	}

	s.logger.Info("booking cancelled", "booking_id", id)

	if err := s.bus.PublishSync(ctx, events.NewBookingEvent(events.BookingCancelled, id, actorID, StatusCancelled)); err != nil {
		s.logger.Error("audit record failed for cancel", "booking_id", id, "error", err)
		return internal.NewInternalError("failed to record booking audit entry", err)
	}

	return nil
}

// Delete physically removes the booking. Unlike Cancel this frees the
// uniqueness slot, so a later Create for the same timeslot succeeds. The
// booking's audit rows are removed by the database cascade, which is why
// no event is published here.
func (s *Service) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return internal.ClassifyStorageError(err, internal.ErrBookingNotFound, internal.ErrSlotAlreadyBooked)
	}

	s.logger.Info("booking deleted", "booking_id", id)
	return nil
}

func (s *Service) ByUser(userID int64) ([]*UserBooking, error) {
	bookings, err := s.repo.ByUser(userID)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrBookingNotFound, internal.ErrSlotAlreadyBooked)
	}
	return bookings, nil
}

func (s *Service) ByRoom(roomID int64) ([]*RoomBooking, error) {
	bookings, err := s.repo.ByRoom(roomID)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrBookingNotFound, internal.ErrSlotAlreadyBooked)
	}
	return bookings, nil
}
