package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingCreated       = "booking.created"
	BookingStatusUpdated = "booking.status_updated"
	BookingCancelled     = "booking.cancelled"
)

// BookingEvent describes a mutation performed against a booking. ActorID is
// the authenticated principal that performed the operation, which is not
// necessarily the booking owner.
type BookingEvent struct {
	ID        string
	Type      string
	BookingID int64
	ActorID   int64
	Status    string
	Timestamp time.Time
}

func NewBookingEvent(eventType string, bookingID, actorID int64, status string) BookingEvent {
	return BookingEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		BookingID: bookingID,
		ActorID:   actorID,
		Status:    status,
		Timestamp: time.Now(),
	}
}

func (e BookingEvent) EventType() string     { return e.Type }
func (e BookingEvent) EventID() string       { return e.ID }
func (e BookingEvent) OccurredAt() time.Time { return e.Timestamp }
