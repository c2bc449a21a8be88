package bookinglog

import (
	"context"
	"fmt"

	"github.com/horvathbencetibor/booking-system-be/internal/core/events"
)

// operationFor maps a booking event type to the audit operation name
// stored in the log row.
var operationFor = map[string]string{
	events.BookingCreated:       OperationCreate,
	events.BookingStatusUpdated: OperationUpdateStatus,
	events.BookingCancelled:     OperationCancel,
}

type EventHandler struct {
	service *Service
}

func NewEventHandler(service *Service) *EventHandler {
	return &EventHandler{service: service}
}

// RegisterHandlers subscribes the audit recorder to every booking
// mutation event. Publication is synchronous, so a failed write surfaces
// to the mutating request.
func (h *EventHandler) RegisterHandlers(bus *events.EventBus) {
	for eventType := range operationFor {
		bus.Subscribe(eventType, h.handleBookingEvent)
	}
}

func (h *EventHandler) handleBookingEvent(ctx context.Context, event events.Event) error {
	be, ok := event.(events.BookingEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload %T for %s", event, event.EventType())
	}

	operation, ok := operationFor[be.Type]
	if !ok {
		return fmt.Errorf("no audit operation for event type %s", be.Type)
	}

	return h.service.Record(be.BookingID, operation, be.ActorID)
}
