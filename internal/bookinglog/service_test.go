package bookinglog_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/horvathbencetibor/booking-system-be/internal/bookinglog"
	"github.com/horvathbencetibor/booking-system-be/internal/core/events"
)

func TestBookingLogService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "BookingLog Service Suite")
}

type mockRepository struct {
	entries   []*bookinglog.BookingLog
	nextID    int64
	failError error
}

func (m *mockRepository) Create(entry *bookinglog.BookingLog) error {
	if m.failError != nil {
		return m.failError
	}
	m.nextID++
	entry.ID = m.nextID
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockRepository) GetByID(id int64) (*bookinglog.BookingLog, error) {
	for _, entry := range m.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, errors.New("no rows")
}

func (m *mockRepository) GetAll() ([]*bookinglog.BookingLog, error) {
	return m.entries, nil
}

func (m *mockRepository) ByBooking(bookingID int64) ([]*bookinglog.BookingLog, error) {
	var out []*bookinglog.BookingLog
	for _, entry := range m.entries {
		if entry.BookingID == bookingID {
			out = append(out, entry)
		}
	}
	return out, nil
}

var _ = Describe("BookingLog", func() {
	var (
		repo    *mockRepository
		service *bookinglog.Service
		bus     *events.EventBus
		ctx     context.Context
	)

	BeforeEach(func() {
		repo = &mockRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = bookinglog.NewService(repo, logger)
		bus = events.NewEventBus(logger)
		bookinglog.NewEventHandler(service).RegisterHandlers(bus)
		ctx = context.Background()
	})

	Describe("event subscription", func() {
		It("should record a CREATE row for a creation event", func() {
			err := bus.PublishSync(ctx, events.NewBookingEvent(events.BookingCreated, 5, 2, "booked"))
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.entries).To(HaveLen(1))
			Expect(repo.entries[0].BookingID).To(Equal(int64(5)))
			Expect(repo.entries[0].Operation).To(Equal(bookinglog.OperationCreate))
			Expect(repo.entries[0].CreatedBy).To(Equal(int64(2)))
		})

		It("should record one row per mutation in order", func() {
			Expect(bus.PublishSync(ctx, events.NewBookingEvent(events.BookingCreated, 5, 2, "booked"))).To(Succeed())
			Expect(bus.PublishSync(ctx, events.NewBookingEvent(events.BookingStatusUpdated, 5, 2, "completed"))).To(Succeed())
			Expect(bus.PublishSync(ctx, events.NewBookingEvent(events.BookingCancelled, 5, 3, "cancelled"))).To(Succeed())

			ops := make([]string, len(repo.entries))
			for i, entry := range repo.entries {
				ops[i] = entry.Operation
			}
			Expect(ops).To(Equal([]string{
				bookinglog.OperationCreate,
				bookinglog.OperationUpdateStatus,
				bookinglog.OperationCancel,
			}))
		})

		It("should propagate a failed write back through PublishSync", func() {
			repo.failError = errors.New("disk full")
			err := bus.PublishSync(ctx, events.NewBookingEvent(events.BookingCreated, 5, 2, "booked"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ByBooking", func() {
		It("should filter the trail to one booking", func() {
			Expect(service.Record(5, bookinglog.OperationCreate, 1)).To(Succeed())
			Expect(service.Record(6, bookinglog.OperationCreate, 1)).To(Succeed())
			Expect(service.Record(5, bookinglog.OperationCancel, 1)).To(Succeed())

			entries, err := service.ByBooking(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
		})
	})
})
