package postgres

import (
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/horvathbencetibor/booking-system-be/internal/booking"
)

func TestBookingRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "BookingRepository Suite")
}

const testSchema = `
CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE rooms (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    capacity INTEGER NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE timeslots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    room_id INTEGER NOT NULL REFERENCES rooms (id) ON DELETE CASCADE,
    start_time DATETIME NOT NULL,
    end_time DATETIME NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    CHECK (start_time < end_time)
);
CREATE TABLE bookings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    timeslot_id INTEGER NOT NULL UNIQUE REFERENCES timeslots (id) ON DELETE CASCADE,
    status TEXT NOT NULL DEFAULT 'booked',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE booking_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    booking_id INTEGER NOT NULL REFERENCES bookings (id) ON DELETE CASCADE,
    operation TEXT NOT NULL,
    created_by INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// openTestDB builds an in-memory database with the production constraints:
// foreign keys on, a unique index on bookings.timeslot_id, cascading
// deletes. A single connection keeps SQLite serializable under the
// concurrency specs.
func openTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=1"), &gorm.Config{
		TranslateError: true,
	})
	Expect(err).NotTo(HaveOccurred())

	sqlDB, err := db.DB()
	Expect(err).NotTo(HaveOccurred())
	sqlDB.SetMaxOpenConns(1)

	Expect(db.Exec("PRAGMA foreign_keys = ON").Error).NotTo(HaveOccurred())
	Expect(db.Exec(testSchema).Error).NotTo(HaveOccurred())
	return db
}

var _ = Describe("BookingRepository", func() {
	var (
		db   *gorm.DB
		repo *Repository

		userID int64
		slotA  int64
		slotB  int64
	)

	seedFixtures := func() {
		Expect(db.Exec(
			"INSERT INTO users (name, email, password_hash) VALUES ('User', 'user@example.com', 'x')").Error,
		).NotTo(HaveOccurred())
		Expect(db.Raw("SELECT id FROM users WHERE email = 'user@example.com'").Scan(&userID).Error).NotTo(HaveOccurred())

		Expect(db.Exec("INSERT INTO rooms (name, capacity) VALUES ('Konferencia terem A', 10)").Error).NotTo(HaveOccurred())
		var roomID int64
		Expect(db.Raw("SELECT id FROM rooms LIMIT 1").Scan(&roomID).Error).NotTo(HaveOccurred())

		base := time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC)
		Expect(db.Exec(
			"INSERT INTO timeslots (room_id, start_time, end_time) VALUES (?, ?, ?)",
			roomID, base, base.Add(time.Hour)).Error).NotTo(HaveOccurred())
		Expect(db.Exec(
			"INSERT INTO timeslots (room_id, start_time, end_time) VALUES (?, ?, ?)",
			roomID, base.Add(time.Hour), base.Add(2*time.Hour)).Error).NotTo(HaveOccurred())

		var ids []int64
		Expect(db.Raw("SELECT id FROM timeslots ORDER BY start_time").Scan(&ids).Error).NotTo(HaveOccurred())
		Expect(ids).To(HaveLen(2))
		slotA, slotB = ids[0], ids[1]
	}

	BeforeEach(func() {
		db = openTestDB()
		repo = NewRepository(db)
		seedFixtures()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("should create a booking for a free timeslot", func() {
			b := &booking.Booking{UserID: userID, TimeslotID: slotA, Status: booking.StatusBooked}
			Expect(repo.Create(b)).To(Succeed())
			Expect(b.ID).To(BeNumerically(">", 0))
		})

		It("should reject a second booking for the same timeslot", func() {
			first := &booking.Booking{UserID: userID, TimeslotID: slotA, Status: booking.StatusBooked}
			Expect(repo.Create(first)).To(Succeed())

			second := &booking.Booking{UserID: userID, TimeslotID: slotA, Status: booking.StatusBooked}
			err := repo.Create(second)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, gorm.ErrDuplicatedKey)).To(BeTrue())
		})

		It("should still reject the timeslot after the booking is cancelled", func() {
			first := &booking.Booking{UserID: userID, TimeslotID: slotA, Status: booking.StatusBooked}
			Expect(repo.Create(first)).To(Succeed())
			Expect(repo.UpdateStatus(first.ID, booking.StatusCancelled)).To(Succeed())

			second := &booking.Booking{UserID: userID, TimeslotID: slotA, Status: booking.StatusBooked}
			err := repo.Create(second)
			Expect(errors.Is(err, gorm.ErrDuplicatedKey)).To(BeTrue())
		})

		It("should free the timeslot after the booking is deleted", func() {
			first := &booking.Booking{UserID: userID, TimeslotID: slotA, Status: booking.StatusBooked}
			Expect(repo.Create(first)).To(Succeed())
			Expect(repo.Delete(first.ID)).To(Succeed())

			second := &booking.Booking{UserID: userID, TimeslotID: slotA, Status: booking.StatusBooked}
			Expect(repo.Create(second)).To(Succeed())
		})

		It("should reject a dangling timeslot reference", func() {
			b := &booking.Booking{UserID: userID, TimeslotID: 99999, Status: booking.StatusBooked}
			err := repo.Create(b)
			Expect(err).To(HaveOccurred())
		})

		It("should let exactly one of many concurrent creates win", func() {
			const writers = 10

			var wg sync.WaitGroup
			results := make(chan error, writers)

			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					b := &booking.Booking{UserID: userID, TimeslotID: slotB, Status: booking.StatusBooked}
					results <- repo.Create(b)
				}()
			}
			wg.Wait()
			close(results)

			winners := 0
			for err := range results {
				if err == nil {
					winners++
				} else {
					Expect(errors.Is(err, gorm.ErrDuplicatedKey)).To(BeTrue())
				}
			}
			Expect(winners).To(Equal(1))

			var count int64
			Expect(db.Raw("SELECT COUNT(*) FROM bookings WHERE timeslot_id = ?", slotB).Scan(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("GetByID", func() {
		It("should return a stored booking", func() {
			b := &booking.Booking{UserID: userID, TimeslotID: slotA, Status: booking.StatusBooked}
			Expect(repo.Create(b)).To(Succeed())

			got, err := repo.GetByID(b.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.TimeslotID).To(Equal(slotA))
			Expect(got.Status).To(Equal(booking.StatusBooked))
		})

		It("should return ErrRecordNotFound for an unknown ID", func() {
			_, err := repo.GetByID(99999)
			Expect(errors.Is(err, gorm.ErrRecordNotFound)).To(BeTrue())
		})
	})

	Describe("UpdateStatus", func() {
		It("should overwrite the status", func() {
			b := &booking.Booking{UserID: userID, TimeslotID: slotA, Status: booking.StatusBooked}
			Expect(repo.Create(b)).To(Succeed())

			Expect(repo.UpdateStatus(b.ID, booking.StatusCompleted)).To(Succeed())

			got, err := repo.GetByID(b.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(booking.StatusCompleted))
		})

		It("should return ErrRecordNotFound for an unknown ID", func() {
			err := repo.UpdateStatus(99999, booking.StatusCancelled)
			Expect(errors.Is(err, gorm.ErrRecordNotFound)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("should cascade away the booking's audit rows", func() {
			b := &booking.Booking{UserID: userID, TimeslotID: slotA, Status: booking.StatusBooked}
			Expect(repo.Create(b)).To(Succeed())
			Expect(db.Exec(
				"INSERT INTO booking_logs (booking_id, operation, created_by) VALUES (?, 'CREATE', ?)",
				b.ID, userID).Error).NotTo(HaveOccurred())

			Expect(repo.Delete(b.ID)).To(Succeed())

			var count int64
			Expect(db.Raw("SELECT COUNT(*) FROM booking_logs WHERE booking_id = ?", b.ID).Scan(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})

		It("should return ErrRecordNotFound for an unknown ID", func() {
			err := repo.Delete(99999)
			Expect(errors.Is(err, gorm.ErrRecordNotFound)).To(BeTrue())
		})
	})

	Describe("ByUser", func() {
		It("should join in the timeslot interval and room name", func() {
			b := &booking.Booking{UserID: userID, TimeslotID: slotA, Status: booking.StatusBooked}
			Expect(repo.Create(b)).To(Succeed())

			got, err := repo.ByUser(userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].RoomName).To(Equal("Konferencia terem A"))
			Expect(got[0].EndTime.Sub(got[0].StartTime)).To(Equal(time.Hour))
		})

		It("should return an empty list for a user with no bookings", func() {
			got, err := repo.ByUser(99999)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeEmpty())
		})
	})
})
