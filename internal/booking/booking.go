package booking

import "time"

// Booking statuses. Transitions between them are deliberately not
// validated; see the service.
const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking is a user's claim on a timeslot. The unique index on TimeslotID
// is the one and only enforcement of "at most one booking per timeslot":
// concurrent creates race on the constraint and the database picks the
// winner. A cancelled booking keeps its row and keeps the slot occupied;
// only a physical delete frees it.
type Booking struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"user_id" gorm:"column:user_id;not null"`
	TimeslotID int64     `json:"timeslot_id" gorm:"column:timeslot_id;uniqueIndex;not null"`
	Status     string    `json:"status" gorm:"not null;default:booked"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusBooked, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// UserBooking is the booking joined with its timeslot and room, served
// for a user's booking list.
type UserBooking struct {
	Booking
	StartTime time.Time `json:"start_time" gorm:"column:start_time"`
	EndTime   time.Time `json:"end_time" gorm:"column:end_time"`
	RoomName  string    `json:"room_name" gorm:"column:room_name"`
}

// RoomBooking is the booking joined with its timeslot, served for a
// room's booking list.
type RoomBooking struct {
	Booking
	StartTime time.Time `json:"start_time" gorm:"column:start_time"`
	EndTime   time.Time `json:"end_time" gorm:"column:end_time"`
}
