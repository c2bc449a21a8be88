// Package bookinglog is the append-only audit trail for booking
// mutations. Rows are written through the event bus, never updated, and
// only removed when the parent booking is deleted via cascade.
package bookinglog

import "time"

const (
	OperationCreate       = "CREATE"
	OperationUpdateStatus = "UPDATE_STATUS"
	OperationCancel       = "CANCEL"
)

type BookingLog struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	BookingID int64     `json:"booking_id" gorm:"column:booking_id;not null"`
	Operation string    `json:"operation" gorm:"not null"`
	CreatedBy int64     `json:"created_by" gorm:"column:created_by;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (BookingLog) TableName() string { return "booking_logs" }
