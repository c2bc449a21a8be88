package room

import "time"

// Room is an independently managed bookable space. Deleting a room cascades
// to its timeslots at the database level.
type Room struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Capacity  int       `json:"capacity" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Room) TableName() string {
	return "rooms"
}
