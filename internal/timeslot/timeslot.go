package timeslot

import "time"

// Timeslot is a half-open [StartTime, EndTime) interval on one room,
// bookable at most once for its lifetime. Overlapping intervals within a
// room are not prevented.
type Timeslot struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	RoomID    int64     `json:"room_id" gorm:"column:room_id;not null"`
	StartTime time.Time `json:"start_time" gorm:"column:start_time;not null"`
	EndTime   time.Time `json:"end_time" gorm:"column:end_time;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Timeslot) TableName() string {
	return "timeslots"
}
