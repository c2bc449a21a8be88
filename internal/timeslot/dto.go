package timeslot

import (
	"errors"
	"time"
)

type CreateTimeslotDTO struct {
	RoomID    int64     `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func (dto CreateTimeslotDTO) Validate() error {
	if dto.RoomID <= 0 {
		return errors.New("room_id is required")
	}
	if dto.StartTime.IsZero() {
		return errors.New("start_time is required")
	}
	if dto.EndTime.IsZero() {
		return errors.New("end_time is required")
	}
	if !dto.StartTime.Before(dto.EndTime) {
		return errors.New("start_time must be before end_time")
	}
	return nil
}

type UpdateTimeslotDTO struct {
	RoomID    int64     `json:"room_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func (dto UpdateTimeslotDTO) Validate() error {
	if dto.RoomID <= 0 && dto.StartTime.IsZero() && dto.EndTime.IsZero() {
		return errors.New("nothing to update")
	}
	if !dto.StartTime.IsZero() && !dto.EndTime.IsZero() && !dto.StartTime.Before(dto.EndTime) {
		return errors.New("start_time must be before end_time")
	}
	return nil
}
