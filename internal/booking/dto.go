package booking

import "errors"

// CreateBookingDTO is the booking creation payload. Status defaults to
// "booked" when omitted.
type CreateBookingDTO struct {
	UserID     int64  `json:"user_id"`
	TimeslotID int64  `json:"timeslot_id"`
	Status     string `json:"status,omitempty"`
}

func (dto CreateBookingDTO) Validate() error {
	if dto.UserID <= 0 {
		return errors.New("user_id is required")
	}
	if dto.TimeslotID <= 0 {
		return errors.New("timeslot_id is required")
	}
	if dto.Status != "" && !ValidStatus(dto.Status) {
		return errors.New("status must be one of booked, cancelled, completed")
	}
	return nil
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (dto UpdateStatusDTO) Validate() error {
	if dto.Status == "" {
		return errors.New("status is required")
	}
	if !ValidStatus(dto.Status) {
		return errors.New("status must be one of booked, cancelled, completed")
	}
	return nil
}
