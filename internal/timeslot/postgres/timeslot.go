package postgres

import (
	"github.com/horvathbencetibor/booking-system-be/internal/timeslot"
	"gorm.io/gorm"
)

type TimeslotRepository struct {
	db *gorm.DB
}

func NewTimeslotRepository(db *gorm.DB) timeslot.Repository {
	return &TimeslotRepository{db: db}
}

func (r *TimeslotRepository) Create(ts *timeslot.Timeslot) error {
	return r.db.Create(ts).Error
}

func (r *TimeslotRepository) GetByID(id int64) (*timeslot.Timeslot, error) {
	var ts timeslot.Timeslot
	if err := r.db.First(&ts, id).Error; err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *TimeslotRepository) GetAll() ([]*timeslot.Timeslot, error) {
	var slots []*timeslot.Timeslot
	if err := r.db.Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *TimeslotRepository) Update(ts *timeslot.Timeslot) error {
	return r.db.Save(ts).Error
}

func (r *TimeslotRepository) Delete(id int64) error {
	res := r.db.Delete(&timeslot.Timeslot{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TimeslotRepository) ByRoom(roomID int64) ([]*timeslot.Timeslot, error) {
	var slots []*timeslot.Timeslot
	err := r.db.Where("room_id = ?", roomID).
		Order("start_time ASC").
		Find(&slots).Error
	return slots, err
}

// AvailableByRoom anti-joins timeslots against bookings: a slot is
// available only when no booking row references it, whatever that row's
// status.
func (r *TimeslotRepository) AvailableByRoom(roomID int64) ([]*timeslot.Timeslot, error) {
	var slots []*timeslot.Timeslot
	err := r.db.
		Joins("LEFT JOIN bookings ON bookings.timeslot_id = timeslots.id").
		Where("timeslots.room_id = ? AND bookings.id IS NULL", roomID).
		Order("timeslots.start_time ASC").
		Find(&slots).Error
	return slots, err
}
