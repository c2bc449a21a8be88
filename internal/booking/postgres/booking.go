package postgres

import (
	"gorm.io/gorm"

	"github.com/horvathbencetibor/booking-system-be/internal/booking"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(b *booking.Booking) error {
	return r.db.Create(b).Error
}

func (r *Repository) GetByID(id int64) (*booking.Booking, error) {
	var b booking.Booking
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) GetAll() ([]*booking.Booking, error) {
	var bookings []*booking.Booking
	if err := r.db.Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *Repository) UpdateStatus(id int64, status string) error {
	res := r.db.Model(&booking.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(id int64) error {
	res := r.db.Delete(&booking.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) ByUser(userID int64) ([]*booking.UserBooking, error) {
	var bookings []*booking.UserBooking
	err := r.db.Model(&booking.Booking{}).
		Select("bookings.*, timeslots.start_time, timeslots.end_time, rooms.name AS room_name").
		Joins("JOIN timeslots ON timeslots.id = bookings.timeslot_id").
		Joins("JOIN rooms ON rooms.id = timeslots.room_id").
		Where("bookings.user_id = ?", userID).
		Order("timeslots.start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *Repository) ByRoom(roomID int64) ([]*booking.RoomBooking, error) {
	var bookings []*booking.RoomBooking
	err := r.db.Model(&booking.Booking{}).
		Select("bookings.*, timeslots.start_time, timeslots.end_time").
		Joins("JOIN timeslots ON timeslots.id = bookings.timeslot_id").
		Where("timeslots.room_id = ?", roomID).
		Order("timeslots.start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
