package postgres

import (
	"gorm.io/gorm"

	"github.com/horvathbencetibor/booking-system-be/internal/bookinglog"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(entry *bookinglog.BookingLog) error {
	return r.db.Create(entry).Error
}

func (r *Repository) GetByID(id int64) (*bookinglog.BookingLog, error) {
	var entry bookinglog.BookingLog
	if err := r.db.First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) GetAll() ([]*bookinglog.BookingLog, error) {
	var entries []*bookinglog.BookingLog
	if err := r.db.Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Repository) ByBooking(bookingID int64) ([]*bookinglog.BookingLog, error) {
	var entries []*bookinglog.BookingLog
	if err := r.db.Where("booking_id = ?", bookingID).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
