package postgres

import (
	"github.com/horvathbencetibor/booking-system-be/internal/room"
	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) room.Repository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(rm *room.Room) error {
	return r.db.Create(rm).Error
}

func (r *RoomRepository) GetByID(id int64) (*room.Room, error) {
	var rm room.Room
	if err := r.db.First(&rm, id).Error; err != nil {
		return nil, err
	}
	return &rm, nil
}

func (r *RoomRepository) GetAll() ([]*room.Room, error) {
	var rooms []*room.Room
	if err := r.db.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) Update(rm *room.Room) error {
	return r.db.Save(rm).Error
}

func (r *RoomRepository) Delete(id int64) error {
	res := r.db.Delete(&room.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
