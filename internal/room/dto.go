package room

import "errors"

type CreateRoomDTO struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func (dto CreateRoomDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.Capacity <= 0 {
		return errors.New("capacity must be greater than 0")
	}
	return nil
}

type UpdateRoomDTO struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func (dto UpdateRoomDTO) Validate() error {
	if dto.Name == "" && dto.Capacity == 0 {
		return errors.New("nothing to update")
	}
	if dto.Capacity < 0 {
		return errors.New("capacity must be greater than 0")
	}
	return nil
}
