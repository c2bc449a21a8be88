package user

import "errors"

// CreateUserDTO is the registration payload.
type CreateUserDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto CreateUserDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if dto.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// UpdateUserDTO updates profile fields; a non-empty Password rotates the
// stored secret.
type UpdateUserDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Name == "" && dto.Email == "" && dto.Password == "" {
		return errors.New("nothing to update")
	}
	return nil
}
