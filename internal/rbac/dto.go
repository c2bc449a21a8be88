package rbac

import "errors"

type CreatePermissionDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto CreatePermissionDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type UpdatePermissionDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto UpdatePermissionDTO) Validate() error {
	if dto.Name == "" && dto.Description == "" {
		return errors.New("nothing to update")
	}
	return nil
}

type CreateRoleDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto CreateRoleDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type UpdateRoleDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto UpdateRoleDTO) Validate() error {
	if dto.Name == "" && dto.Description == "" {
		return errors.New("nothing to update")
	}
	return nil
}

type GrantPermissionDTO struct {
	RoleID       int64 `json:"role_id"`
	PermissionID int64 `json:"permission_id"`
}

func (dto GrantPermissionDTO) Validate() error {
	if dto.RoleID <= 0 {
		return errors.New("role_id is required")
	}
	if dto.PermissionID <= 0 {
		return errors.New("permission_id is required")
	}
	return nil
}

type AssignRoleDTO struct {
	UserID int64 `json:"user_id"`
	RoleID int64 `json:"role_id"`
}

func (dto AssignRoleDTO) Validate() error {
	if dto.UserID <= 0 {
		return errors.New("user_id is required")
	}
	if dto.RoleID <= 0 {
		return errors.New("role_id is required")
	}
	return nil
}
