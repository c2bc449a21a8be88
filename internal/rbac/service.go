package rbac

import (
	"log/slog"
	"sort"

	"github.com/horvathbencetibor/booking-system-be/internal"
)

type Repository interface {
	CreatePermission(p *Permission) error
	GetPermissionByID(id int64) (*Permission, error)
	GetAllPermissions() ([]*Permission, error)
	UpdatePermission(p *Permission) error
	DeletePermission(id int64) error

	CreateRole(role *Role) error
	GetRoleByID(id int64) (*Role, error)
	GetAllRoles() ([]*Role, error)
	UpdateRole(role *Role) error
	DeleteRole(id int64) error

	CreateGrant(g *RolePermission) error
	GetGrantByID(id int64) (*RolePermission, error)
	GetAllGrants() ([]*RolePermission, error)
	UpdateGrant(g *RolePermission) error
	DeleteGrant(id int64) error
	PermissionsForRole(roleID int64) ([]*Permission, error)

	CreateAssignment(a *UserRole) error
	GetAssignmentByID(id int64) (*UserRole, error)
	GetAllAssignments() ([]*UserRole, error)
	UpdateAssignment(a *UserRole) error
	DeleteAssignment(id int64) error
	RolesForUser(userID int64) ([]*Role, error)
	PermissionNamesForUser(userID int64) ([]string, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreatePermission(dto CreatePermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	p := &Permission{Name: dto.Name, Description: dto.Description}
	if err := s.repo.CreatePermission(p); err != nil {
		return nil, internal.ClassifyStorageError(err, nil, nil)
	}

	s.logger.Info("permission created", "permission_id", p.ID, "name", p.Name)
	return p, nil
}

func (s *Service) GetPermissionByID(id int64) (*Permission, error) {
	p, err := s.repo.GetPermissionByID(id)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, nil, nil)
	}
	return p, nil
}

func (s *Service) GetAllPermissions() ([]*Permission, error) {
	permissions, err := s.repo.GetAllPermissions()
	if err != nil {
		return nil, internal.ClassifyStorageError(err, nil, nil)
	}
	return permissions, nil
}

func (s *Service) UpdatePermission(id int64, dto UpdatePermissionDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	p, err := s.repo.GetPermissionByID(id)
	if err != nil {
		return internal.ClassifyStorageError(err, nil, nil)
	}

	if dto.Name != "" {
		p.Name = dto.Name
	}
	if dto.Description != "" {
		p.Description = dto.Description
	}

	if err := s.repo.UpdatePermission(p); err != nil {
		return internal.ClassifyStorageError(err, nil, nil)
	}
	s.logger.Info("permission updated", "permission_id", id)
	return nil
}

// DeletePermission removes the permission and, via cascade, every grant
// that referenced it.
func (s *Service) DeletePermission(id int64) error {
	if err := s.repo.DeletePermission(id); err != nil {
		return internal.ClassifyStorageError(err, nil, nil)
	}
	s.logger.Info("permission deleted", "permission_id", id)
	return nil
}

func (s *Service) CreateRole(dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	role := &Role{Name: dto.Name, Description: dto.Description}
	if err := s.repo.CreateRole(role); err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrRoleNotFound, nil)
	}

	s.logger.Info("role created", "role_id", role.ID, "name", role.Name)
	return role, nil
}

func (s *Service) GetRoleByID(id int64) (*Role, error) {
	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrRoleNotFound, nil)
	}
	return role, nil
}

func (s *Service) GetAllRoles() ([]*Role, error) {
	roles, err := s.repo.GetAllRoles()
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrRoleNotFound, nil)
	}
	return roles, nil
}

func (s *Service) UpdateRole(id int64, dto UpdateRoleDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		return internal.ClassifyStorageError(err, internal.ErrRoleNotFound, nil)
	}

	if dto.Name != "" {
		role.Name = dto.Name
	}
	if dto.Description != "" {
		role.Description = dto.Description
	}

	if err := s.repo.UpdateRole(role); err != nil {
		return internal.ClassifyStorageError(err, internal.ErrRoleNotFound, nil)
	}
	s.logger.Info("role updated", "role_id", id)
	return nil
}

func (s *Service) DeleteRole(id int64) error {
	if err := s.repo.DeleteRole(id); err != nil {
		return internal.ClassifyStorageError(err, internal.ErrRoleNotFound, nil)
	}
	s.logger.Info("role deleted", "role_id", id)
	return nil
}

func (s *Service) Grant(dto GrantPermissionDTO) (*RolePermission, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	g := &RolePermission{RoleID: dto.RoleID, PermissionID: dto.PermissionID}
	if err := s.repo.CreateGrant(g); err != nil {
		return nil, internal.ClassifyStorageError(err, nil, nil)
	}

	s.logger.Info("permission granted", "role_id", g.RoleID, "permission_id", g.PermissionID)
	return g, nil
}

func (s *Service) GetGrantByID(id int64) (*RolePermission, error) {
	g, err := s.repo.GetGrantByID(id)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, nil, nil)
	}
	return g, nil
}

// UpdateGrant repoints an existing grant row at a different role and
// permission pair.
func (s *Service) UpdateGrant(id int64, dto GrantPermissionDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	g, err := s.repo.GetGrantByID(id)
	if err != nil {
		return internal.ClassifyStorageError(err, nil, nil)
	}

	g.RoleID = dto.RoleID
	g.PermissionID = dto.PermissionID

	if err := s.repo.UpdateGrant(g); err != nil {
		return internal.ClassifyStorageError(err, nil, nil)
	}
	s.logger.Info("grant updated", "grant_id", id, "role_id", g.RoleID, "permission_id", g.PermissionID)
	return nil
}

func (s *Service) GetAllGrants() ([]*RolePermission, error) {
	grants, err := s.repo.GetAllGrants()
	if err != nil {
		return nil, internal.ClassifyStorageError(err, nil, nil)
	}
	return grants, nil
}

func (s *Service) Revoke(id int64) error {
	if err := s.repo.DeleteGrant(id); err != nil {
		return internal.ClassifyStorageError(err, nil, nil)
	}
	s.logger.Info("grant revoked", "grant_id", id)
	return nil
}

func (s *Service) PermissionsForRole(roleID int64) ([]*Permission, error) {
	permissions, err := s.repo.PermissionsForRole(roleID)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrRoleNotFound, nil)
	}
	return permissions, nil
}

func (s *Service) Assign(dto AssignRoleDTO) (*UserRole, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	a := &UserRole{UserID: dto.UserID, RoleID: dto.RoleID}
	if err := s.repo.CreateAssignment(a); err != nil {
		return nil, internal.ClassifyStorageError(err, nil, nil)
	}

	s.logger.Info("role assigned", "user_id", a.UserID, "role_id", a.RoleID)
	return a, nil
}

func (s *Service) GetAssignmentByID(id int64) (*UserRole, error) {
	a, err := s.repo.GetAssignmentByID(id)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, nil, nil)
	}
	return a, nil
}

func (s *Service) UpdateAssignment(id int64, dto AssignRoleDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	a, err := s.repo.GetAssignmentByID(id)
	if err != nil {
		return internal.ClassifyStorageError(err, nil, nil)
	}

	a.UserID = dto.UserID
	a.RoleID = dto.RoleID

	if err := s.repo.UpdateAssignment(a); err != nil {
		return internal.ClassifyStorageError(err, nil, nil)
	}
	s.logger.Info("assignment updated", "assignment_id", id, "user_id", a.UserID, "role_id", a.RoleID)
	return nil
}

func (s *Service) GetAllAssignments() ([]*UserRole, error) {
	assignments, err := s.repo.GetAllAssignments()
	if err != nil {
		return nil, internal.ClassifyStorageError(err, nil, nil)
	}
	return assignments, nil
}

func (s *Service) Unassign(id int64) error {
	if err := s.repo.DeleteAssignment(id); err != nil {
		return internal.ClassifyStorageError(err, nil, nil)
	}
	s.logger.Info("role unassigned", "assignment_id", id)
	return nil
}

func (s *Service) RolesForUser(userID int64) ([]*Role, error) {
	roles, err := s.repo.RolesForUser(userID)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrUserNotFound, nil)
	}
	return roles, nil
}

// EffectivePermissions returns the deduplicated, sorted union of permission
// names across every role assigned to the user. A user with no roles, or an
// unknown user ID, gets an empty set rather than an error.
func (s *Service) EffectivePermissions(userID int64) ([]string, error) {
	names, err := s.repo.PermissionNamesForUser(userID)
	if err != nil {
		return nil, internal.ClassifyStorageError(err, internal.ErrUserNotFound, nil)
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
