package postgres

import (
	"gorm.io/gorm"

	"github.com/horvathbencetibor/booking-system-be/internal/rbac"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreatePermission(p *rbac.Permission) error {
	return r.db.Create(p).Error
}

func (r *Repository) GetPermissionByID(id int64) (*rbac.Permission, error) {
	var p rbac.Permission
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetAllPermissions() ([]*rbac.Permission, error) {
	var permissions []*rbac.Permission
	if err := r.db.Order("id ASC").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

func (r *Repository) UpdatePermission(p *rbac.Permission) error {
	return r.db.Save(p).Error
}

func (r *Repository) DeletePermission(id int64) error {
	res := r.db.Delete(&rbac.Permission{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) CreateRole(role *rbac.Role) error {
	return r.db.Create(role).Error
}

func (r *Repository) GetRoleByID(id int64) (*rbac.Role, error) {
	var role rbac.Role
	if err := r.db.First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *Repository) GetAllRoles() ([]*rbac.Role, error) {
	var roles []*rbac.Role
	if err := r.db.Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *Repository) UpdateRole(role *rbac.Role) error {
	return r.db.Save(role).Error
}

func (r *Repository) DeleteRole(id int64) error {
	res := r.db.Delete(&rbac.Role{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) CreateGrant(g *rbac.RolePermission) error {
	return r.db.Create(g).Error
}

func (r *Repository) GetGrantByID(id int64) (*rbac.RolePermission, error) {
	var g rbac.RolePermission
	if err := r.db.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Repository) GetAllGrants() ([]*rbac.RolePermission, error) {
	var grants []*rbac.RolePermission
	if err := r.db.Order("id ASC").Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *Repository) UpdateGrant(g *rbac.RolePermission) error {
	return r.db.Save(g).Error
}

func (r *Repository) DeleteGrant(id int64) error {
	res := r.db.Delete(&rbac.RolePermission{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) PermissionsForRole(roleID int64) ([]*rbac.Permission, error) {
	var permissions []*rbac.Permission
	err := r.db.Model(&rbac.Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Order("permissions.name ASC").
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

func (r *Repository) CreateAssignment(a *rbac.UserRole) error {
	return r.db.Create(a).Error
}

func (r *Repository) GetAssignmentByID(id int64) (*rbac.UserRole, error) {
	var a rbac.UserRole
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetAllAssignments() ([]*rbac.UserRole, error) {
	var assignments []*rbac.UserRole
	if err := r.db.Order("id ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *Repository) UpdateAssignment(a *rbac.UserRole) error {
	return r.db.Save(a).Error
}

func (r *Repository) DeleteAssignment(id int64) error {
	res := r.db.Delete(&rbac.UserRole{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) RolesForUser(userID int64) ([]*rbac.Role, error) {
	var roles []*rbac.Role
	err := r.db.Model(&rbac.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("roles.name ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// PermissionNamesForUser walks user_roles into role_permissions into
// permissions. DISTINCT keeps a permission granted through several roles
// from appearing more than once.
func (r *Repository) PermissionNamesForUser(userID int64) ([]string, error) {
	var names []string
	err := r.db.Raw(`
		SELECT DISTINCT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN user_roles ur ON ur.role_id = rp.role_id
		WHERE ur.user_id = ?`, userID).Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
