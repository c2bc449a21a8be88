package rbac_test

import (
	"log/slog"
	"net/http"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/horvathbencetibor/booking-system-be/internal"
	"github.com/horvathbencetibor/booking-system-be/internal/rbac"
)

func TestRBACService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Service Suite")
}

type mockRepository struct {
	permissions map[int64]*rbac.Permission
	roles       map[int64]*rbac.Role
	grants      []*rbac.RolePermission
	assignments []*rbac.UserRole
	nextID      int64
	failError   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		permissions: make(map[int64]*rbac.Permission),
		roles:       make(map[int64]*rbac.Role),
		nextID:      1,
	}
}

func (m *mockRepository) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *mockRepository) CreatePermission(p *rbac.Permission) error {
	if m.failError != nil {
		return m.failError
	}
	p.ID = m.id()
	m.permissions[p.ID] = p
	return nil
}

func (m *mockRepository) GetPermissionByID(id int64) (*rbac.Permission, error) {
	p, ok := m.permissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockRepository) GetAllPermissions() ([]*rbac.Permission, error) {
	out := make([]*rbac.Permission, 0, len(m.permissions))
	for _, p := range m.permissions {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockRepository) UpdatePermission(p *rbac.Permission) error {
	if _, ok := m.permissions[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.permissions[p.ID] = p
	return nil
}

func (m *mockRepository) DeletePermission(id int64) error {
	if _, ok := m.permissions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.permissions, id)
	return nil
}

func (m *mockRepository) CreateRole(role *rbac.Role) error {
	role.ID = m.id()
	m.roles[role.ID] = role
	return nil
}

func (m *mockRepository) GetRoleByID(id int64) (*rbac.Role, error) {
	role, ok := m.roles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (m *mockRepository) GetAllRoles() ([]*rbac.Role, error) {
	out := make([]*rbac.Role, 0, len(m.roles))
	for _, role := range m.roles {
		out = append(out, role)
	}
	return out, nil
}

func (m *mockRepository) UpdateRole(role *rbac.Role) error {
	if _, ok := m.roles[role.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.roles[role.ID] = role
	return nil
}

func (m *mockRepository) DeleteRole(id int64) error {
	if _, ok := m.roles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.roles, id)
	return nil
}

func (m *mockRepository) CreateGrant(g *rbac.RolePermission) error {
	g.ID = m.id()
	m.grants = append(m.grants, g)
	return nil
}

func (m *mockRepository) GetGrantByID(id int64) (*rbac.RolePermission, error) {
	for _, g := range m.grants {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepository) GetAllGrants() ([]*rbac.RolePermission, error) {
	return m.grants, nil
}

func (m *mockRepository) UpdateGrant(g *rbac.RolePermission) error {
	for i, existing := range m.grants {
		if existing.ID == g.ID {
			m.grants[i] = g
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockRepository) DeleteGrant(id int64) error {
	for i, g := range m.grants {
		if g.ID == id {
			m.grants = append(m.grants[:i], m.grants[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockRepository) PermissionsForRole(roleID int64) ([]*rbac.Permission, error) {
	var out []*rbac.Permission
	for _, g := range m.grants {
		if g.RoleID == roleID {
			out = append(out, m.permissions[g.PermissionID])
		}
	}
	return out, nil
}

func (m *mockRepository) CreateAssignment(a *rbac.UserRole) error {
	a.ID = m.id()
	m.assignments = append(m.assignments, a)
	return nil
}

func (m *mockRepository) GetAssignmentByID(id int64) (*rbac.UserRole, error) {
	for _, a := range m.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRepository) GetAllAssignments() ([]*rbac.UserRole, error) {
	return m.assignments, nil
}

func (m *mockRepository) UpdateAssignment(a *rbac.UserRole) error {
	for i, existing := range m.assignments {
		if existing.ID == a.ID {
			m.assignments[i] = a
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockRepository) DeleteAssignment(id int64) error {
	for i, a := range m.assignments {
		if a.ID == id {
			m.assignments = append(m.assignments[:i], m.assignments[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockRepository) RolesForUser(userID int64) ([]*rbac.Role, error) {
	var out []*rbac.Role
	for _, a := range m.assignments {
		if a.UserID == userID {
			out = append(out, m.roles[a.RoleID])
		}
	}
	return out, nil
}

// PermissionNamesForUser intentionally returns duplicates when two roles
// grant the same permission, to exercise the service-level dedup.
func (m *mockRepository) PermissionNamesForUser(userID int64) ([]string, error) {
	if m.failError != nil {
		return nil, m.failError
	}
	var names []string
	for _, a := range m.assignments {
		if a.UserID != userID {
			continue
		}
		for _, g := range m.grants {
			if g.RoleID == a.RoleID {
				names = append(names, m.permissions[g.PermissionID].Name)
			}
		}
	}
	return names, nil
}

var _ = Describe("RBAC Service", func() {
	var (
		repo    *mockRepository
		service *rbac.Service
	)

	grant := func(roleID, permID int64) *rbac.RolePermission {
		g, err := service.Grant(rbac.GrantPermissionDTO{RoleID: roleID, PermissionID: permID})
		Expect(err).NotTo(HaveOccurred())
		return g
	}

	assign := func(userID, roleID int64) *rbac.UserRole {
		a, err := service.Assign(rbac.AssignRoleDTO{UserID: userID, RoleID: roleID})
		Expect(err).NotTo(HaveOccurred())
		return a
	}

	BeforeEach(func() {
		repo = newMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = rbac.NewService(repo, logger)
	})

	Describe("EffectivePermissions", func() {
		It("should union permissions across roles without duplicates", func() {
			create, err := service.CreatePermission(rbac.CreatePermissionDTO{Name: rbac.PermCreateBooking})
			Expect(err).NotTo(HaveOccurred())
			cancel, err := service.CreatePermission(rbac.CreatePermissionDTO{Name: rbac.PermCancelBooking})
			Expect(err).NotTo(HaveOccurred())

			editor, err := service.CreateRole(rbac.CreateRoleDTO{Name: "editor"})
			Expect(err).NotTo(HaveOccurred())
			scheduler, err := service.CreateRole(rbac.CreateRoleDTO{Name: "scheduler"})
			Expect(err).NotTo(HaveOccurred())

			grant(editor.ID, create.ID)
			grant(editor.ID, cancel.ID)
			grant(scheduler.ID, create.ID)

			assign(42, editor.ID)
			assign(42, scheduler.ID)

			perms, err := service.EffectivePermissions(42)
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(Equal([]string{rbac.PermCancelBooking, rbac.PermCreateBooking}))
		})

		It("should collapse a grant recorded more than once", func() {
			p, err := service.CreatePermission(rbac.CreatePermissionDTO{Name: rbac.PermManageRooms})
			Expect(err).NotTo(HaveOccurred())
			role, err := service.CreateRole(rbac.CreateRoleDTO{Name: "ops"})
			Expect(err).NotTo(HaveOccurred())

			grant(role.ID, p.ID)
			grant(role.ID, p.ID)
			assign(7, role.ID)
			assign(7, role.ID)

			grants, err := service.GetAllGrants()
			Expect(err).NotTo(HaveOccurred())
			Expect(grants).To(HaveLen(2))

			perms, err := service.EffectivePermissions(7)
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(Equal([]string{rbac.PermManageRooms}))
		})

		It("should return an empty set for a user with no roles", func() {
			perms, err := service.EffectivePermissions(7)
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(BeEmpty())
		})
	})

	Describe("CreatePermission", func() {
		It("should store the description", func() {
			p, err := service.CreatePermission(rbac.CreatePermissionDTO{
				Name:        rbac.PermCreateBooking,
				Description: "Can create bookings",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Description).To(Equal("Can create bookings"))
		})

		It("should reject an empty name", func() {
			_, err := service.CreatePermission(rbac.CreatePermissionDTO{})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("UpdatePermission", func() {
		It("should merge only the supplied fields", func() {
			p, err := service.CreatePermission(rbac.CreatePermissionDTO{
				Name:        rbac.PermManageUsers,
				Description: "old",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.UpdatePermission(p.ID, rbac.UpdatePermissionDTO{Description: "Can manage users"})).To(Succeed())

			got, err := service.GetPermissionByID(p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal(rbac.PermManageUsers))
			Expect(got.Description).To(Equal("Can manage users"))
		})

		It("should reject an empty update", func() {
			err := service.UpdatePermission(1, rbac.UpdatePermissionDTO{})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("should report an unknown permission as not found", func() {
			err := service.UpdatePermission(999, rbac.UpdatePermissionDTO{Name: "x"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("UpdateRole", func() {
		It("should rename and redescribe the role", func() {
			role, err := service.CreateRole(rbac.CreateRoleDTO{Name: "ops"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.UpdateRole(role.ID, rbac.UpdateRoleDTO{Name: "operators", Description: "Ops staff"})).To(Succeed())

			got, err := service.GetRoleByID(role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal("operators"))
			Expect(got.Description).To(Equal("Ops staff"))
		})
	})

	Describe("UpdateGrant", func() {
		It("should repoint the grant at another pair", func() {
			p1, err := service.CreatePermission(rbac.CreatePermissionDTO{Name: rbac.PermManageRooms})
			Expect(err).NotTo(HaveOccurred())
			p2, err := service.CreatePermission(rbac.CreatePermissionDTO{Name: rbac.PermManageTimeslots})
			Expect(err).NotTo(HaveOccurred())
			role, err := service.CreateRole(rbac.CreateRoleDTO{Name: "ops"})
			Expect(err).NotTo(HaveOccurred())

			g := grant(role.ID, p1.ID)
			Expect(service.UpdateGrant(g.ID, rbac.GrantPermissionDTO{RoleID: role.ID, PermissionID: p2.ID})).To(Succeed())

			got, err := service.GetGrantByID(g.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.PermissionID).To(Equal(p2.ID))
		})

		It("should report an unknown grant as not found", func() {
			err := service.UpdateGrant(999, rbac.GrantPermissionDTO{RoleID: 1, PermissionID: 1})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Describe("UpdateAssignment", func() {
		It("should move the assignment to another user", func() {
			role, err := service.CreateRole(rbac.CreateRoleDTO{Name: "editor"})
			Expect(err).NotTo(HaveOccurred())

			a := assign(1, role.ID)
			Expect(service.UpdateAssignment(a.ID, rbac.AssignRoleDTO{UserID: 2, RoleID: role.ID})).To(Succeed())

			got, err := service.GetAssignmentByID(a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.UserID).To(Equal(int64(2)))

			roles, err := service.RolesForUser(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(BeEmpty())
		})
	})

	Describe("RolesForUser", func() {
		It("should list only the user's roles", func() {
			editor, err := service.CreateRole(rbac.CreateRoleDTO{Name: "editor"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.CreateRole(rbac.CreateRoleDTO{Name: "other"})
			Expect(err).NotTo(HaveOccurred())

			assign(1, editor.ID)

			roles, err := service.RolesForUser(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(1))
			Expect(roles[0].Name).To(Equal("editor"))
		})
	})
})
