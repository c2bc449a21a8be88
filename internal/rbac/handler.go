package rbac

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/horvathbencetibor/booking-system-be/internal/transport"
	"github.com/horvathbencetibor/booking-system-be/pkg/logger"
)

type ServiceAPI interface {
	CreatePermission(dto CreatePermissionDTO) (*Permission, error)
	GetPermissionByID(id int64) (*Permission, error)
	GetAllPermissions() ([]*Permission, error)
	UpdatePermission(id int64, dto UpdatePermissionDTO) error
	DeletePermission(id int64) error

	CreateRole(dto CreateRoleDTO) (*Role, error)
	GetRoleByID(id int64) (*Role, error)
	GetAllRoles() ([]*Role, error)
	UpdateRole(id int64, dto UpdateRoleDTO) error
	DeleteRole(id int64) error

	Grant(dto GrantPermissionDTO) (*RolePermission, error)
	GetGrantByID(id int64) (*RolePermission, error)
	GetAllGrants() ([]*RolePermission, error)
	UpdateGrant(id int64, dto GrantPermissionDTO) error
	Revoke(id int64) error
	PermissionsForRole(roleID int64) ([]*Permission, error)

	Assign(dto AssignRoleDTO) (*UserRole, error)
	GetAssignmentByID(id int64) (*UserRole, error)
	GetAllAssignments() ([]*UserRole, error)
	UpdateAssignment(id int64, dto AssignRoleDTO) error
	Unassign(id int64) error
	RolesForUser(userID int64) ([]*Role, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, what string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid "+what+" ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) GetAllPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.Service.GetAllPermissions()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, permissions)
}

func (h *Handler) GetPermission(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "permission")
	if !ok {
		return
	}
	p, err := h.Service.GetPermissionByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var dto CreatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.Service.CreatePermission(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "permission")
	if !ok {
		return
	}
	var dto UpdatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Service.UpdatePermission(id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Permission updated successfully"})
}

func (h *Handler) DeletePermission(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "permission")
	if !ok {
		return
	}
	if err := h.Service.DeletePermission(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Permission deleted successfully"})
}

func (h *Handler) GetAllRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.GetAllRoles()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, roles)
}

func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "role")
	if !ok {
		return
	}
	role, err := h.Service.GetRoleByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	role, err := h.Service.CreateRole(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, role)
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "role")
	if !ok {
		return
	}
	var dto UpdateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Service.UpdateRole(id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Role updated successfully"})
}

func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "role")
	if !ok {
		return
	}
	if err := h.Service.DeleteRole(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Role deleted successfully"})
}

// RolePermissions serves GET /roles/{id}/permissions.
func (h *Handler) RolePermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "role")
	if !ok {
		return
	}
	permissions, err := h.Service.PermissionsForRole(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, permissions)
}

func (h *Handler) GetAllGrants(w http.ResponseWriter, r *http.Request) {
	grants, err := h.Service.GetAllGrants()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, grants)
}

func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	var dto GrantPermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g, err := h.Service.Grant(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, g)
}

func (h *Handler) GetGrant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "grant")
	if !ok {
		return
	}
	g, err := h.Service.GetGrantByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, g)
}

func (h *Handler) UpdateGrant(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "grant")
	if !ok {
		return
	}
	var dto GrantPermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Service.UpdateGrant(id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Grant updated successfully"})
}

func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "grant")
	if !ok {
		return
	}
	if err := h.Service.Revoke(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Permission revoked successfully"})
}

func (h *Handler) GetAllAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.Service.GetAllAssignments()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, assignments)
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	var dto AssignRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := h.Service.Assign(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "assignment")
	if !ok {
		return
	}
	a, err := h.Service.GetAssignmentByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "assignment")
	if !ok {
		return
	}
	var dto AssignRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.Service.UpdateAssignment(id, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Assignment updated successfully"})
}

func (h *Handler) Unassign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "assignment")
	if !ok {
		return
	}
	if err := h.Service.Unassign(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Role unassigned successfully"})
}

// UserRoles serves GET /users/{id}/roles.
func (h *Handler) UserRoles(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "user")
	if !ok {
		return
	}
	roles, err := h.Service.RolesForUser(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, roles)
}
