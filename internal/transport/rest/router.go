package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/horvathbencetibor/booking-system-be/internal/auth"
	"github.com/horvathbencetibor/booking-system-be/internal/booking"
	"github.com/horvathbencetibor/booking-system-be/internal/bookinglog"
	"github.com/horvathbencetibor/booking-system-be/internal/rbac"
	"github.com/horvathbencetibor/booking-system-be/internal/room"
	"github.com/horvathbencetibor/booking-system-be/internal/timeslot"
	"github.com/horvathbencetibor/booking-system-be/internal/transport/middleware"
	"github.com/horvathbencetibor/booking-system-be/internal/transport/swagger"
	"github.com/horvathbencetibor/booking-system-be/internal/user"
)

// Handlers carries every HTTP handler the router mounts.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Room       *room.Handler
	Timeslot   *timeslot.Handler
	Booking    *booking.Handler
	RBAC       *rbac.Handler
	BookingLog *bookinglog.Handler
}

// RegisterAllRoutes mounts the whole API at the router root. Login, logout,
// health and the swagger UI are public; checkauth reads its own token;
// everything else sits behind the bearer-token middleware, with mutating
// routes additionally gated on permissions.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	router.Route("/auth", func(sr chi.Router) {
		sr.Post("/login", h.Auth.Login)
		sr.Post("/logout", h.Auth.Logout)
	})
	router.Post("/checkauth", h.Auth.CheckAuth)
	router.Get("/checkauth", h.Auth.CheckAuth)

	router.Group(func(pr chi.Router) {
		pr.Use(h.Auth.Middleware)

		pr.Route("/users", func(ur chi.Router) {
			ur.Get("/", h.User.GetAll)
			ur.Get("/{id}", h.User.GetByID)
			ur.Get("/{id}/bookings", h.Booking.ByUser)
			ur.Get("/{id}/roles", h.RBAC.UserRoles)

			ur.Group(func(mr chi.Router) {
				mr.Use(middleware.RequirePermissions(rbac.PermManageUsers))
				mr.Post("/", h.User.Create)
				mr.Put("/{id}", h.User.Update)
				mr.Delete("/{id}", h.User.Delete)
			})
		})

		pr.Route("/rooms", func(rr chi.Router) {
			rr.Get("/", h.Room.GetAll)
			rr.Get("/{id}", h.Room.GetByID)
			rr.Get("/{id}/bookings", h.Booking.ByRoom)
			rr.Get("/{id}/timeslots", h.Timeslot.ByRoom)
			rr.Get("/{id}/available-timeslots", h.Timeslot.AvailableByRoom)

			rr.Group(func(mr chi.Router) {
				mr.Use(middleware.RequirePermissions(rbac.PermManageRooms))
				mr.Post("/", h.Room.Create)
				mr.Put("/{id}", h.Room.Update)
				mr.Delete("/{id}", h.Room.Delete)
			})
		})

		pr.Route("/timeslots", func(tr chi.Router) {
			tr.Get("/", h.Timeslot.GetAll)
			tr.Get("/{id}", h.Timeslot.GetByID)

			tr.Group(func(mr chi.Router) {
				mr.Use(middleware.RequirePermissions(rbac.PermManageTimeslots))
				mr.Post("/", h.Timeslot.Create)
				mr.Put("/{id}", h.Timeslot.Update)
				mr.Delete("/{id}", h.Timeslot.Delete)
			})
		})

		pr.Route("/bookings", func(br chi.Router) {
			br.Get("/", h.Booking.GetAll)
			br.Get("/{id}", h.Booking.GetByID)

			br.Group(func(mr chi.Router) {
				mr.Use(middleware.RequirePermissions(rbac.PermCreateBooking))
				mr.Post("/", h.Booking.Create)
			})
			br.Group(func(mr chi.Router) {
				mr.Use(middleware.RequirePermissions(rbac.PermUpdateBooking))
				mr.Put("/{id}", h.Booking.UpdateStatus)
			})
			br.Group(func(mr chi.Router) {
				mr.Use(middleware.RequirePermissions(rbac.PermCancelBooking))
				mr.Post("/{id}/cancel", h.Booking.Cancel)
			})
			br.Group(func(mr chi.Router) {
				mr.Use(middleware.RequirePermissions(rbac.PermDeleteBooking))
				mr.Delete("/{id}", h.Booking.Delete)
			})
		})

		pr.Route("/permissions", func(pmr chi.Router) {
			pmr.Get("/", h.RBAC.GetAllPermissions)
			pmr.Get("/{id}", h.RBAC.GetPermission)

			pmr.Group(func(mr chi.Router) {
				mr.Use(middleware.RequirePermissions(rbac.PermManageRoles))
				mr.Post("/", h.RBAC.CreatePermission)
				mr.Put("/{id}", h.RBAC.UpdatePermission)
				mr.Delete("/{id}", h.RBAC.DeletePermission)
			})
		})

		pr.Route("/roles", func(rr chi.Router) {
			rr.Get("/", h.RBAC.GetAllRoles)
			rr.Get("/{id}", h.RBAC.GetRole)
			rr.Get("/{id}/permissions", h.RBAC.RolePermissions)

			rr.Group(func(mr chi.Router) {
				mr.Use(middleware.RequirePermissions(rbac.PermManageRoles))
				mr.Post("/", h.RBAC.CreateRole)
				mr.Put("/{id}", h.RBAC.UpdateRole)
				mr.Delete("/{id}", h.RBAC.DeleteRole)
			})
		})

		pr.Route("/role-permissions", func(rpr chi.Router) {
			rpr.Get("/", h.RBAC.GetAllGrants)
			rpr.Get("/{id}", h.RBAC.GetGrant)

			rpr.Group(func(mr chi.Router) {
				mr.Use(middleware.RequirePermissions(rbac.PermManageRoles))
				mr.Post("/", h.RBAC.Grant)
				mr.Put("/{id}", h.RBAC.UpdateGrant)
				mr.Delete("/{id}", h.RBAC.Revoke)
			})
		})

		pr.Route("/user-roles", func(urr chi.Router) {
			urr.Get("/", h.RBAC.GetAllAssignments)
			urr.Get("/{id}", h.RBAC.GetAssignment)

			urr.Group(func(mr chi.Router) {
				mr.Use(middleware.RequirePermissions(rbac.PermManageRoles))
				mr.Post("/", h.RBAC.Assign)
				mr.Put("/{id}", h.RBAC.UpdateAssignment)
				mr.Delete("/{id}", h.RBAC.Unassign)
			})
		})

		pr.Route("/booking-logs", func(blr chi.Router) {
			blr.Get("/", h.BookingLog.GetAll)
			blr.Get("/{id}", h.BookingLog.GetByID)
		})
	})
}
