package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/horvathbencetibor/booking-system-be/internal"
	"github.com/horvathbencetibor/booking-system-be/internal/auth"
	"github.com/horvathbencetibor/booking-system-be/internal/rbac"
)

// RequirePermissions gates a route on the caller holding at least one of
// the named permissions. ADMIN passes every gate.
func RequirePermissions(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				writeAppError(w, internal.ErrInvalidToken)
				return
			}

			if !user.HasPermission(rbac.PermAdmin) && !user.HasAnyPermission(permissions...) {
				slog.Warn("access denied",
					"user_id", user.ID,
					"required_permissions", permissions,
					"user_permissions", user.Permissions)
				writeAppError(w, internal.ErrMissingPermission)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAppError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
