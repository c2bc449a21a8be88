package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/horvathbencetibor/booking-system-be/pkg/logger"
)

// RequestID ensures every request carries a trace identifier. An incoming
// X-Trace-ID header is honored so callers can correlate across services.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
