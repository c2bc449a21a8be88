package bookinglog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/horvathbencetibor/booking-system-be/internal/transport"
	"github.com/horvathbencetibor/booking-system-be/pkg/logger"
)

type ServiceAPI interface {
	GetByID(id int64) (*BookingLog, error)
	GetAll() ([]*BookingLog, error)
}

// Handler exposes the audit trail read-only. Writes happen exclusively
// through the event subscription.
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

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.GetAll()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid booking log ID")
		return
	}

	entry, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entry)
}
