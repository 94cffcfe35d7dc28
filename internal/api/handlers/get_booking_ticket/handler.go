package get_booking_ticket

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TruckQueueService/internal/api/handlers"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/ticket"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidFormat    = "формат талона: png или pdf"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	service TicketService
	logger  Logger
}

func NewHandler(service TicketService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/ticket
// Query params: format (png по умолчанию | pdf)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	format := ticket.FormatPNG
	if f := r.URL.Query().Get("format"); f != "" {
		format = ticket.Format(f)
	}

	t, err := h.service.Render(r.Context(), bookingID, format)
	if err != nil {
		switch {
		case errors.Is(err, ticket.ErrUnsupportedFormat):
			h.logger.Warn("GET /bookings/{id}/ticket - Unsupported format %q", format)
			handlers.RespondBadRequest(w, msgInvalidFormat)

		case errors.Is(err, ticket.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/ticket - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id}/ticket - Failed to render ticket: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.Header().Set("Content-Type", t.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(t.Body)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", t.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(t.Body); err != nil {
		h.logger.Warn("GET /bookings/{id}/ticket - Failed to write body: %v", err)
		return
	}

	h.logger.Info("GET /bookings/{id}/ticket - Ticket issued: booking_id=%s, format=%s", bookingID, format)
}
