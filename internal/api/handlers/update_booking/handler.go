package update_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TruckQueueService/internal/api/handlers"
	"github.com/m04kA/SMC-TruckQueueService/internal/api/middleware"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgImmutableField     = "номер очереди, код, дата и слот бронирования не изменяются"
)

// Максимальный размер тела запроса
const maxBodyBytes = 1 << 20

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	if bookingID == "" {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req, err := ParseRequest(body)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// если сотрудник не передал recorder явно, последним редактором считается он сам
	if req.Recorder == nil {
		if recorder, ok := middleware.GetRecorder(r.Context()); ok {
			req.Recorder = &recorder
		}
	}

	result, err := h.service.Update(r.Context(), bookingID, req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrImmutableField):
			h.logger.Warn("PATCH /bookings/{id} - Immutable fields %v: booking_id=%s", req.ImmutableFields, bookingID)
			handlers.RespondUnprocessable(w, msgImmutableField)

		case errors.Is(err, bookings.ErrValidation):
			h.logger.Warn("PATCH /bookings/{id} - Validation failed: booking_id=%s: %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
