package list_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-TruckQueueService/internal/api/handlers"
)

const msgInvalidParams = "некорректные параметры запроса"

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

// Handle GET /api/v1/bookings
// Query params: date (YYYY-MM-DD), slot, code (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceReq, err := ToServiceRequest(query.Get("date"), query.Get("slot"), query.Get("code"))
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
