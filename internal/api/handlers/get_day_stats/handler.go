package get_day_stats

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TruckQueueService/internal/api/handlers"
	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

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

// Handle GET /api/v1/bookings/stats/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := mux.Vars(r)["date"]

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /bookings/stats/{date} - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	stats, err := h.service.GetDayStats(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /bookings/stats/{date} - Failed to get stats: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/stats/{date} - Stats retrieved: date=%s, total=%d", dateStr, stats.Total)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
