package get_slot_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-TruckQueueService/internal/api/handlers"
	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	catalog SlotCatalog
	logger  Logger
}

func NewHandler(catalog SlotCatalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/catalog
// Query params: date (опционально) - оставить только слоты, предлагаемые в этот день
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Info("GET /slots/catalog - Catalog retrieved")
		handlers.RespondJSON(w, http.StatusOK, FromDomain(h.catalog.All(), h.catalog.Rules()))
		return
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /slots/catalog - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	resp := FromDomain(h.catalog.AvailableSlots(date), h.catalog.Rules())
	resp.Date = &dateStr

	h.logger.Info("GET /slots/catalog - Catalog retrieved: date=%s, slots_count=%d", dateStr, len(resp.Slots))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
