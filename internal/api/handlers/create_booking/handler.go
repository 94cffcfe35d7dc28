package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TruckQueueService/internal/api/handlers"
	"github.com/m04kA/SMC-TruckQueueService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TruckQueueService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingRecorder    = "не указан сотрудник, оформляющий бронирование"
	msgUnknownSlot        = "слот недоступен в выбранную дату"
	msgSlotFull           = "в слоте нет свободных мест, обновите данные и выберите другой слот"
	msgSupplierNotFound   = "поставщик не найден"
	msgRubberTypeNotFound = "тип каучука не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	recorder, ok := middleware.GetRecorder(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing recorder")
		handlers.RespondUnauthorized(w, msgMissingRecorder)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(recorder)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrValidation):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrUnknownSlot):
			h.logger.Warn("POST /bookings - Unknown slot: date=%s, slot=%s", req.Date, req.SlotLabel)
			handlers.RespondBadRequest(w, msgUnknownSlot)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: date=%s, slot=%s: %v", req.Date, req.SlotLabel, err)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrSupplierNotFound):
			h.logger.Warn("POST /bookings - Supplier not found: supplier_id=%s", req.SupplierID)
			handlers.RespondBadRequest(w, msgSupplierNotFound)

		case errors.Is(err, createBooking.ErrRubberTypeNotFound):
			h.logger.Warn("POST /bookings - Rubber type not found: rubber_type=%s", req.RubberType)
			handlers.RespondBadRequest(w, msgRubberTypeNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, slot=%s, error=%v",
				req.Date, req.SlotLabel, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, queue_no=%d, code=%s",
		result.ID, result.QueueNo, result.BookingCode)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
