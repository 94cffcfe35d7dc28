package verify_ticket

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TruckQueueService/internal/api/handlers"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/ticket"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTicket      = "талон недействителен"
)

type Handler struct {
	verifier TicketVerifier
	logger   Logger
}

func NewHandler(verifier TicketVerifier, logger Logger) *Handler {
	return &Handler{
		verifier: verifier,
		logger:   logger,
	}
}

// Handle POST /api/v1/tickets/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req VerifyTicketRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Payload == "" {
		h.logger.Warn("POST /tickets/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	claims, err := h.verifier.Verify(req.Payload)
	if err != nil {
		if errors.Is(err, ticket.ErrInvalidPayload) {
			h.logger.Warn("POST /tickets/verify - Rejected: %v", err)
			handlers.RespondUnprocessable(w, msgInvalidTicket)
			return
		}
		h.logger.Error("POST /tickets/verify - Failed to verify ticket: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /tickets/verify - Ticket accepted: code=%s, queue_no=%d", claims.BookingCode, claims.QueueNo)
	handlers.RespondJSON(w, http.StatusOK, claims)
}
