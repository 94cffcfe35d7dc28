package get_booking_ticket

import (
	"context"

	"github.com/m04kA/SMC-TruckQueueService/internal/service/ticket"
)

type TicketService interface {
	Render(ctx context.Context, id string, format ticket.Format) (*ticket.Ticket, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
