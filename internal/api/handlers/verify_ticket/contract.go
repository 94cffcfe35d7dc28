package verify_ticket

import "github.com/m04kA/SMC-TruckQueueService/internal/service/ticket"

type TicketVerifier interface {
	Verify(payload string) (*ticket.Claims, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
