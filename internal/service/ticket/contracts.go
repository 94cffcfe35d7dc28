package ticket

import (
	"context"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
)

// BookingRepository интерфейс чтения бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
