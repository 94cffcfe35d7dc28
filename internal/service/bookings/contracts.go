package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	"github.com/m04kA/SMC-TruckQueueService/internal/integrations/notifier"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	Patch(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// SlotCatalog каталог слотов и окон выдачи номеров
type SlotCatalog interface {
	AvailableSlots(date time.Time) []domain.TimeSlot
	Resolve(label string, date time.Time) (domain.CapacityWindow, error)
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
