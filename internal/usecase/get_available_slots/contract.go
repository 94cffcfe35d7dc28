package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// SlotCatalog каталог слотов и окон выдачи номеров
type SlotCatalog interface {
	AvailableSlots(date time.Time) []domain.TimeSlot
	Resolve(label string, date time.Time) (domain.CapacityWindow, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production, в часовом поясе площадки
type RealTimeProvider struct {
	loc *time.Location
}

// Now возвращает текущее время площадки
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().In(p.loc)
}
