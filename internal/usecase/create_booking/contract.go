package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	"github.com/m04kA/SMC-TruckQueueService/internal/integrations/masterdata"
	"github.com/m04kA/SMC-TruckQueueService/internal/integrations/notifier"
)

// BookingRepository интерфейс хранилища бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotCatalog каталог слотов и окон выдачи номеров
type SlotCatalog interface {
	Slot(label string, date time.Time) (domain.TimeSlot, error)
	Resolve(label string, date time.Time) (domain.CapacityWindow, error)
}

// MasterDataClient интерфейс клиента справочников
type MasterDataClient interface {
	GetSupplierWithGracefulDegradation(ctx context.Context, supplierID string) (*masterdata.Supplier, error)
	GetRubberTypeWithGracefulDegradation(ctx context.Context, code string) (*masterdata.RubberType, error)
}

// EventPublisher интерфейс публикации событий бронирований
type EventPublisher interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики исходов создания бронирования
type Metrics interface {
	IncBookingCreated(slot string)
	IncCreateRejected(slot, reason string)
	IncCreateConflict(slot string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
