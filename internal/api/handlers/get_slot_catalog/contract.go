package get_slot_catalog

import (
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
)

type SlotCatalog interface {
	All() []domain.TimeSlot
	Rules() []domain.WeekdayRule
	AvailableSlots(date time.Time) []domain.TimeSlot
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
