package occupancy

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/service/bookings/models"
)

// StatsProvider источник заполненности слотов за день
type StatsProvider interface {
	GetDayStats(ctx context.Context, date time.Time) (*models.DayStatsResponse, error)
}

// Gauges приемник метрик заполненности
type Gauges interface {
	SetSlotOccupancy(slot string, booked, remaining int)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
