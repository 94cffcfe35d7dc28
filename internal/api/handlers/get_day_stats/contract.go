package get_day_stats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/service/bookings/models"
)

type BookingService interface {
	GetDayStats(ctx context.Context, date time.Time) (*models.DayStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
