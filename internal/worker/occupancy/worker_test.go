package occupancy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TruckQueueService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TruckQueueService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeStats struct {
	gotDate time.Time
	err     error
}

func (f *fakeStats) GetDayStats(_ context.Context, date time.Time) (*models.DayStatsResponse, error) {
	f.gotDate = date
	if f.err != nil {
		return nil, f.err
	}
	return &models.DayStatsResponse{
		Total: 5,
		Slots: []models.SlotStatsResponse{
			{Label: "08:00-09:00", Booked: 4, Remaining: ptr.Ptr(0), IsFull: true},
			{Label: "13:00-14:00", Booked: 1},
		},
	}, nil
}

type gauge struct {
	booked, remaining int
}

type fakeGauges map[string]gauge

func (g fakeGauges) SetSlotOccupancy(slot string, booked, remaining int) {
	g[slot] = gauge{booked: booked, remaining: remaining}
}

func TestRefresh(t *testing.T) {
	stats := &fakeStats{}
	gauges := fakeGauges{}
	loc := time.FixedZone("UTC+7", 7*60*60)

	w := NewWorker(stats, gauges, loc, nopLogger{})
	// 23:30 UTC 14 марта - уже 15 марта по времени площадки
	w.clock = func() time.Time { return time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC).In(loc) }

	require.NoError(t, w.Refresh(context.Background()))
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), stats.gotDate)
	assert.Equal(t, gauge{booked: 4, remaining: 0}, gauges["08:00-09:00"])
	assert.Equal(t, gauge{booked: 1, remaining: -1}, gauges["13:00-14:00"])
}

func TestRefresh_Error(t *testing.T) {
	w := NewWorker(&fakeStats{err: errors.New("db down")}, fakeGauges{}, time.UTC, nopLogger{})
	assert.Error(t, w.Refresh(context.Background()))
}

func TestStart_InvalidSchedule(t *testing.T) {
	w := NewWorker(&fakeStats{}, fakeGauges{}, time.UTC, nopLogger{})
	assert.Error(t, w.Start("every minute"))
}

func TestStartStop(t *testing.T) {
	gauges := fakeGauges{}
	w := NewWorker(&fakeStats{}, gauges, time.UTC, nopLogger{})

	require.NoError(t, w.Start("@every 1h"))
	w.Stop()

	// первое обновление выполняется сразу при старте
	assert.Len(t, gauges, 2)
}
