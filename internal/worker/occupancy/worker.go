package occupancy

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
)

// DefaultSchedule раз в минуту
const DefaultSchedule = "* * * * *"

const refreshTimeout = 10 * time.Second

// Worker по расписанию обновляет gauges заполненности слотов на сегодня
type Worker struct {
	stats  StatsProvider
	gauges Gauges
	logger Logger
	cron   *cron.Cron
	clock  func() time.Time
}

// NewWorker создает воркер; loc - часовой пояс площадки, в котором считается "сегодня"
func NewWorker(stats StatsProvider, gauges Gauges, loc *time.Location, logger Logger) *Worker {
	if loc == nil {
		loc = time.Local
	}
	return &Worker{
		stats:  stats,
		gauges: gauges,
		logger: logger,
		cron:   cron.New(cron.WithLocation(loc)),
		clock:  func() time.Time { return time.Now().In(loc) },
	}
}

// Start регистрирует задачу, сразу делает первое обновление и запускает планировщик
func (w *Worker) Start(schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	if _, err := w.cron.AddFunc(schedule, w.run); err != nil {
		return fmt.Errorf("occupancy worker: invalid schedule %q: %w", schedule, err)
	}

	w.run()
	w.cron.Start()
	w.logger.Info("Occupancy worker started, schedule=%q", schedule)
	return nil
}

// Stop останавливает планировщик и ждет завершения текущего запуска
func (w *Worker) Stop() {
	<-w.cron.Stop().Done()
	w.logger.Info("Occupancy worker stopped")
}

// Refresh выставляет gauges по статистике текущего дня
func (w *Worker) Refresh(ctx context.Context) error {
	today := domain.NormalizeDate(now.With(w.clock()).BeginningOfDay())

	stats, err := w.stats.GetDayStats(ctx, today)
	if err != nil {
		return fmt.Errorf("occupancy worker: get stats for %s: %w", today.Format(domain.DateFormat), err)
	}

	for _, slot := range stats.Slots {
		remaining := -1 // без ограничения
		if slot.Remaining != nil {
			remaining = *slot.Remaining
		}
		w.gauges.SetSlotOccupancy(slot.Label, slot.Booked, remaining)
	}
	return nil
}

func (w *Worker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := w.Refresh(ctx); err != nil {
		w.logger.Error("Occupancy refresh failed: %v", err)
	}
}
