package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/allocator"
)

// UseCase use case доски слотов: окно, занятость и следующий номер по каждому слоту даты
// Только чтение, без блокировок: после любой ошибки создания клиент перечитывает доску
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      SlotCatalog
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog SlotCatalog,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		timeProvider: &RealTimeProvider{loc: loc},
		logger:       logger,
	}
}

// Execute выполняет use case получения доски слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.NormalizeDate(req.Date)
	now := uc.timeProvider.Now()

	// 2. Все бронирования даты одним запросом
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingFilter{Date: &date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	bySlot := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		bySlot[b.SlotLabel] = append(bySlot[b.SlotLabel], b)
	}

	// 3. Состояние каждого доступного слота
	available := uc.catalog.AvailableSlots(date)
	slots := make([]Slot, 0, len(available))
	for _, ts := range available {
		window, err := uc.catalog.Resolve(ts.Label, date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to resolve slot=%s: %v", ts.Label, err)
			return nil, fmt.Errorf("%w: failed to resolve slot: %v", ErrInternal, err)
		}

		occupied := allocator.Occupied(bySlot[ts.Label])
		booked := allocator.CountInWindow(window, occupied)

		slot := Slot{
			Label:      ts.Label,
			StartTime:  ts.StartTime,
			EndTime:    ts.EndTime,
			QueueStart: window.Start,
			Limit:      window.Limit,
			Booked:     booked,
			Remaining:  window.Remaining(booked),
			IsPast:     isSlotPast(date, ts.EndTime, now),
		}

		if next, err := allocator.NextQueueNumber(window, occupied); err == nil {
			slot.NextQueueNo = &next
		} else {
			slot.IsFull = true
		}

		slots = append(slots, slot)
	}

	uc.logger.Info("GetAvailableSlots: %d slots for date=%s, %d bookings",
		len(slots), date.Format(domain.DateFormat), len(bookings))

	return &Response{Date: date, Slots: slots}, nil
}
