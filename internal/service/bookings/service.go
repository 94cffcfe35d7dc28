package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TruckQueueService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TruckQueueService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/allocator"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/bookings/models"
)

// Service сервис для работы с существующими бронированиями
type Service struct {
	bookingRepo BookingRepository
	catalog     SlotCatalog
	publisher   EventPublisher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalog SlotCatalog,
	publisher EventPublisher,
	logger Logger,
) *Service {
	if publisher == nil {
		publisher = notifier.Noop{}
	}
	return &Service{
		bookingRepo: bookingRepo,
		catalog:     catalog,
		publisher:   publisher,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования по фильтру (дата, слот, код), все параметры опциональны
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := "List: fetching bookings"
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.SlotLabel != nil {
		logMsg += fmt.Sprintf(", slot=%s", *req.SlotLabel)
	}
	if req.BookingCode != nil {
		logMsg += fmt.Sprintf(", code=%s", *req.BookingCode)
	}
	s.logger.Info(logMsg)

	bookings, err := s.bookingRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Update изменяет описательные поля бронирования
// Номер очереди, код, дата и слот неизменяемы: их присутствие в запросе отклоняет его целиком
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%s", id)

	// 1. Неизменяемые поля
	if len(req.ImmutableFields) > 0 {
		s.logger.Warn("Update: attempt to change immutable fields %v of booking id=%s", req.ImmutableFields, id)
		return nil, fmt.Errorf("%w: %s", ErrImmutableField, strings.Join(req.ImmutableFields, ", "))
	}

	// 2. Валидация патча
	patch := req.ToDomainPatch()
	if err := validatePatch(patch); err != nil {
		s.logger.Warn("Update: validation failed for booking id=%s: %v", id, err)
		return nil, err
	}

	// 3. Применяем
	updated, err := s.bookingRepo.Patch(ctx, id, patch)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Update: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, notifier.EventBookingUpdated, updated, updated.UpdatedAt)

	s.logger.Info("Update: successfully updated booking id=%s", id)
	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронирование
// Остальные бронирования слота не перенумеровываются, освободившийся номер выдается следующему
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting booking id=%s", id)

	booking, err := s.getBooking(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s already deleted", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, notifier.EventBookingDeleted, booking, time.Now())

	s.logger.Info("Delete: booking id=%s deleted, queue_no=%d in slot=%s on %s is free",
		id, booking.QueueNo, booking.SlotLabel, booking.Date.Format(domain.DateFormat))
	return nil
}

// GetDayStats возвращает количество бронирований за день по доступным слотам
func (s *Service) GetDayStats(ctx context.Context, date time.Time) (*models.DayStatsResponse, error) {
	date = domain.NormalizeDate(date)
	s.logger.Info("GetDayStats: date=%s", date.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{Date: &date})
	if err != nil {
		s.logger.Error("GetDayStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetDayStats - repository error: %v", ErrInternal, err)
	}

	bySlot := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		bySlot[b.SlotLabel] = append(bySlot[b.SlotLabel], b)
	}

	stats := &domain.DayStats{Total: len(bookings)}
	for _, slot := range s.catalog.AvailableSlots(date) {
		window, err := s.catalog.Resolve(slot.Label, date)
		if err != nil {
			s.logger.Error("GetDayStats: failed to resolve slot=%s: %v", slot.Label, err)
			return nil, fmt.Errorf("%w: GetDayStats - resolve slot: %v", ErrInternal, err)
		}

		occupied := allocator.Occupied(bySlot[slot.Label])
		booked := allocator.CountInWindow(window, occupied)

		maxQueueNo := 0
		for n := range occupied {
			if n > maxQueueNo {
				maxQueueNo = n
			}
		}

		stats.Slots = append(stats.Slots, domain.SlotStats{
			Slot:       slot,
			Window:     window,
			Booked:     booked,
			Remaining:  window.Remaining(booked),
			IsFull:     allocator.IsSlotFull(window, occupied),
			MaxQueueNo: maxQueueNo,
		})
	}

	return models.FromDomainDayStats(date, stats), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) publish(ctx context.Context, eventType notifier.EventType, b *domain.Booking, at time.Time) {
	event := notifier.Event{
		Type:        eventType,
		BookingID:   b.ID,
		Date:        b.Date.Format(domain.DateFormat),
		SlotLabel:   b.SlotLabel,
		QueueNo:     b.QueueNo,
		BookingCode: b.BookingCode,
		OccurredAt:  at,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish %s for booking id=%s: %v", eventType, b.ID, err)
	}
}
