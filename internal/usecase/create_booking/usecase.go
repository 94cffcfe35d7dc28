package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TruckQueueService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TruckQueueService/internal/integrations/masterdata"
	"github.com/m04kA/SMC-TruckQueueService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/allocator"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/schedule"
	"github.com/m04kA/SMC-TruckQueueService/pkg/bookingcode"
	"github.com/m04kA/SMC-TruckQueueService/pkg/metrics"
)

// UseCase use case для создания бронирования с выдачей номера очереди
type UseCase struct {
	bookingRepo BookingRepository
	catalog     SlotCatalog
	masterData  MasterDataClient
	publisher   EventPublisher
	txManager   TransactionManager
	metrics     Metrics
	maxRetries  int
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
// masterData может быть nil: тогда данные поставщика не сверяются со справочником
func NewUseCase(
	bookingRepo BookingRepository,
	catalog SlotCatalog,
	masterData MasterDataClient,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	maxRetries int,
	logger Logger,
) *UseCase {
	if maxRetries < 0 {
		maxRetries = domain.DefaultMaxCreateRetries
	}
	if publisher == nil {
		publisher = notifier.Noop{}
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		catalog:     catalog,
		masterData:  masterData,
		publisher:   publisher,
		txManager:   txManager,
		metrics:     metrics,
		maxRetries:  maxRetries,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Номер очереди вычисляется по занятым номерам (дата, слот) внутри сериализуемой транзакции.
// Если конкурентное бронирование заняло тот же номер, попытка повторяется с перечитанными
// данными, не более maxRetries раз; после этого возвращается ErrSlotFull.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, slot=%s, supplier=%s, rubber_type=%s, recorder=%s",
		req.Date.Format(domain.DateFormat), req.SlotLabel, req.SupplierID, req.RubberType, req.Recorder)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// справочник может дополнить поля поставщика, запрос вызывающего не меняем
	reqCopy := *req
	req = &reqCopy
	date := domain.NormalizeDate(req.Date)

	// 2. Проверяем, что слот предлагается на эту дату, и получаем окно номеров
	slot, err := uc.catalog.Slot(req.SlotLabel, date)
	if err != nil {
		return nil, uc.mapCatalogError(req.SlotLabel, date, err)
	}

	window, err := uc.catalog.Resolve(slot.Label, date)
	if err != nil {
		return nil, uc.mapCatalogError(req.SlotLabel, date, err)
	}

	// 3. Сверяем поставщика и тип каучука со справочником
	if err := uc.checkMasterData(ctx, req); err != nil {
		return nil, err
	}

	// 4. Выделяем номер и сохраняем бронирование, повторяя при конфликте
	attempts := uc.maxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		created, err := uc.tryCreate(ctx, req, date, slot, window)
		if err == nil {
			uc.logger.Info("CreateBooking: created booking id=%s, queue_no=%d, code=%s (attempt %d)",
				created.ID, created.QueueNo, created.BookingCode, attempt)
			uc.metrics.IncBookingCreated(slot.Label)
			uc.publish(ctx, created)
			return toResponse(created), nil
		}

		switch {
		case errors.Is(err, allocator.ErrSlotFull):
			uc.logger.Warn("CreateBooking: slot full, date=%s, slot=%s: %v",
				date.Format(domain.DateFormat), slot.Label, err)
			uc.metrics.IncCreateRejected(slot.Label, metrics.RejectReasonCapacity)
			return nil, fmt.Errorf("%w: %s on %s", ErrSlotFull, slot.Label, date.Format(domain.DateFormat))

		case bookingRepo.IsQueueConflict(err):
			uc.logger.Warn("CreateBooking: queue number conflict, date=%s, slot=%s, attempt %d/%d: %v",
				date.Format(domain.DateFormat), slot.Label, attempt, attempts, err)
			uc.metrics.IncCreateConflict(slot.Label)

		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Error("CreateBooking: retry budget exhausted after %d attempts, date=%s, slot=%s",
		attempts, date.Format(domain.DateFormat), slot.Label)
	uc.metrics.IncCreateRejected(slot.Label, metrics.RejectReasonContention)
	return nil, fmt.Errorf("%w: retry budget exhausted after %d attempts", ErrSlotFull, attempts)
}

// tryCreate одна попытка: чтение занятых номеров, выбор номера, вставка
func (uc *UseCase) tryCreate(
	ctx context.Context,
	req *Request,
	date time.Time,
	slot domain.TimeSlot,
	window domain.CapacityWindow,
) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Занятые номера слота (в транзакции с блокировкой FOR UPDATE)
		existing, err := uc.bookingRepo.List(txCtx, domain.BookingFilter{
			Date:      &date,
			SlotLabel: &slot.Label,
		})
		if err != nil {
			return err
		}

		// 4.2. Наименьший свободный номер в окне
		queueNo, err := allocator.NextQueueNumber(window, allocator.Occupied(existing))
		if err != nil {
			return err
		}

		// 4.3. Сохраняем бронирование с номером и кодом
		booking := &domain.Booking{
			Date:          date,
			SlotLabel:     slot.Label,
			StartTime:     slot.StartTime,
			EndTime:       slot.EndTime,
			QueueNo:       queueNo,
			BookingCode:   bookingcode.Generate(date, queueNo),
			SupplierID:    strings.TrimSpace(req.SupplierID),
			SupplierCode:  req.SupplierCode,
			SupplierName:  req.SupplierName,
			TruckType:     req.TruckType,
			TruckRegister: req.TruckRegister,
			RubberType:    strings.TrimSpace(req.RubberType),
			Recorder:      req.Recorder,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *UseCase) mapCatalogError(label string, date time.Time, err error) error {
	if errors.Is(err, schedule.ErrUnknownSlot) {
		uc.logger.Warn("CreateBooking: slot=%s is not offered on %s (%s)",
			label, date.Format(domain.DateFormat), date.Weekday())
		return fmt.Errorf("%w: %s on %s", ErrUnknownSlot, label, date.Format(domain.DateFormat))
	}
	uc.logger.Error("CreateBooking: failed to resolve slot=%s: %v", label, err)
	return fmt.Errorf("%w: failed to resolve slot: %v", ErrInternal, err)
}

// checkMasterData сверяет поставщика и тип каучука со справочником
// При недоступности справочника бронирование продолжается по данным запроса
func (uc *UseCase) checkMasterData(ctx context.Context, req *Request) error {
	if uc.masterData == nil {
		return nil
	}

	supplier, err := uc.masterData.GetSupplierWithGracefulDegradation(ctx, req.SupplierID)
	switch {
	case err == nil:
		if req.SupplierCode == "" {
			req.SupplierCode = supplier.Code
		}
		if req.SupplierName == "" {
			req.SupplierName = supplier.Name
		}
	case errors.Is(err, masterdata.ErrSupplierNotFound):
		uc.logger.Warn("CreateBooking: supplier=%s not found in masterdata", req.SupplierID)
		return fmt.Errorf("%w: %s", ErrSupplierNotFound, req.SupplierID)
	case errors.Is(err, masterdata.ErrServiceDegraded):
		uc.logger.Warn("CreateBooking: masterdata degraded, supplier=%s accepted as is", req.SupplierID)
	default:
		uc.logger.Error("CreateBooking: failed to get supplier=%s: %v", req.SupplierID, err)
		return fmt.Errorf("%w: failed to get supplier: %v", ErrInternal, err)
	}

	_, err = uc.masterData.GetRubberTypeWithGracefulDegradation(ctx, req.RubberType)
	switch {
	case err == nil:
	case errors.Is(err, masterdata.ErrRubberTypeNotFound):
		uc.logger.Warn("CreateBooking: rubber type=%s not found in masterdata", req.RubberType)
		return fmt.Errorf("%w: %s", ErrRubberTypeNotFound, req.RubberType)
	case errors.Is(err, masterdata.ErrServiceDegraded):
		uc.logger.Warn("CreateBooking: masterdata degraded, rubber type=%s accepted as is", req.RubberType)
	default:
		uc.logger.Error("CreateBooking: failed to get rubber type=%s: %v", req.RubberType, err)
		return fmt.Errorf("%w: failed to get rubber type: %v", ErrInternal, err)
	}

	return nil
}

// publish рассылает событие; ошибка рассылки не отменяет созданное бронирование
func (uc *UseCase) publish(ctx context.Context, b *domain.Booking) {
	event := notifier.Event{
		Type:        notifier.EventBookingCreated,
		BookingID:   b.ID,
		Date:        b.Date.Format(domain.DateFormat),
		SlotLabel:   b.SlotLabel,
		QueueNo:     b.QueueNo,
		BookingCode: b.BookingCode,
		OccurredAt:  b.CreatedAt,
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%s: %v", b.ID, err)
	}
}
