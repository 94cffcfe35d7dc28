package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	"github.com/m04kA/SMC-TruckQueueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TruckQueueService/pkg/psqlbuilder"
)

const bookingsTable = "bookings"

var bookingColumns = []string{
	"id",
	"booking_date",
	"slot_label",
	"start_time",
	"end_time",
	"queue_no",
	"booking_code",
	"supplier_id",
	"supplier_code",
	"supplier_name",
	"truck_type",
	"truck_register",
	"rubber_type",
	"recorder",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование, назначая ему ID
// Если в контексте передана активная транзакция, использует её.
//
// Занятый номер очереди в (дата, слот) возвращается как ErrQueueNumberTaken:
// вызывающий должен пересчитать номер и повторить попытку.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	booking.ID = uuid.NewString()
	booking.Date = domain.NormalizeDate(booking.Date)

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"id",
			"booking_date",
			"slot_label",
			"start_time",
			"end_time",
			"queue_no",
			"booking_code",
			"supplier_id",
			"supplier_code",
			"supplier_name",
			"truck_type",
			"truck_register",
			"rubber_type",
			"recorder",
		).
		Values(
			booking.ID,
			booking.Date,
			booking.SlotLabel,
			booking.StartTime,
			booking.EndTime,
			booking.QueueNo,
			booking.BookingCode,
			booking.SupplierID,
			booking.SupplierCode,
			booking.SupplierName,
			booking.TruckType,
			booking.TruckRegister,
			booking.RubberType,
			booking.Recorder,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if IsQueueConflict(err) {
			return nil, fmt.Errorf("%w: Create - date=%s, slot=%s, queue_no=%d: %v",
				ErrQueueNumberTaken, booking.Date.Format(domain.DateFormat), booking.SlotLabel, booking.QueueNo, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		// невалидный UUID упадет в postgres с ошибкой типа, для клиента это просто "не найдено"
		return nil, ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру, упорядоченные по дате, времени слота и номеру очереди
//
// Внутри транзакции при фильтре по конкретным (дата, слот) строки блокируются FOR UPDATE:
// так use case создания читает занятые номера под блокировкой.
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		OrderBy("booking_date ASC", "start_time ASC", "queue_no ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": domain.NormalizeDate(*filter.Date)})
	}
	if filter.SlotLabel != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_label": *filter.SlotLabel})
	}
	if filter.BookingCode != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_code": *filter.BookingCode})
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil && filter.SlotLabel != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if IsQueueConflict(err) {
			return nil, fmt.Errorf("%w: List - %v", ErrQueueNumberTaken, err)
		}
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Patch обновляет описательные поля бронирования
// Номер очереди, код, дата и слот через Patch не меняются
func (r *Repository) Patch(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		SetMap(patchColumns(patch)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Patch - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Patch - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// Delete удаляет бронирование физически
// Освободившийся номер очереди становится доступен следующему бронированию в том же слоте
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(bookingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func patchColumns(patch domain.BookingPatch) map[string]interface{} {
	set := make(map[string]interface{})
	if patch.SupplierID != nil {
		set["supplier_id"] = *patch.SupplierID
	}
	if patch.SupplierCode != nil {
		set["supplier_code"] = *patch.SupplierCode
	}
	if patch.SupplierName != nil {
		set["supplier_name"] = *patch.SupplierName
	}
	if patch.TruckType != nil {
		set["truck_type"] = *patch.TruckType
	}
	if patch.TruckRegister != nil {
		set["truck_register"] = *patch.TruckRegister
	}
	if patch.RubberType != nil {
		set["rubber_type"] = *patch.RubberType
	}
	if patch.Recorder != nil {
		set["recorder"] = *patch.Recorder
	}
	return set
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Date,
		&booking.SlotLabel,
		&booking.StartTime,
		&booking.EndTime,
		&booking.QueueNo,
		&booking.BookingCode,
		&booking.SupplierID,
		&booking.SupplierCode,
		&booking.SupplierName,
		&booking.TruckType,
		&booking.TruckRegister,
		&booking.RubberType,
		&booking.Recorder,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = domain.NormalizeDate(booking.Date)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
