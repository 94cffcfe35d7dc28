package booking

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-TruckQueueService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TxBeginner интерфейс для начала транзакций
// Поддерживает *dbmetrics.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error)
}

// Имя уникального ограничения (booking_date, slot_label, queue_no), см. migrations
const queueConstraint = "bookings_date_slot_queue_key"

// Коды ошибок PostgreSQL
const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
)
