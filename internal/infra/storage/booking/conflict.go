package booking

import (
	"errors"

	"github.com/lib/pq"
)

// IsQueueConflict возвращает true, если ошибка означает потерянную гонку за номер очереди:
// нарушение уникальности (дата, слот, номер) или отказ сериализации транзакции.
// Отказ сериализации может прийти и на COMMIT, поэтому проверяется вся цепочка ошибок.
func IsQueueConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQueueNumberTaken) {
		return true
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch string(pqErr.Code) {
	case pqSerializationFailure:
		return true
	case pqUniqueViolation:
		return pqErr.Constraint == "" || pqErr.Constraint == queueConstraint
	default:
		return false
	}
}
