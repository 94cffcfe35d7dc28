package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TruckQueueService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// isSlotPast проверяет, что слот на дату уже закончился относительно now
func isSlotPast(date time.Time, end types.TimeString, now time.Time) bool {
	minutes, err := end.Minutes()
	if err != nil {
		return false
	}
	y, m, d := date.Date()
	slotEnd := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Add(time.Duration(minutes) * time.Minute)
	return !now.Before(slotEnd)
}
