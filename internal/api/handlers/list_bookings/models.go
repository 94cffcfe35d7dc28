package list_bookings

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтр из query параметров; пустые параметры не фильтруют
func ToServiceRequest(dateStr, slotStr, codeStr string) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if dateStr != "" {
		date, err := domain.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", dateStr, err)
		}
		req.Date = &date
	}

	if slot := strings.TrimSpace(slotStr); slot != "" {
		req.SlotLabel = &slot
	}

	if code := strings.TrimSpace(codeStr); code != "" {
		req.BookingCode = &code
	}

	return req, nil
}
