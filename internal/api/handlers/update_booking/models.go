package update_booking

import (
	"encoding/json"
	"sort"

	"github.com/m04kA/SMC-TruckQueueService/internal/service/bookings/models"
)

// ParseRequest разбирает тело PATCH запроса
// Неизменяемые поля не отбрасываются молча: их имена попадают в ImmutableFields,
// и сервис отклоняет запрос целиком
func ParseRequest(body []byte) (*models.UpdateBookingRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	var req models.UpdateBookingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}

	for _, field := range models.ImmutableFields {
		if _, present := raw[field]; present {
			req.ImmutableFields = append(req.ImmutableFields, field)
		}
	}
	sort.Strings(req.ImmutableFields)

	return &req, nil
}
