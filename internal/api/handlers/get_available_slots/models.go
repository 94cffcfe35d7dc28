package get_available_slots

import (
	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TruckQueueService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date  string          `json:"date"`
	Slots []AvailableSlot `json:"slots"`
}

// AvailableSlot состояние слота на дату
type AvailableSlot struct {
	Label       string `json:"label"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	QueueStart  int    `json:"queueStart"`
	Limit       *int   `json:"limit"`     // null - без ограничения
	Booked      int    `json:"booked"`
	Remaining   *int   `json:"remaining"` // null - без ограничения
	IsFull      bool   `json:"isFull"`
	NextQueueNo *int   `json:"nextQueueNo"`
	IsPast      bool   `json:"isPast"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Label:       slot.Label,
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			QueueStart:  slot.QueueStart,
			Limit:       slot.Limit,
			Booked:      slot.Booked,
			Remaining:   slot.Remaining,
			IsFull:      slot.IsFull,
			NextQueueNo: slot.NextQueueNo,
			IsPast:      slot.IsPast,
		}
	}

	return &AvailableSlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{Date: date}, nil
}
