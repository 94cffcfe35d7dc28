package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TruckQueueService/pkg/types"
)

// Request модель запроса на получение доски слотов
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response модель ответа: слоты, доступные на дату
type Response struct {
	Date  time.Time
	Slots []Slot
}

// Slot состояние слота на дату
type Slot struct {
	Label       string
	StartTime   types.TimeString
	EndTime     types.TimeString
	QueueStart  int  // Первый номер окна
	Limit       *int // nil - без ограничения
	Booked      int  // Занято номеров в окне
	Remaining   *int // nil - без ограничения
	IsFull      bool
	NextQueueNo *int // Номер, который получит следующее бронирование; nil, если слот заполнен
	IsPast      bool // Слот уже закончился
}
