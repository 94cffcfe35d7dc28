package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	"github.com/m04kA/SMC-TruckQueueService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date      time.Time // Дата бронирования (без времени)
	SlotLabel string    // Метка слота, например "08:00-09:00"

	SupplierID    string
	SupplierCode  string  // Если пусто, берется из справочника
	SupplierName  string  // Если пусто, берется из справочника
	TruckType     *string // Опционально
	TruckRegister *string // Госномер, опционально
	RubberType    string
	Recorder      string // Кто оформил бронирование
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          string
	Date        time.Time
	SlotLabel   string
	StartTime   types.TimeString
	EndTime     types.TimeString
	QueueNo     int
	BookingCode string

	SupplierID    string
	SupplierCode  string
	SupplierName  string
	TruckType     *string
	TruckRegister *string
	RubberType    string
	Recorder      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		Date:          b.Date,
		SlotLabel:     b.SlotLabel,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		QueueNo:       b.QueueNo,
		BookingCode:   b.BookingCode,
		SupplierID:    b.SupplierID,
		SupplierCode:  b.SupplierCode,
		SupplierName:  b.SupplierName,
		TruckType:     b.TruckType,
		TruckRegister: b.TruckRegister,
		RubberType:    b.RubberType,
		Recorder:      b.Recorder,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
