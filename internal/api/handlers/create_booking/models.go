package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	createBooking "github.com/m04kA/SMC-TruckQueueService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date          string  `json:"date"`      // "2025-03-15"
	SlotLabel     string  `json:"slotLabel"` // "08:00-09:00"
	SupplierID    string  `json:"supplierId"`
	SupplierCode  string  `json:"supplierCode,omitempty"`
	SupplierName  string  `json:"supplierName,omitempty"`
	TruckType     *string `json:"truckType,omitempty"`
	TruckRegister *string `json:"truckRegister,omitempty"`
	RubberType    string  `json:"rubberType"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	SlotLabel     string  `json:"slotLabel"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	QueueNo       int     `json:"queueNo"`
	BookingCode   string  `json:"bookingCode"`
	SupplierID    string  `json:"supplierId"`
	SupplierCode  string  `json:"supplierCode"`
	SupplierName  string  `json:"supplierName"`
	TruckType     *string `json:"truckType,omitempty"`
	TruckRegister *string `json:"truckRegister,omitempty"`
	RubberType    string  `json:"rubberType"`
	Recorder      string  `json:"recorder"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// recorder берется из заголовка идентификации, а не из тела
func (r *CreateBookingRequest) ToUseCaseRequest(recorder string) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Date:          date,
		SlotLabel:     r.SlotLabel,
		SupplierID:    r.SupplierID,
		SupplierCode:  r.SupplierCode,
		SupplierName:  r.SupplierName,
		TruckType:     r.TruckType,
		TruckRegister: r.TruckRegister,
		RubberType:    r.RubberType,
		Recorder:      recorder,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		Date:          resp.Date.Format(domain.DateFormat),
		SlotLabel:     resp.SlotLabel,
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		QueueNo:       resp.QueueNo,
		BookingCode:   resp.BookingCode,
		SupplierID:    resp.SupplierID,
		SupplierCode:  resp.SupplierCode,
		SupplierName:  resp.SupplierName,
		TruckType:     resp.TruckType,
		TruckRegister: resp.TruckRegister,
		RubberType:    resp.RubberType,
		Recorder:      resp.Recorder,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
