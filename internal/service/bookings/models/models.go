package models

import (
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
)

// Поля, которые назначаются при создании и не меняются
const (
	FieldQueueNo     = "queueNo"
	FieldBookingCode = "bookingCode"
	FieldDate        = "date"
	FieldSlotLabel   = "slotLabel"
)

// ImmutableFields ключи JSON, запрещенные в запросе на изменение
var ImmutableFields = []string{FieldQueueNo, FieldBookingCode, FieldDate, FieldSlotLabel}

// Request модели

// UpdateBookingRequest частичное обновление описательных полей
// nil означает "не менять"
type UpdateBookingRequest struct {
	SupplierID    *string `json:"supplierId,omitempty"`
	SupplierCode  *string `json:"supplierCode,omitempty"`
	SupplierName  *string `json:"supplierName,omitempty"`
	TruckType     *string `json:"truckType,omitempty"`
	TruckRegister *string `json:"truckRegister,omitempty"`
	RubberType    *string `json:"rubberType,omitempty"`
	Recorder      *string `json:"recorder,omitempty"`

	// ImmutableFields неизменяемые поля, присутствующие во входном документе
	ImmutableFields []string `json:"-"`
}

// ToDomainPatch конвертирует request в domain patch
func (r *UpdateBookingRequest) ToDomainPatch() domain.BookingPatch {
	return domain.BookingPatch{
		SupplierID:    r.SupplierID,
		SupplierCode:  r.SupplierCode,
		SupplierName:  r.SupplierName,
		TruckType:     r.TruckType,
		TruckRegister: r.TruckRegister,
		RubberType:    r.RubberType,
		Recorder:      r.Recorder,
	}
}

// ListBookingsRequest фильтр списка бронирований
type ListBookingsRequest struct {
	Date        *time.Time
	SlotLabel   *string
	BookingCode *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() domain.BookingFilter {
	return domain.BookingFilter{
		Date:        r.Date,
		SlotLabel:   r.SlotLabel,
		BookingCode: r.BookingCode,
	}
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`      // "2025-03-15"
	SlotLabel     string  `json:"slotLabel"` // "08:00-09:00"
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

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// SlotStatsResponse заполненность слота
type SlotStatsResponse struct {
	Label      string `json:"label"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	QueueStart int    `json:"queueStart"`
	Limit      *int   `json:"limit"` // null - без ограничения
	Booked     int    `json:"booked"`
	Remaining  *int   `json:"remaining"`
	IsFull     bool   `json:"isFull"`
	MaxQueueNo int    `json:"maxQueueNo"`
}

// DayStatsResponse сводка за день
type DayStatsResponse struct {
	Date  string              `json:"date"`
	Total int                 `json:"total"`
	Slots []SlotStatsResponse `json:"slots"`
}

// FromDomainBooking конвертирует domain бронирование в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID,
		Date:          b.Date.Format(domain.DateFormat),
		SlotLabel:     b.SlotLabel,
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		QueueNo:       b.QueueNo,
		BookingCode:   b.BookingCode,
		SupplierID:    b.SupplierID,
		SupplierCode:  b.SupplierCode,
		SupplierName:  b.SupplierName,
		TruckType:     b.TruckType,
		TruckRegister: b.TruckRegister,
		RubberType:    b.RubberType,
		Recorder:      b.Recorder,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBookingList конвертирует список бронирований в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: out, Total: len(out)}
}

// FromDomainDayStats конвертирует статистику дня в response
func FromDomainDayStats(date time.Time, stats *domain.DayStats) *DayStatsResponse {
	slots := make([]SlotStatsResponse, 0, len(stats.Slots))
	for _, s := range stats.Slots {
		slots = append(slots, SlotStatsResponse{
			Label:      s.Slot.Label,
			StartTime:  s.Slot.StartTime.String(),
			EndTime:    s.Slot.EndTime.String(),
			QueueStart: s.Window.Start,
			Limit:      s.Window.Limit,
			Booked:     s.Booked,
			Remaining:  s.Remaining,
			IsFull:     s.IsFull,
			MaxQueueNo: s.MaxQueueNo,
		})
	}
	return &DayStatsResponse{
		Date:  date.Format(domain.DateFormat),
		Total: stats.Total,
		Slots: slots,
	}
}
