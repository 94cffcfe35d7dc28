package domain

import (
	"time"

	"github.com/m04kA/SMC-TruckQueueService/pkg/types"
)

// Booking represents a truck delivery booking in a daily time slot
type Booking struct {
	ID        string    // назначается хранилищем
	Date      time.Time // календарная дата (полночь UTC)
	SlotLabel string
	StartTime types.TimeString // копируется из слота при создании
	EndTime   types.TimeString

	// Назначаются один раз при создании и больше не меняются
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

// BookingFilter фильтр списка бронирований, все поля опциональны
type BookingFilter struct {
	Date        *time.Time
	SlotLabel   *string
	BookingCode *string
}

// BookingPatch изменяемые (описательные) поля бронирования
// nil означает "не менять"
type BookingPatch struct {
	SupplierID    *string
	SupplierCode  *string
	SupplierName  *string
	TruckType     *string
	TruckRegister *string
	RubberType    *string
	Recorder      *string
}

// IsEmpty returns true if the patch changes nothing
func (p BookingPatch) IsEmpty() bool {
	return p.SupplierID == nil &&
		p.SupplierCode == nil &&
		p.SupplierName == nil &&
		p.TruckType == nil &&
		p.TruckRegister == nil &&
		p.RubberType == nil &&
		p.Recorder == nil
}

// Apply applies the patch to the booking in place; identity fields are never touched
func (p BookingPatch) Apply(b *Booking) {
	if p.SupplierID != nil {
		b.SupplierID = *p.SupplierID
	}
	if p.SupplierCode != nil {
		b.SupplierCode = *p.SupplierCode
	}
	if p.SupplierName != nil {
		b.SupplierName = *p.SupplierName
	}
	if p.TruckType != nil {
		b.TruckType = copyString(p.TruckType)
	}
	if p.TruckRegister != nil {
		b.TruckRegister = copyString(p.TruckRegister)
	}
	if p.RubberType != nil {
		b.RubberType = *p.RubberType
	}
	if p.Recorder != nil {
		b.Recorder = *p.Recorder
	}
}

// Clone возвращает копию бронирования, не разделяющую указатели с исходным
func (b *Booking) Clone() *Booking {
	out := *b
	out.TruckType = copyString(b.TruckType)
	out.TruckRegister = copyString(b.TruckRegister)
	return &out
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
