package domain

import (
	"time"

	"github.com/m04kA/SMC-TruckQueueService/pkg/types"
)

// TimeSlot represents a fixed daily check-in window at the facility
type TimeSlot struct {
	Label        string // "08:00-09:00"
	StartTime    types.TimeString
	EndTime      types.TimeString
	BaseCapacity *int // nil = unlimited
	QueueStart   int  // первый номер очереди слота, 0 трактуется как DefaultQueueStart
}

// IsUnlimited returns true if the slot has no base capacity
func (s TimeSlot) IsUnlimited() bool {
	return s.BaseCapacity == nil
}

// DefaultWindow returns the allocation window used when no weekday rule overrides it
func (s TimeSlot) DefaultWindow() CapacityWindow {
	start := s.QueueStart
	if start <= 0 {
		start = DefaultQueueStart
	}

	window := CapacityWindow{Start: start}
	if !s.IsUnlimited() {
		limit := *s.BaseCapacity
		window.Limit = &limit
	}
	return window
}

// CapacityWindow is the effective range of queue numbers for a (date, slot)
// Numbers [Start, Start+Limit) are assignable; Limit == nil means unbounded
type CapacityWindow struct {
	Start int
	Limit *int
}

// IsBounded returns true if the window has a capacity limit
func (w CapacityWindow) IsBounded() bool {
	return w.Limit != nil
}

// End returns the first number after the window (exclusive); ok is false for unbounded windows
func (w CapacityWindow) End() (end int, ok bool) {
	if !w.IsBounded() {
		return 0, false
	}
	return w.Start + *w.Limit, true
}

// Contains returns true if the queue number is inside the window
func (w CapacityWindow) Contains(queueNo int) bool {
	if queueNo < w.Start {
		return false
	}
	end, bounded := w.End()
	return !bounded || queueNo < end
}

// Remaining returns how many numbers are still free given the count of occupied ones;
// nil for unbounded windows
func (w CapacityWindow) Remaining(occupied int) *int {
	if !w.IsBounded() {
		return nil
	}
	remaining := *w.Limit - occupied
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// WeekdayRule декларативное исключение расписания для дня недели
type WeekdayRule struct {
	Weekday time.Weekday
	// OfferedSlots метки слотов, доступных в этот день; nil - все слоты
	OfferedSlots []string
	// Windows переопределение окна выдачи номеров для конкретных слотов
	Windows map[string]CapacityWindow
}

// Offers returns true if the rule keeps the slot in the day's schedule
func (r WeekdayRule) Offers(label string) bool {
	if r.OfferedSlots == nil {
		return true
	}
	for _, offered := range r.OfferedSlots {
		if offered == label {
			return true
		}
	}
	return false
}
