package domain

// SlotStats заполненность одного слота на дату
type SlotStats struct {
	Slot       TimeSlot
	Window     CapacityWindow
	Booked     int
	Remaining  *int // nil для безлимитного окна
	IsFull     bool
	MaxQueueNo int // 0, если бронирований нет
}

// DayStats сводка бронирований за день
type DayStats struct {
	Total int
	Slots []SlotStats
}
