package domain

import (
	"time"

	"github.com/m04kA/SMC-TruckQueueService/pkg/ptr"
	"github.com/m04kA/SMC-TruckQueueService/pkg/types"
)

// ReferenceSlots эталонная таблица слотов площадки: четыре часовых слота по 4 машины
// и послеобеденный слот без ограничения
func ReferenceSlots() []TimeSlot {
	return []TimeSlot{
		{Label: "08:00-09:00", StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("09:00"), BaseCapacity: ptr.Ptr(4)},
		{Label: "09:00-10:00", StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("10:00"), BaseCapacity: ptr.Ptr(4)},
		{Label: "10:00-11:00", StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("11:00"), BaseCapacity: ptr.Ptr(4)},
		{Label: "11:00-12:00", StartTime: types.MustTimeString("11:00"), EndTime: types.MustTimeString("12:00"), BaseCapacity: ptr.Ptr(4)},
		{Label: "13:00-14:00", StartTime: types.MustTimeString("13:00"), EndTime: types.MustTimeString("14:00")},
	}
}

// ReferenceWeekdayRules в субботу площадка работает до 11:00: доступны три первых слота,
// а 10:00-11:00 принимает всех оставшихся, продолжая нумерацию с 9
func ReferenceWeekdayRules() []WeekdayRule {
	return []WeekdayRule{
		{
			Weekday:      time.Saturday,
			OfferedSlots: []string{"08:00-09:00", "09:00-10:00", "10:00-11:00"},
			Windows: map[string]CapacityWindow{
				"10:00-11:00": {Start: 9, Limit: nil},
			},
		},
	}
}
