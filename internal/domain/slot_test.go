package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityWindow(t *testing.T) {
	limit := 4
	bounded := CapacityWindow{Start: 1, Limit: &limit}

	end, ok := bounded.End()
	require.True(t, ok)
	assert.Equal(t, 5, end)
	assert.True(t, bounded.Contains(1))
	assert.True(t, bounded.Contains(4))
	assert.False(t, bounded.Contains(5))
	assert.False(t, bounded.Contains(0))
	assert.Equal(t, 1, *bounded.Remaining(3))
	assert.Equal(t, 0, *bounded.Remaining(7))
	assert.True(t, bounded.IsBounded())

	unbounded := CapacityWindow{Start: 9}
	_, ok = unbounded.End()
	assert.False(t, ok)
	assert.True(t, unbounded.Contains(1000))
	assert.False(t, unbounded.Contains(8))
	assert.Nil(t, unbounded.Remaining(10))
	assert.False(t, unbounded.IsBounded())
}

func TestTimeSlot_DefaultWindow(t *testing.T) {
	capacity := 4
	slot := TimeSlot{Label: "08:00-09:00", BaseCapacity: &capacity}

	window := slot.DefaultWindow()
	assert.Equal(t, DefaultQueueStart, window.Start)
	require.NotNil(t, window.Limit)

	*window.Limit = 1
	assert.Equal(t, 4, *slot.BaseCapacity)
	assert.False(t, slot.IsUnlimited())
}

func TestTimeSlot_DefaultWindow_Unlimited(t *testing.T) {
	slot := TimeSlot{Label: "16:00-17:00", QueueStart: 101}

	window := slot.DefaultWindow()
	assert.True(t, slot.IsUnlimited())
	assert.Equal(t, 101, window.Start)
	assert.False(t, window.IsBounded())
}

func TestBookingPatch_Apply(t *testing.T) {
	truck := "10-wheel"
	name := "ACME Rubber"
	b := &Booking{ID: "x", QueueNo: 3, BookingCode: "25031503", SupplierName: "old"}

	patch := BookingPatch{SupplierName: &name, TruckType: &truck}
	assert.False(t, patch.IsEmpty())
	patch.Apply(b)

	assert.Equal(t, "ACME Rubber", b.SupplierName)
	assert.Equal(t, "10-wheel", *b.TruckType)
	assert.Equal(t, 3, b.QueueNo)
	assert.Equal(t, "25031503", b.BookingCode)
	assert.True(t, BookingPatch{}.IsEmpty())

	truck = "changed"
	assert.Equal(t, "10-wheel", *b.TruckType)
}

func TestBooking_Clone(t *testing.T) {
	register := "70-1234"
	b := &Booking{ID: "x", TruckRegister: &register}

	clone := b.Clone()
	*clone.TruckRegister = "00-0000"

	assert.Equal(t, "70-1234", *b.TruckRegister)
	assert.Nil(t, clone.TruckType)
}

func TestNormalizeDate(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	got := NormalizeDate(time.Date(2025, 3, 15, 23, 30, 0, 0, loc))

	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), got)
}
