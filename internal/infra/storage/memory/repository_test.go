package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TruckQueueService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TruckQueueService/pkg/ptr"
	"github.com/m04kA/SMC-TruckQueueService/pkg/types"
)

var day = time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

func newBooking(slot string, start string, queueNo int) *domain.Booking {
	return &domain.Booking{
		Date:         day,
		SlotLabel:    slot,
		StartTime:    types.MustTimeString(start),
		QueueNo:      queueNo,
		SupplierID:   "SUP-1",
		SupplierName: "Rubber Co",
		RubberType:   "RSS3",
		Recorder:     "clerk",
	}
}

func TestCreate_AssignsIdentity(t *testing.T) {
	repo := NewRepository()

	created, err := repo.Create(context.Background(), newBooking("08:00-09:00", "08:00", 1))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreate_QueueNumberIsUnique(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, newBooking("08:00-09:00", "08:00", 1))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking("08:00-09:00", "08:00", 1))
	assert.ErrorIs(t, err, bookingRepo.ErrQueueNumberTaken)
	assert.True(t, bookingRepo.IsQueueConflict(err))

	// тот же номер в другом слоте допустим
	_, err = repo.Create(ctx, newBooking("09:00-10:00", "09:00", 1))
	assert.NoError(t, err)
}

func TestDelete_FreesQueueNumber(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newBooking("08:00-09:00", "08:00", 2))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), bookingRepo.ErrBookingNotFound)

	_, err = repo.Create(ctx, newBooking("08:00-09:00", "08:00", 2))
	assert.NoError(t, err)
}

func TestList_FilterAndOrder(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, b := range []*domain.Booking{
		newBooking("09:00-10:00", "09:00", 1),
		newBooking("08:00-09:00", "08:00", 3),
		newBooking("08:00-09:00", "08:00", 1),
	} {
		_, err := repo.Create(ctx, b)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, domain.BookingFilter{Date: ptr.Ptr(day)})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "08:00-09:00", all[0].SlotLabel)
	assert.Equal(t, 1, all[0].QueueNo)
	assert.Equal(t, 3, all[1].QueueNo)
	assert.Equal(t, "09:00-10:00", all[2].SlotLabel)

	slot, err := repo.List(ctx, domain.BookingFilter{Date: ptr.Ptr(day), SlotLabel: ptr.Ptr("08:00-09:00")})
	require.NoError(t, err)
	assert.Len(t, slot, 2)

	other, err := repo.List(ctx, domain.BookingFilter{Date: ptr.Ptr(day.AddDate(0, 0, 1))})
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestPatch(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newBooking("08:00-09:00", "08:00", 1))
	require.NoError(t, err)

	updated, err := repo.Patch(ctx, created.ID, domain.BookingPatch{TruckRegister: ptr.Ptr("70-1234")})
	require.NoError(t, err)
	assert.Equal(t, "70-1234", *updated.TruckRegister)
	assert.Equal(t, 1, updated.QueueNo)

	_, err = repo.Patch(ctx, "missing", domain.BookingPatch{})
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestReturnedBookingsAreCopies(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newBooking("08:00-09:00", "08:00", 1))
	require.NoError(t, err)
	created.QueueNo = 99

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.QueueNo)
}

func TestStoredBookingDoesNotShareCallerStrings(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	truck := "trailer"
	input := newBooking("08:00-09:00", "08:00", 1)
	input.TruckType = &truck

	created, err := repo.Create(ctx, input)
	require.NoError(t, err)
	truck = "changed"
	*created.TruckType = "changed too"

	register := "70-1234"
	patched, err := repo.Patch(ctx, created.ID, domain.BookingPatch{TruckRegister: &register})
	require.NoError(t, err)
	register = "00-0000"
	*patched.TruckRegister = "11-1111"

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TruckType)
	require.NotNil(t, got.TruckRegister)
	assert.Equal(t, "trailer", *got.TruckType)
	assert.Equal(t, "70-1234", *got.TruckRegister)

	listed, err := repo.List(ctx, domain.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	*listed[0].TruckType = "mutated via list"

	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "trailer", *got.TruckType)
}
