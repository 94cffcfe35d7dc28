package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	"github.com/m04kA/SMC-TruckQueueService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TruckQueueService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/schedule"
	"github.com/m04kA/SMC-TruckQueueService/pkg/bookingcode"
	"github.com/m04kA/SMC-TruckQueueService/pkg/ptr"
	"github.com/m04kA/SMC-TruckQueueService/pkg/types"
)

var saturday = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingPublisher struct {
	events []notifier.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e notifier.Event) error {
	p.events = append(p.events, e)
	return nil
}

// countingRepo считает обращения к хранилищу
type countingRepo struct {
	*memory.Repository
	patchCalls int
}

func (r *countingRepo) Patch(ctx context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	r.patchCalls++
	return r.Repository.Patch(ctx, id, patch)
}

func seed(t *testing.T, repo *memory.Repository, date time.Time, slot string, start string, queueNo int) *domain.Booking {
	t.Helper()
	b, err := repo.Create(context.Background(), &domain.Booking{
		Date:         date,
		SlotLabel:    slot,
		StartTime:    types.MustTimeString(start),
		QueueNo:      queueNo,
		BookingCode:  bookingcode.Generate(date, queueNo),
		SupplierID:   "SUP-1",
		SupplierName: "Rubber Co",
		RubberType:   "RSS3",
		Recorder:     "clerk",
	})
	require.NoError(t, err)
	return b
}

func newService(repo BookingRepository, pub EventPublisher) *Service {
	return NewService(repo, schedule.MustReference(), pub, nopLogger{})
}

func TestUpdate_DescriptiveFields(t *testing.T) {
	mem := memory.NewRepository()
	pub := &recordingPublisher{}
	svc := newService(mem, pub)
	b := seed(t, mem, saturday, "08:00-09:00", "08:00", 1)

	resp, err := svc.Update(context.Background(), b.ID, &models.UpdateBookingRequest{
		TruckRegister: ptr.Ptr("70-1234"),
		Recorder:      ptr.Ptr("night shift"),
	})
	require.NoError(t, err)

	assert.Equal(t, "70-1234", *resp.TruckRegister)
	assert.Equal(t, "night shift", resp.Recorder)
	assert.Equal(t, 1, resp.QueueNo)
	assert.Equal(t, "25031501", resp.BookingCode)
	require.Len(t, pub.events, 1)
	assert.Equal(t, notifier.EventBookingUpdated, pub.events[0].Type)
}

func TestUpdate_ImmutableFieldRejectedWithoutPersistence(t *testing.T) {
	repo := &countingRepo{Repository: memory.NewRepository()}
	svc := newService(repo, nil)
	b := seed(t, repo.Repository, saturday, "08:00-09:00", "08:00", 1)

	_, err := svc.Update(context.Background(), b.ID, &models.UpdateBookingRequest{
		SupplierName:    ptr.Ptr("changed"),
		ImmutableFields: []string{models.FieldQueueNo},
	})

	assert.ErrorIs(t, err, ErrImmutableField)
	assert.Zero(t, repo.patchCalls)

	stored, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rubber Co", stored.SupplierName)
}

func TestUpdate_Validation(t *testing.T) {
	mem := memory.NewRepository()
	svc := newService(mem, nil)
	b := seed(t, mem, saturday, "08:00-09:00", "08:00", 1)

	_, err := svc.Update(context.Background(), b.ID, &models.UpdateBookingRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(context.Background(), b.ID, &models.UpdateBookingRequest{SupplierID: ptr.Ptr(" ")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Update(context.Background(), b.ID, &models.UpdateBookingRequest{RubberType: ptr.Ptr("")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newService(memory.NewRepository(), nil)

	_, err := svc.Update(context.Background(), "missing", &models.UpdateBookingRequest{Recorder: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDelete(t *testing.T) {
	mem := memory.NewRepository()
	pub := &recordingPublisher{}
	svc := newService(mem, pub)
	keep := seed(t, mem, saturday, "08:00-09:00", "08:00", 1)
	gone := seed(t, mem, saturday, "08:00-09:00", "08:00", 2)

	require.NoError(t, svc.Delete(context.Background(), gone.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), gone.ID), ErrBookingNotFound)

	// остальные бронирования не перенумеровываются
	kept, err := svc.GetByID(context.Background(), keep.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, kept.QueueNo)
	assert.Equal(t, "25031501", kept.BookingCode)

	require.Len(t, pub.events, 1)
	assert.Equal(t, notifier.EventBookingDeleted, pub.events[0].Type)
	assert.Equal(t, 2, pub.events[0].QueueNo)
}

func TestList(t *testing.T) {
	mem := memory.NewRepository()
	svc := newService(mem, nil)
	seed(t, mem, saturday, "08:00-09:00", "08:00", 1)
	seed(t, mem, saturday, "09:00-10:00", "09:00", 1)
	seed(t, mem, saturday.AddDate(0, 0, 2), "08:00-09:00", "08:00", 1)

	all, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	byDate, err := svc.List(context.Background(), &models.ListBookingsRequest{Date: ptr.Ptr(saturday)})
	require.NoError(t, err)
	assert.Equal(t, 2, byDate.Total)

	byCode, err := svc.List(context.Background(), &models.ListBookingsRequest{BookingCode: ptr.Ptr("25031701")})
	require.NoError(t, err)
	require.Equal(t, 1, byCode.Total)
	assert.Equal(t, "2025-03-17", byCode.Bookings[0].Date)
}

func TestGetDayStats_Saturday(t *testing.T) {
	mem := memory.NewRepository()
	svc := newService(mem, nil)
	for n := 1; n <= 4; n++ {
		seed(t, mem, saturday, "08:00-09:00", "08:00", n)
	}
	seed(t, mem, saturday, "09:00-10:00", "09:00", 2)
	seed(t, mem, saturday, "10:00-11:00", "10:00", 9)
	seed(t, mem, saturday, "10:00-11:00", "10:00", 10)

	stats, err := svc.GetDayStats(context.Background(), saturday)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-15", stats.Date)
	assert.Equal(t, 7, stats.Total)
	require.Len(t, stats.Slots, 3)

	first := stats.Slots[0]
	assert.Equal(t, 4, first.Booked)
	assert.True(t, first.IsFull)
	assert.Equal(t, 0, *first.Remaining)

	second := stats.Slots[1]
	assert.Equal(t, 1, second.Booked)
	assert.False(t, second.IsFull)
	assert.Equal(t, 3, *second.Remaining)
	assert.Equal(t, 2, second.MaxQueueNo)

	overflow := stats.Slots[2]
	assert.Equal(t, 9, overflow.QueueStart)
	assert.Nil(t, overflow.Limit)
	assert.Nil(t, overflow.Remaining)
	assert.Equal(t, 2, overflow.Booked)
	assert.False(t, overflow.IsFull)
	assert.Equal(t, 10, overflow.MaxQueueNo)
}
