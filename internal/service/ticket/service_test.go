package ticket

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	"github.com/m04kA/SMC-TruckQueueService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TruckQueueService/pkg/ptr"
	"github.com/m04kA/SMC-TruckQueueService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type failingRepo struct{}

func (failingRepo) GetByID(context.Context, string) (*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func seed(t *testing.T) (*memory.Repository, *domain.Booking) {
	t.Helper()
	repo := memory.NewRepository()
	b, err := repo.Create(context.Background(), &domain.Booking{
		Date:          time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		SlotLabel:     "10:00-11:00",
		StartTime:     types.MustTimeString("10:00"),
		EndTime:       types.MustTimeString("11:00"),
		QueueNo:       9,
		BookingCode:   "25031509",
		SupplierID:    "SUP-1",
		SupplierCode:  "S01",
		SupplierName:  "Rubber Co",
		TruckRegister: ptr.Ptr("70-1234"),
		RubberType:    "RSS3",
		Recorder:      "clerk",
	})
	require.NoError(t, err)
	return repo, b
}

func TestPayload_RoundTrip(t *testing.T) {
	repo, b := seed(t)
	svc := NewService(repo, "secret", 0, nopLogger{})

	payload := svc.Payload(b)
	assert.True(t, strings.HasPrefix(payload, "25031509|2025-03-15|10:00-11:00|9|"))

	claims, err := svc.Verify(payload)
	require.NoError(t, err)
	assert.Equal(t, &Claims{BookingCode: "25031509", Date: "2025-03-15", SlotLabel: "10:00-11:00", QueueNo: 9}, claims)
}

func TestVerify_Rejects(t *testing.T) {
	repo, b := seed(t)
	svc := NewService(repo, "secret", 0, nopLogger{})
	payload := svc.Payload(b)

	_, err := svc.Verify(strings.Replace(payload, "|9|", "|1|", 1))
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = NewService(repo, "other", 0, nopLogger{}).Verify(payload)
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = svc.Verify("25031509|2025-03-15")
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestRender(t *testing.T) {
	repo, b := seed(t)
	svc := NewService(repo, "secret", 128, nopLogger{})

	png, err := svc.Render(context.Background(), b.ID, FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, "image/png", png.ContentType)
	assert.Equal(t, "ticket-25031509.png", png.FileName)
	assert.True(t, bytes.HasPrefix(png.Body, []byte("\x89PNG")))

	pdf, err := svc.Render(context.Background(), b.ID, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.True(t, bytes.HasPrefix(pdf.Body, []byte("%PDF")))
}

func TestRender_Errors(t *testing.T) {
	repo, b := seed(t)
	svc := NewService(repo, "secret", 0, nopLogger{})

	_, err := svc.Render(context.Background(), b.ID, Format("svg"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = svc.Render(context.Background(), "00000000-0000-0000-0000-000000000000", FormatPNG)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = NewService(failingRepo{}, "secret", 0, nopLogger{}).Render(context.Background(), b.ID, FormatPNG)
	assert.ErrorIs(t, err, ErrInternal)
}
