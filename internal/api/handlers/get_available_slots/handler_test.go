package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-TruckQueueService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TruckQueueService/pkg/ptr"
	"github.com/m04kA/SMC-TruckQueueService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		Date: req.Date,
		Slots: []getAvailableSlots.Slot{
			{
				Label:       "10:00-11:00",
				StartTime:   types.MustTimeString("10:00"),
				EndTime:     types.MustTimeString("11:00"),
				QueueStart:  9,
				Booked:      2,
				NextQueueNo: ptr.Ptr(11),
			},
		},
	}, nil
}

func get(h *Handler, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	rec := get(h, "/api/v1/slots?date=2025-03-15")
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-15", body.Date)
	require.Len(t, body.Slots, 1)
	assert.Nil(t, body.Slots[0].Limit)
	assert.Equal(t, 11, *body.Slots[0].NextQueueNo)
	assert.Equal(t, "10:00", body.Slots[0].StartTime)

	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/slots").Code)
	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/slots?date=tomorrow").Code)
}

func TestHandle_Errors(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: errors.New("boom")}, nopLogger{})
	assert.Equal(t, http.StatusInternalServerError, get(h, "/api/v1/slots?date=2025-03-15").Code)

	h = NewHandler(&fakeUseCase{err: getAvailableSlots.ErrInvalidInput}, nopLogger{})
	assert.Equal(t, http.StatusBadRequest, get(h, "/api/v1/slots?date=2025-03-15").Code)
}

func TestToUseCaseRequest(t *testing.T) {
	req, err := ToUseCaseRequest("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), req.Date)
}
