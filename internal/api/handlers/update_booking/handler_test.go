package update_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TruckQueueService/internal/api/middleware"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/bookings"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.UpdateBookingRequest
	err error
}

func (f *fakeService) Update(_ context.Context, id string, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id}, nil
}

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/b-1", strings.NewReader(body))
	req = req.WithContext(middleware.WithRecorder(req.Context(), "clerk"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"truckRegister":"A123BC","queueNo":5,"date":"2025-03-16"}`))
	require.NoError(t, err)
	assert.Equal(t, "A123BC", *req.TruckRegister)
	assert.Equal(t, []string{"date", "queueNo"}, req.ImmutableFields)

	req, err = ParseRequest([]byte(`{"supplierName":"Rubber Co"}`))
	require.NoError(t, err)
	assert.Empty(t, req.ImmutableFields)

	_, err = ParseRequest([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})

	rec := serve(h, `{"truckType":"TRAILER"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.Recorder)
	assert.Equal(t, "clerk", *svc.got.Recorder)

	rec = serve(h, `{"truckType":"TRAILER","recorder":"shift lead"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shift lead", *svc.got.Recorder)

	assert.Equal(t, http.StatusBadRequest, serve(h, `{"truckType":`).Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "immutable", err: fmt.Errorf("%w: queueNo", bookings.ErrImmutableField), status: http.StatusUnprocessableEntity},
		{name: "validation", err: fmt.Errorf("%w: supplierId must not be empty", bookings.ErrValidation), status: http.StatusBadRequest},
		{name: "not found", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "internal", err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, nopLogger{})
			assert.Equal(t, tt.status, serve(h, `{"queueNo":2}`).Code)
		})
	}
}
