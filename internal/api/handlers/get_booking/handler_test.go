package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TruckQueueService/internal/service/bookings"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	bookings map[string]*models.BookingResponse
}

func (f *fakeService) GetByID(_ context.Context, id string) (*models.BookingResponse, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookings.ErrBookingNotFound
	}
	return b, nil
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{bookings: map[string]*models.BookingResponse{
		"b-1": {ID: "b-1", QueueNo: 3, BookingCode: "25031503"},
	}}
	h := NewHandler(svc, nopLogger{})

	rec := serve(h, "/api/v1/bookings/b-1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "25031503", body.BookingCode)

	assert.Equal(t, http.StatusNotFound, serve(h, "/api/v1/bookings/missing").Code)
}
