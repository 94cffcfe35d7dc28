package verify_ticket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/ticket"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/tickets/verify", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	svc := ticket.NewService(nil, "secret", 0, nopLogger{})
	payload := svc.Payload(&domain.Booking{
		Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		SlotLabel:   "08:00-09:00",
		QueueNo:     2,
		BookingCode: "25031502",
	})
	h := NewHandler(svc, nopLogger{})

	rec := post(h, `{"payload":"`+payload+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bookingCode":"25031502","date":"2025-03-15","slotLabel":"08:00-09:00","queueNo":2}`, rec.Body.String())

	assert.Equal(t, http.StatusUnprocessableEntity, post(h, `{"payload":"25031502|2025-03-15|08:00-09:00|2|forged"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `not json`).Code)
}
