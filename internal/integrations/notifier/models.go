package notifier

import "time"

// EventType тип события бронирования
type EventType string

const (
	EventBookingCreated EventType = "booking.created"
	EventBookingUpdated EventType = "booking.updated"
	EventBookingDeleted EventType = "booking.deleted"
)

// Event событие для подсистемы рассылки: клиенты получают его и перечитывают состояние слота
type Event struct {
	Type        EventType `json:"type"`
	BookingID   string    `json:"bookingId"`
	Date        string    `json:"date"`
	SlotLabel   string    `json:"slotLabel"`
	QueueNo     int       `json:"queueNo"`
	BookingCode string    `json:"bookingCode"`
	OccurredAt  time.Time `json:"occurredAt"`
}
