package domain

import "time"

// Queue allocation defaults
const (
	DefaultQueueStart       = 1
	DefaultMaxCreateRetries = 3
)

// Business validation constants
const (
	MaxSupplierFieldLength = 255
	MaxTruckFieldLength    = 64
	MaxRecorderLength      = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// NormalizeDate отбрасывает время и часовой пояс, оставляя календарную дату (полночь UTC)
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate парсит дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDate(t), nil
}
