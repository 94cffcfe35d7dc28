package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings service: booking not found")

	// ErrImmutableField возвращается при попытке изменить номер очереди, код, дату или слот
	ErrImmutableField = errors.New("bookings service: field cannot be changed")

	// ErrValidation возвращается при некорректных входных данных
	ErrValidation = errors.New("bookings service: validation failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
