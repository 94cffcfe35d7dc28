package ticket

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("ticket service: booking not found")

	// ErrUnsupportedFormat возвращается для неизвестного формата талона
	ErrUnsupportedFormat = errors.New("ticket service: unsupported format")

	// ErrInvalidPayload возвращается, если содержимое QR не прошло проверку подписи
	ErrInvalidPayload = errors.New("ticket service: invalid payload")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ticket service: internal error")
)
