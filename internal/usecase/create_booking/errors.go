package create_booking

import "errors"

var (
	// ErrValidation возвращается при некорректных входных данных, обращения к хранилищу не было
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrUnknownSlot возвращается, когда слот не предлагается на указанную дату
	ErrUnknownSlot = errors.New("create_booking: slot is not offered on this date")

	// ErrSlotFull возвращается, когда в окне слота нет свободных номеров
	// или исчерпан лимит повторов при конкурентных бронированиях
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrSupplierNotFound возвращается, когда поставщик отсутствует в справочнике
	ErrSupplierNotFound = errors.New("create_booking: supplier not found")

	// ErrRubberTypeNotFound возвращается, когда тип каучука отсутствует в справочнике
	ErrRubberTypeNotFound = errors.New("create_booking: rubber type not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
