package masterdata

import "errors"

var (
	// ErrSupplierNotFound возвращается, когда поставщик не найден в справочнике
	ErrSupplierNotFound = errors.New("masterdata client: supplier not found")

	// ErrRubberTypeNotFound возвращается, когда тип каучука не найден в справочнике
	ErrRubberTypeNotFound = errors.New("masterdata client: rubber type not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("masterdata client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("masterdata client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Справочники недоступны, бронирование создается по данным из запроса
	ErrServiceDegraded = errors.New("masterdata unavailable: graceful degradation applied")
)
