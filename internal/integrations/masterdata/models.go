package masterdata

// Supplier поставщик из справочника
type Supplier struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// RubberType тип каучука из справочника
type RubberType struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ErrorResponse модель ошибки от сервиса справочников
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
