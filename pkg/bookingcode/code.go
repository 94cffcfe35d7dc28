// Package bookingcode формирует отображаемый код бронирования.
//
// Код имеет вид YYMMDDQQ: две последние цифры года, месяц, день и номер в очереди,
// дополненный нулями слева до двух знаков (номера от 100 печатаются целиком).
// Код уникален только вместе с датой и слотом бронирования и не должен
// использоваться как глобальный ключ.
package bookingcode

import (
	"fmt"
	"time"
)

// Date минимальный интерфейс календарной даты (удовлетворяется time.Time)
type Date interface {
	Date() (year int, month time.Month, day int)
}

// Generate возвращает код для даты и номера в очереди. Чистая функция.
func Generate(date Date, queueNo int) string {
	year, month, day := date.Date()
	return fmt.Sprintf("%02d%02d%02d%02d", year%100, int(month), day, queueNo)
}
