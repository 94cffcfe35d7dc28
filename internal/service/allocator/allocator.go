// Package allocator выдает номера очереди внутри окна слота.
//
// Выбирается наименьший свободный номер в [start, start+limit), поэтому номер удаленного
// бронирования снова выдается раньше еще не выданных номеров. Номер вне окна не
// возвращается никогда.
package allocator

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
)

var ErrSlotFull = errors.New("service.allocator: slot is full")

// NextQueueNumber возвращает наименьший свободный номер в окне или ErrSlotFull
func NextQueueNumber(window domain.CapacityWindow, occupied map[int]struct{}) (int, error) {
	end, bounded := window.End()

	// для безлимитного окна цикл завершится не позже start+len(occupied)
	for candidate := window.Start; !bounded || candidate < end; candidate++ {
		if _, taken := occupied[candidate]; !taken {
			return candidate, nil
		}
	}

	return 0, fmt.Errorf("%w: all %d numbers from %d are taken", ErrSlotFull, end-window.Start, window.Start)
}

// IsSlotFull проверка для отображения: в ограниченном окне не осталось свободных номеров
func IsSlotFull(window domain.CapacityWindow, occupied map[int]struct{}) bool {
	_, err := NextQueueNumber(window, occupied)
	return err != nil
}

// Occupied собирает занятые номера из бронирований одного (дата, слот)
func Occupied(bookings []*domain.Booking) map[int]struct{} {
	out := make(map[int]struct{}, len(bookings))
	for _, b := range bookings {
		out[b.QueueNo] = struct{}{}
	}
	return out
}

// CountInWindow количество занятых номеров, попадающих в окно
func CountInWindow(window domain.CapacityWindow, occupied map[int]struct{}) int {
	count := 0
	for n := range occupied {
		if window.Contains(n) {
			count++
		}
	}
	return count
}
