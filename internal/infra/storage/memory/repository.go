// Package memory хранилище бронирований в памяти процесса.
// Реализует тот же контракт, что и PostgreSQL-репозиторий, включая уникальность
// (дата, слот, номер очереди), и используется для локального запуска и тестов.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TruckQueueService/internal/infra/storage/booking"
)

type queueKey struct {
	date    string
	slot    string
	queueNo int
}

// Repository потокобезопасное хранилище бронирований
type Repository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
	queue    map[queueKey]string
	now      func() time.Time
}

// NewRepository создает пустое хранилище
func NewRepository() *Repository {
	return &Repository{
		bookings: make(map[string]*domain.Booking),
		queue:    make(map[queueKey]string),
		now:      time.Now,
	}
}

func keyOf(b *domain.Booking) queueKey {
	return queueKey{date: b.Date.Format(domain.DateFormat), slot: b.SlotLabel, queueNo: b.QueueNo}
}

// Create сохраняет бронирование; занятый номер очереди возвращается как ErrQueueNumberTaken
func (r *Repository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := booking.Clone()
	stored.Date = domain.NormalizeDate(stored.Date)

	key := keyOf(stored)
	if _, taken := r.queue[key]; taken {
		return nil, fmt.Errorf("%w: Create - date=%s, slot=%s, queue_no=%d",
			bookingRepo.ErrQueueNumberTaken, key.date, key.slot, key.queueNo)
	}

	now := r.now()
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.bookings[stored.ID] = stored
	r.queue[key] = stored.ID

	return stored.Clone(), nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b.Clone(), nil
}

// List возвращает бронирования по фильтру в порядке дата, время слота, номер очереди
func (r *Repository) List(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var date string
	if filter.Date != nil {
		date = domain.NormalizeDate(*filter.Date).Format(domain.DateFormat)
	}

	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.Date != nil && b.Date.Format(domain.DateFormat) != date {
			continue
		}
		if filter.SlotLabel != nil && b.SlotLabel != *filter.SlotLabel {
			continue
		}
		if filter.BookingCode != nil && b.BookingCode != *filter.BookingCode {
			continue
		}
		out = append(out, b.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime.IsBefore(out[j].StartTime)
		}
		return out[i].QueueNo < out[j].QueueNo
	})

	return out, nil
}

// Patch обновляет описательные поля
func (r *Repository) Patch(_ context.Context, id string, patch domain.BookingPatch) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}

	if !patch.IsEmpty() {
		patch.Apply(b)
		b.UpdatedAt = r.now()
	}

	return b.Clone(), nil
}

// Delete удаляет бронирование и освобождает его номер очереди
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	delete(r.queue, keyOf(b))
	delete(r.bookings, id)
	return nil
}
