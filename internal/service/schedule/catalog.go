package schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
)

// Catalog реестр слотов площадки и исключений по дням недели.
// Единственное место, где дата влияет на выдачу номеров очереди.
// После создания не изменяется и безопасен для конкурентного использования.
type Catalog struct {
	slots []domain.TimeSlot
	index map[string]int
	rules map[time.Weekday]domain.WeekdayRule
}

// NewCatalog создает каталог и проверяет таблицу слотов
func NewCatalog(slots []domain.TimeSlot, rules []domain.WeekdayRule) (*Catalog, error) {
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: no slots configured", ErrInvalidConfig)
	}

	c := &Catalog{
		slots: make([]domain.TimeSlot, 0, len(slots)),
		index: make(map[string]int, len(slots)),
		rules: make(map[time.Weekday]domain.WeekdayRule, len(rules)),
	}

	for _, slot := range slots {
		if err := validateSlot(slot); err != nil {
			return nil, err
		}
		if _, exists := c.index[slot.Label]; exists {
			return nil, fmt.Errorf("%w: duplicate slot label %q", ErrInvalidConfig, slot.Label)
		}
		c.index[slot.Label] = len(c.slots)
		c.slots = append(c.slots, slot)
	}

	for _, rule := range rules {
		if _, exists := c.rules[rule.Weekday]; exists {
			return nil, fmt.Errorf("%w: duplicate rule for %s", ErrInvalidConfig, rule.Weekday)
		}
		for _, label := range rule.OfferedSlots {
			if _, ok := c.index[label]; !ok {
				return nil, fmt.Errorf("%w: %s rule offers unknown slot %q", ErrInvalidConfig, rule.Weekday, label)
			}
		}
		for label, window := range rule.Windows {
			if _, ok := c.index[label]; !ok {
				return nil, fmt.Errorf("%w: %s rule overrides unknown slot %q", ErrInvalidConfig, rule.Weekday, label)
			}
			if !rule.Offers(label) {
				return nil, fmt.Errorf("%w: %s rule overrides slot %q it does not offer", ErrInvalidConfig, rule.Weekday, label)
			}
			if err := validateWindow(window); err != nil {
				return nil, fmt.Errorf("%w: %s rule, slot %q", err, rule.Weekday, label)
			}
		}
		c.rules[rule.Weekday] = rule
	}

	return c, nil
}

// MustReference каталог с эталонной конфигурацией площадки
func MustReference() *Catalog {
	c, err := NewCatalog(domain.ReferenceSlots(), domain.ReferenceWeekdayRules())
	if err != nil {
		panic(err)
	}
	return c
}

// All возвращает полную таблицу слотов в порядке конфигурации
func (c *Catalog) All() []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(c.slots))
	copy(out, c.slots)
	return out
}

// Rules возвращает исключения по дням недели, упорядоченные по дню
func (c *Catalog) Rules() []domain.WeekdayRule {
	out := make([]domain.WeekdayRule, 0, len(c.rules))
	for day := time.Sunday; day <= time.Saturday; day++ {
		if rule, ok := c.rules[day]; ok {
			out = append(out, rule)
		}
	}
	return out
}

// AvailableSlots возвращает слоты, доступные на дату, в порядке таблицы
func (c *Catalog) AvailableSlots(date time.Time) []domain.TimeSlot {
	rule, ok := c.rules[date.Weekday()]
	if !ok {
		return c.All()
	}

	out := make([]domain.TimeSlot, 0, len(c.slots))
	for _, slot := range c.slots {
		if rule.Offers(slot.Label) {
			out = append(out, slot)
		}
	}
	return out
}

// Slot возвращает слот по метке, если он доступен на дату
func (c *Catalog) Slot(label string, date time.Time) (domain.TimeSlot, error) {
	i, ok := c.index[label]
	if !ok {
		return domain.TimeSlot{}, fmt.Errorf("%w: %q", ErrUnknownSlot, label)
	}
	if rule, hasRule := c.rules[date.Weekday()]; hasRule && !rule.Offers(label) {
		return domain.TimeSlot{}, fmt.Errorf("%w: %q on %s", ErrUnknownSlot, label, date.Weekday())
	}
	return c.slots[i], nil
}

// Resolve вычисляет эффективное окно номеров очереди для (слот, дата)
func (c *Catalog) Resolve(label string, date time.Time) (domain.CapacityWindow, error) {
	slot, err := c.Slot(label, date)
	if err != nil {
		return domain.CapacityWindow{}, err
	}

	if rule, ok := c.rules[date.Weekday()]; ok {
		if window, overridden := rule.Windows[label]; overridden {
			return copyWindow(window), nil
		}
	}

	return slot.DefaultWindow(), nil
}

func validateSlot(slot domain.TimeSlot) error {
	if slot.Label == "" {
		return fmt.Errorf("%w: slot label is empty", ErrInvalidConfig)
	}
	if err := slot.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: slot %q start time: %v", ErrInvalidConfig, slot.Label, err)
	}
	if err := slot.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: slot %q end time: %v", ErrInvalidConfig, slot.Label, err)
	}
	if !slot.EndTime.IsAfter(slot.StartTime) {
		return fmt.Errorf("%w: slot %q ends before it starts", ErrInvalidConfig, slot.Label)
	}
	if slot.BaseCapacity != nil && *slot.BaseCapacity <= 0 {
		return fmt.Errorf("%w: slot %q capacity must be positive", ErrInvalidConfig, slot.Label)
	}
	if slot.QueueStart < 0 {
		return fmt.Errorf("%w: slot %q queue start must not be negative", ErrInvalidConfig, slot.Label)
	}
	return nil
}

func validateWindow(w domain.CapacityWindow) error {
	if w.Start < 1 {
		return fmt.Errorf("%w: window start must be positive", ErrInvalidConfig)
	}
	if w.Limit != nil && *w.Limit <= 0 {
		return fmt.Errorf("%w: window limit must be positive", ErrInvalidConfig)
	}
	return nil
}

// окно отдается наружу копией, чтобы вызывающий не мог изменить лимит в таблице
func copyWindow(w domain.CapacityWindow) domain.CapacityWindow {
	if !w.IsBounded() {
		return w
	}
	limit := *w.Limit
	return domain.CapacityWindow{Start: w.Start, Limit: &limit}
}
