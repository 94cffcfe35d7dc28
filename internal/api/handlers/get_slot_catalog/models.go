package get_slot_catalog

import (
	"sort"

	"github.com/m04kA/SMC-TruckQueueService/internal/domain"
)

// CatalogResponse конфигурация слотов и правил по дням недели
type CatalogResponse struct {
	Date  *string        `json:"date,omitempty"` // Если запрошен срез на дату
	Slots []SlotResponse `json:"slots"`
	Rules []RuleResponse `json:"rules"`
}

// SlotResponse слот каталога
type SlotResponse struct {
	Label        string `json:"label"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	BaseCapacity *int   `json:"baseCapacity"` // null - без ограничения
	QueueStart   int    `json:"queueStart"`
}

// RuleResponse правило дня недели
type RuleResponse struct {
	Weekday      string           `json:"weekday"`
	OfferedSlots []string         `json:"offeredSlots"` // null - все слоты
	Windows      []WindowResponse `json:"windows,omitempty"`
}

// WindowResponse переопределенное окно номеров слота
type WindowResponse struct {
	SlotLabel  string `json:"slotLabel"`
	QueueStart int    `json:"queueStart"`
	Limit      *int   `json:"limit"`
}

// FromDomain конвертирует каталог в response
func FromDomain(slots []domain.TimeSlot, rules []domain.WeekdayRule) *CatalogResponse {
	resp := &CatalogResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
		Rules: make([]RuleResponse, 0, len(rules)),
	}

	for _, s := range slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			Label:        s.Label,
			StartTime:    s.StartTime.String(),
			EndTime:      s.EndTime.String(),
			BaseCapacity: s.BaseCapacity,
			QueueStart:   s.DefaultWindow().Start,
		})
	}

	for _, rule := range rules {
		rr := RuleResponse{
			Weekday:      rule.Weekday.String(),
			OfferedSlots: rule.OfferedSlots,
		}
		for label, w := range rule.Windows {
			rr.Windows = append(rr.Windows, WindowResponse{SlotLabel: label, QueueStart: w.Start, Limit: w.Limit})
		}
		// map без порядка, ответ должен быть стабильным
		sort.Slice(rr.Windows, func(i, j int) bool { return rr.Windows[i].SlotLabel < rr.Windows[j].SlotLabel })
		resp.Rules = append(resp.Rules, rr)
	}

	return resp
}
