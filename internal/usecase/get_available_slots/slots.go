package get_available_slots

import (
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/timerange"
)

// applicableWindows собирает рабочие окна преподавателя на дату.
// Разовые правила на конкретную дату полностью заменяют недельные:
// если на дату есть хотя бы одно разовое правило, недельные игнорируются.
// Пересекающиеся и соприкасающиеся окна склеиваются в непрерывные:
// иначе нарезка каждого окна по отдельности дала бы дублирующиеся слоты
func applicableWindows(rules []*domain.AvailabilityRule, date time.Time) []timerange.Range {
	oneOff := make([]timerange.Range, 0)
	recurring := make([]timerange.Range, 0)

	for _, rule := range rules {
		if !rule.AppliesTo(date) {
			continue
		}
		window, ok := rule.Window(date)
		if !ok {
			continue
		}
		if rule.SpecificDate != nil {
			oneOff = append(oneOff, window)
		} else {
			recurring = append(recurring, window)
		}
	}

	windows := recurring
	if len(oneOff) > 0 {
		windows = oneOff
	}

	return timerange.Merge(windows)
}

// buildSlots нарезает рабочие окна на слоты фиксированной длительности.
// Неполный хвост окна отбрасывается
func buildSlots(windows []timerange.Range, slotDuration time.Duration) []timerange.Range {
	slots := make([]timerange.Range, 0)
	for _, window := range windows {
		slots = append(slots, window.Slice(slotDuration)...)
	}
	return slots
}

// collectBlockers собирает занятые интервалы: блокировки и активные бронирования
func collectBlockers(blocks []*domain.BlockedInterval, bookings []*domain.Booking) []timerange.Range {
	blockers := make([]timerange.Range, 0, len(blocks)+len(bookings))

	for _, block := range blocks {
		blockers = append(blockers, block.Range())
	}
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		blockers = append(blockers, booking.Range())
	}

	return blockers
}

// filterSlots отбрасывает слоты, пересекающиеся хотя бы с одним занятым интервалом.
// Граничащие интервалы пересечением не считаются: бронирование 11:00-12:00
// не мешает слоту 12:00-13:00
func filterSlots(slots []timerange.Range, blockers []timerange.Range) []timerange.Range {
	if len(blockers) == 0 {
		return slots
	}

	free := make([]timerange.Range, 0, len(slots))
	for _, slot := range slots {
		conflict := false
		for _, blocker := range blockers {
			if slot.Overlaps(blocker) {
				conflict = true
				break
			}
		}
		if !conflict {
			free = append(free, slot)
		}
	}

	return free
}

// dropPastSlots отбрасывает слоты, начало которых уже наступило
func dropPastSlots(slots []timerange.Range, now time.Time) []timerange.Range {
	upcoming := make([]timerange.Range, 0, len(slots))
	for _, slot := range slots {
		if slot.Start.After(now) {
			upcoming = append(upcoming, slot)
		}
	}
	return upcoming
}

// dayWindow возвращает границы суток для даты: [00:00, +24h)
func dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}
