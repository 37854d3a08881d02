package create_booking

import (
	"fmt"
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/timerange"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProID <= 0 {
		return fmt.Errorf("%w: proID must be positive", ErrInvalidInput)
	}

	if err := validateRequester(req); err != nil {
		return err
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}

	return nil
}

// validateRequester проверяет, что заявитель указан строго одним способом:
// либо зарегистрированный клиент, либо гость с контактными данными
func validateRequester(req *Request) error {
	hasCustomer := req.CustomerID != nil
	hasGuest := req.GuestName != nil || req.GuestPhone != nil || req.GuestEmail != nil

	if hasCustomer && hasGuest {
		return fmt.Errorf("%w: specify either customerID or guest contact, not both", ErrInvalidInput)
	}
	if !hasCustomer && !hasGuest {
		return fmt.Errorf("%w: requester is required", ErrInvalidInput)
	}

	if hasCustomer && *req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if hasGuest {
		if req.GuestName == nil || *req.GuestName == "" {
			return fmt.Errorf("%w: guest name is required", ErrInvalidInput)
		}
		if (req.GuestPhone == nil || *req.GuestPhone == "") && (req.GuestEmail == nil || *req.GuestEmail == "") {
			return fmt.Errorf("%w: guest phone or email is required", ErrInvalidInput)
		}
	}

	return nil
}

// validateStartInFuture проверяет, что бронирование начинается в будущем
func validateStartInFuture(startAt, now time.Time) error {
	if !startAt.After(now) {
		return fmt.Errorf("%w: startAt must be in the future", ErrInvalidInput)
	}
	return nil
}

// validateDuration проверяет, что длительность интервала совпадает
// с длительностью слота преподавателя
func validateDuration(slot timerange.Range, slotDurationMinutes int) error {
	expected := time.Duration(slotDurationMinutes) * time.Minute
	if slot.Duration() != expected {
		return fmt.Errorf("%w: expected %d minutes", ErrInvalidDuration, slotDurationMinutes)
	}
	return nil
}

// validateWithinWorkingWindows проверяет, что интервал целиком попадает
// в рабочие окна преподавателя на эту дату.
// Разовые правила на дату имеют приоритет над недельными.
// Окна склеиваются: интервал на стыке двух пересекающихся окон валиден
func validateWithinWorkingWindows(rules []*domain.AvailabilityRule, slot timerange.Range) error {
	oneOff := make([]timerange.Range, 0)
	recurring := make([]timerange.Range, 0)

	for _, rule := range rules {
		if !rule.AppliesTo(slot.Start) {
			continue
		}
		window, ok := rule.Window(slot.Start)
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

	for _, window := range timerange.Merge(windows) {
		if window.Contains(slot) {
			return nil
		}
	}

	return ErrOutsideAvailability
}

// validateNotBlocked проверяет, что интервал не пересекается с блокировками
func validateNotBlocked(blocks []*domain.BlockedInterval, slot timerange.Range) error {
	for _, block := range blocks {
		if slot.Overlaps(block.Range()) {
			return fmt.Errorf("%w: interval is blocked", ErrSlotNotAvailable)
		}
	}
	return nil
}
