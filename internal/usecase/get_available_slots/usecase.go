package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	calendarlinkRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/calendarlink"
	settingsRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/settings"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/gcal"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/timerange"
)

// UseCase use case для получения доступных слотов преподавателя
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	settingsRepo     SettingsRepository
	calendarRepo     CalendarLinkRepository
	calendarClient   CalendarClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	settingsRepo SettingsRepository,
	calendarRepo CalendarLinkRepository,
	calendarClient CalendarClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		settingsRepo:     settingsRepo,
		calendarRepo:     calendarRepo,
		calendarClient:   calendarClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: pro=%d, date=%s", req.ProID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и проверяем дату
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	dayStart, dayEnd := dayWindow(req.Date)

	var settings *domain.ProSettings
	var slots []timerange.Range

	// 3. Читаем настройки, правила, блокировки и бронирования одним
	// согласованным снимком в read-only транзакции
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 3.1. Настройки преподавателя; при отсутствии используем дефолтные
		var err error
		settings, err = uc.settingsRepo.GetByProID(txCtx, req.ProID)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Error("GetAvailableSlots: failed to get settings for pro=%d: %v", req.ProID, err)
				return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
			}
			settings = domain.DefaultSettings(req.ProID)
			uc.logger.Info("GetAvailableSlots: using default settings for pro=%d", req.ProID)
		}

		// 3.2. Правила доступности и рабочие окна на дату.
		// Разовые правила на дату имеют приоритет над недельными
		rules, err := uc.availabilityRepo.GetRulesByPro(txCtx, req.ProID)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get rules for pro=%d: %v", req.ProID, err)
			return fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}

		windows := applicableWindows(rules, req.Date)
		if len(windows) == 0 {
			uc.logger.Info("GetAvailableSlots: pro=%d has no working windows on %s", req.ProID, req.Date.Format(domain.DateFormat))
			slots = []timerange.Range{}
			return nil
		}

		// 3.3. Нарезаем окна на слоты
		slotDuration := time.Duration(settings.SlotDurationMinutes) * time.Minute
		slots = buildSlots(windows, slotDuration)

		// 3.4. Собираем занятые интервалы: блокировки и активные бронирования
		blocks, err := uc.availabilityRepo.GetBlocksByProInWindow(txCtx, req.ProID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get blocks for pro=%d: %v", req.ProID, err)
			return fmt.Errorf("%w: failed to get blocked intervals: %v", ErrInternal, err)
		}

		bookings, err := uc.bookingRepo.GetByProWithFilter(txCtx, domain.ProBookingsFilter{
			ProID: req.ProID,
			From:  &dayStart,
			To:    &dayEnd,
		})
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get bookings for pro=%d: %v", req.ProID, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		slots = filterSlots(slots, collectBlockers(blocks, bookings))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(slots) == 0 {
		return uc.response(req, slots, settings), nil
	}

	// 4. Фильтрация по внешнему календарю, best-effort.
	// Недоступность календаря не блокирует выдачу слотов
	slots = uc.applyCalendarBusy(ctx, req.ProID, slots, dayStart, dayEnd)

	// 5. Отбрасываем слоты, начало которых уже прошло
	slots = dropPastSlots(slots, now)

	uc.logger.Info("GetAvailableSlots: pro=%d, date=%s: %d slots",
		req.ProID, req.Date.Format(domain.DateFormat), len(slots))

	return uc.response(req, slots, settings), nil
}

// applyCalendarBusy фильтрует слоты по занятости внешнего календаря.
// Любая ошибка календаря логируется, и слоты возвращаются без фильтрации
func (uc *UseCase) applyCalendarBusy(ctx context.Context, proID int64, slots []timerange.Range, from, to time.Time) []timerange.Range {
	link, err := uc.calendarRepo.GetByProID(ctx, proID)
	if err != nil {
		if !errors.Is(err, calendarlinkRepo.ErrLinkNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get calendar link for pro=%d: %v", proID, err)
		}
		return slots
	}
	if !link.Enabled {
		return slots
	}

	busy, err := uc.calendarClient.GetBusyIntervals(ctx, link, from, to)
	if err != nil {
		switch {
		case errors.Is(err, gcal.ErrAuthExpired):
			uc.logger.Warn("GetAvailableSlots: calendar auth expired for pro=%d, skipping calendar filter", proID)
		case errors.Is(err, gcal.ErrUnavailable):
			uc.logger.Warn("GetAvailableSlots: calendar unavailable for pro=%d, skipping calendar filter", proID)
		default:
			uc.logger.Error("GetAvailableSlots: calendar query failed for pro=%d: %v", proID, err)
		}
		return slots
	}

	return filterSlots(slots, busy)
}

// response собирает модель ответа из отфильтрованных слотов
func (uc *UseCase) response(req *Request, slots []timerange.Range, settings *domain.ProSettings) *Response {
	result := make([]Slot, len(slots))
	for i, slot := range slots {
		result[i] = Slot{
			StartAt:         slot.Start,
			EndAt:           slot.End,
			DurationMinutes: settings.SlotDurationMinutes,
		}
	}

	return &Response{
		ProID: req.ProID,
		Date:  req.Date,
		Slots: result,
	}
}
