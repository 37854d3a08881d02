package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	bookingRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/booking"
	settingsRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/settings"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/notifier"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/timerange"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	settingsRepo     SettingsRepository
	payments         PaymentGateway
	notifier         Notifier
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	settingsRepo SettingsRepository,
	payments PaymentGateway,
	notify Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		settingsRepo:     settingsRepo,
		payments:         payments,
		notifier:         notify,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования.
// Создание идет в сериализуемой транзакции, но последним рубежом защиты
// от двойного бронирования остается exclusion constraint в БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: pro=%d, start=%s", req.ProID, req.StartAt.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Бронировать можно только будущее время
	now := uc.timeProvider.Now()
	if err := validateStartInFuture(req.StartAt, now); err != nil {
		uc.logger.Warn("CreateBooking: start time validation failed: %v", err)
		return nil, err
	}

	slot := timerange.Range{Start: req.StartAt, End: req.EndAt}

	var result *domain.Booking
	var settings *domain.ProSettings

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Настройки преподавателя; при отсутствии используем дефолтные
		var err error
		settings, err = uc.settingsRepo.GetByProID(txCtx, req.ProID)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Error("CreateBooking: failed to get settings for pro=%d: %v", req.ProID, err)
				return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
			}
			settings = domain.DefaultSettings(req.ProID)
			uc.logger.Info("CreateBooking: using default settings for pro=%d", req.ProID)
		}

		// 3.2. Длительность должна совпадать с длительностью слота
		if err := validateDuration(slot, settings.SlotDurationMinutes); err != nil {
			uc.logger.Warn("CreateBooking: duration validation failed: %v", err)
			return err
		}

		// 3.3. Интервал должен попадать в рабочие окна преподавателя
		rules, err := uc.availabilityRepo.GetRulesByPro(txCtx, req.ProID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get rules for pro=%d: %v", req.ProID, err)
			return fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}
		if err := validateWithinWorkingWindows(rules, slot); err != nil {
			uc.logger.Warn("CreateBooking: pro=%d, slot %s is outside working windows",
				req.ProID, req.StartAt.Format(domain.DateTimeFormat))
			return err
		}

		// 3.4. Интервал не должен пересекаться с блокировками
		blocks, err := uc.availabilityRepo.GetBlocksByProInWindow(txCtx, req.ProID, req.StartAt, req.EndAt)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocks for pro=%d: %v", req.ProID, err)
			return fmt.Errorf("%w: failed to get blocked intervals: %v", ErrInternal, err)
		}
		if err := validateNotBlocked(blocks, slot); err != nil {
			uc.logger.Warn("CreateBooking: pro=%d, slot %s overlaps a blocked interval",
				req.ProID, req.StartAt.Format(domain.DateTimeFormat))
			return err
		}

		// 3.5. Рассчитываем оплату
		deposit := settings.DepositFor(settings.PriceAmount)

		status := domain.StatusConfirmed
		if !settings.AutoConfirm {
			status = domain.StatusPending
		}

		paymentType := domain.PaymentTypeNone
		if deposit > 0 {
			// До оплаты депозита бронирование остается в pending
			status = domain.StatusPending
			paymentType = domain.PaymentTypeDeposit
		}

		booking := &domain.Booking{
			ProID:         req.ProID,
			CustomerID:    req.CustomerID,
			GuestName:     req.GuestName,
			GuestPhone:    req.GuestPhone,
			GuestEmail:    req.GuestEmail,
			StartAt:       req.StartAt,
			EndAt:         req.EndAt,
			Status:        status,
			PaymentStatus: domain.PaymentUnpaid,
			PaymentType:   paymentType,
			PriceAmount:   settings.PriceAmount,
			Currency:      settings.Currency,
			DepositAmount: deposit,
			CustomerNotes: req.CustomerNotes,
		}

		// 3.6. Сохраняем бронирование.
		// Конфликт exclusion constraint означает гонку за слот
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateBooking: pro=%d, slot %s already taken",
					req.ProID, req.StartAt.Format(domain.DateTimeFormat))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 4. Если требуется депозит, создаем платежную сессию.
	// При ошибке бронирование отменяется, слот освобождается
	var redirectURL *string
	if result.DepositAmount > 0 {
		session, err := uc.payments.InitiateDeposit(ctx, result.ID, result.DepositAmount, result.Currency,
			fmt.Sprintf("Lesson deposit, booking #%d", result.ID))
		if err != nil {
			uc.logger.Error("CreateBooking: payment session failed for booking id=%d: %v", result.ID, err)
			if cancelErr := uc.bookingRepo.Cancel(ctx, result.ID, "payment session creation failed"); cancelErr != nil {
				uc.logger.Error("CreateBooking: failed to cancel booking id=%d after payment error: %v", result.ID, cancelErr)
			}
			return nil, fmt.Errorf("%w: %v", ErrPaymentInitFailed, err)
		}

		if err := uc.bookingRepo.SetPaymentRef(ctx, result.ID, session.PaymentRef); err != nil {
			uc.logger.Error("CreateBooking: failed to set payment ref for booking id=%d: %v", result.ID, err)
			return nil, fmt.Errorf("%w: failed to attach payment reference: %v", ErrInternal, err)
		}

		redirectURL = &session.RedirectURL
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)

	// 5. Уведомление, best-effort
	uc.notifier.Notify(ctx, notifier.Notification{
		Event:     notifier.EventBookingCreated,
		BookingID: result.ID,
		ProID:     result.ProID,
	})

	return &Response{
		ID:                 result.ID,
		ProID:              result.ProID,
		CustomerID:         result.CustomerID,
		GuestName:          result.GuestName,
		StartAt:            result.StartAt,
		EndAt:              result.EndAt,
		Status:             string(result.Status),
		PaymentStatus:      string(result.PaymentStatus),
		PaymentType:        string(result.PaymentType),
		PriceAmount:        result.PriceAmount,
		Currency:           result.Currency,
		DepositAmount:      result.DepositAmount,
		PaymentRedirectURL: redirectURL,
		CreatedAt:          result.CreatedAt,
	}, nil
}
