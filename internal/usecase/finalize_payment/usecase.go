package finalize_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	bookingRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/booking"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/notifier"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/stripegw"
)

// UseCase use case финализации платежа по бронированию.
// Идемпотентен по payment_ref: повторный вызов для уже оплаченного
// бронирования возвращает успех без обращения к провайдеру
type UseCase struct {
	bookingRepo BookingRepository
	payments    PaymentGateway
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	payments PaymentGateway,
	notify Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		payments:    payments,
		notifier:    notify,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет финализацию платежа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FinalizePayment: ref=%s", req.PaymentRef)

	// 1. Валидация входных данных
	if req.PaymentRef == "" {
		uc.logger.Warn("FinalizePayment: empty payment ref")
		return nil, fmt.Errorf("%w: paymentRef is required", ErrInvalidInput)
	}

	// 2. Находим бронирование по ссылке на платеж
	booking, err := uc.bookingRepo.GetByPaymentRef(ctx, req.PaymentRef)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("FinalizePayment: no booking for ref=%s", req.PaymentRef)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("FinalizePayment: failed to get booking by ref=%s: %v", req.PaymentRef, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Уже финализированный платеж - идемпотентный успех
	if booking.IsPaid() {
		uc.logger.Info("FinalizePayment: booking id=%d already finalized", booking.ID)
		return response(booking, true), nil
	}

	// 4. Подтверждаем платеж у провайдера. Fail-closed: без явного
	// подтверждения бронирование не переводится в confirmed
	if err := uc.payments.ConfirmPayment(ctx, req.PaymentRef); err != nil {
		if errors.Is(err, stripegw.ErrPaymentNotCompleted) {
			uc.logger.Warn("FinalizePayment: payment not completed for booking id=%d", booking.ID)
			return nil, ErrPaymentNotCompleted
		}
		uc.logger.Error("FinalizePayment: provider check failed for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentNotCompleted, err)
	}

	// 5. Обновляем бронирование в транзакции с блокировкой строки.
	// Параллельная финализация того же платежа увидит payment_status
	// после первой и выйдет по идемпотентной ветке
	var finalized *domain.Booking
	alreadyFinalized := false

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByIDForUpdate(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("FinalizePayment: failed to lock booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to lock booking: %v", ErrInternal, err)
		}

		if current.IsPaid() {
			finalized = current
			alreadyFinalized = true
			return nil
		}

		paymentStatus := domain.PaymentPaid
		if current.PaymentType == domain.PaymentTypeDeposit {
			paymentStatus = domain.PaymentDepositPaid
		}

		if err := uc.bookingRepo.ConfirmPayment(txCtx, current.ID, paymentStatus); err != nil {
			uc.logger.Error("FinalizePayment: failed to confirm booking id=%d: %v", current.ID, err)
			return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
		}

		current.Status = domain.StatusConfirmed
		current.PaymentStatus = paymentStatus
		finalized = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	if alreadyFinalized {
		uc.logger.Info("FinalizePayment: booking id=%d finalized concurrently", finalized.ID)
		return response(finalized, true), nil
	}

	uc.logger.Info("FinalizePayment: booking id=%d confirmed, payment_status=%s", finalized.ID, finalized.PaymentStatus)

	// 6. Уведомление, best-effort
	uc.notifier.Notify(ctx, notifier.Notification{
		Event:     notifier.EventBookingConfirmed,
		BookingID: finalized.ID,
		ProID:     finalized.ProID,
	})

	return response(finalized, false), nil
}

func response(b *domain.Booking, already bool) *Response {
	return &Response{
		BookingID:        b.ID,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		StartAt:          b.StartAt,
		EndAt:            b.EndAt,
		AlreadyFinalized: already,
	}
}
