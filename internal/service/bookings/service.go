package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	bookingRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/booking"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/notifier"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	payments     PaymentGateway
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	payments PaymentGateway,
	notify Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		payments:     payments,
		notifier:     notify,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Видимость: заявитель, преподаватель-владелец или администратор
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d role=%s", id, actor.ID, actor.Role)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkViewAccess(booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actor.ID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований клиента.
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetProBookings получает бронирования преподавателя с фильтрацией по окну,
// статусу и включению неактивных. Доступно самому преподавателю и администратору
func (s *Service) GetProBookings(ctx context.Context, req *models.GetProBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetProBookings: fetching bookings for pro=%d by actor=%d", req.ProID, req.Actor.ID)

	if !req.Actor.IsAdmin() && !(req.Actor.IsPro() && req.Actor.ID == req.ProID) {
		s.logger.Warn("GetProBookings: access denied for actor=%d to pro=%d", req.Actor.ID, req.ProID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProBookings: invalid filter for pro=%d: %v", req.ProID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByProWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProBookings: repository error for pro=%d: %v", req.ProID, err)
		return nil, fmt.Errorf("%w: GetProBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProBookings: fetched %d bookings for pro=%d", len(bookings), req.ProID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование.
// Самообслуживание заявителя: отменить может зарегистрированный заявитель
// или администратор. Преподаватель снимает занятие через споры или блокировки
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%d role=%s", bookingID, req.Actor.ID, req.Actor.Role)

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return err
	}

	if !req.Actor.IsAdmin() && !(req.Actor.IsCustomer() && booking.IsRequestedBy(req.Actor.ID)) {
		s.logger.Warn("Cancel: access denied for actor=%d to booking id=%d", req.Actor.ID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.Reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	s.notifier.Notify(ctx, notifier.Notification{
		Event:     notifier.EventBookingCancelled,
		BookingID: bookingID,
		ProID:     booking.ProID,
		Message:   req.Reason,
	})

	return nil
}

// Complete переводит прошедшее подтвержденное занятие в completed.
// Доступно преподавателю-владельцу и администратору
func (s *Service) Complete(ctx context.Context, bookingID int64, req *models.CompleteBookingRequest) error {
	s.logger.Info("Complete: completing booking id=%d by actor=%d", bookingID, req.Actor.ID)

	booking, err := s.getBooking(ctx, bookingID, "Complete")
	if err != nil {
		return err
	}

	if !req.Actor.IsAdmin() && !(req.Actor.IsPro() && booking.IsOwnedByPro(req.Actor.ID)) {
		s.logger.Warn("Complete: access denied for actor=%d to booking id=%d", req.Actor.ID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCompleted(s.timeProvider.Now()) {
		s.logger.Warn("Complete: booking id=%d cannot be completed, status=%s, end=%s",
			bookingID, booking.Status, booking.EndAt.Format(domain.DateTimeFormat))
		return ErrCannotComplete
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCompleted); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Complete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed booking id=%d", bookingID)
	return nil
}

// RequestRefund выполняет возврат по бронированию.
// Сумма считается по тарифной сетке от времени до начала занятия, после чего
// провайдер синхронно подтверждает возможность возврата. Отказ провайдера
// оставляет бронирование без изменений
func (s *Service) RequestRefund(ctx context.Context, bookingID int64, req *models.RequestRefundRequest) (*models.RefundResponse, error) {
	s.logger.Info("RequestRefund: booking id=%d by actor=%d role=%s", bookingID, req.Actor.ID, req.Actor.Role)

	now := s.timeProvider.Now()

	var result *models.RefundResponse
	var proID int64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("RequestRefund: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("RequestRefund: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: RequestRefund - repository error: %v", ErrInternal, err)
		}
		proID = booking.ProID

		// Возврат запрашивает зарегистрированный заявитель или администратор
		if !req.Actor.IsAdmin() && !(req.Actor.IsCustomer() && booking.IsRequestedBy(req.Actor.ID)) {
			s.logger.Warn("RequestRefund: access denied for actor=%d to booking id=%d", req.Actor.ID, bookingID)
			return ErrAccessDenied
		}

		if booking.PaymentStatus == domain.PaymentRefunded {
			s.logger.Warn("RequestRefund: booking id=%d already refunded", bookingID)
			return ErrRefundAlreadyProcessed
		}
		if !booking.IsPaid() || booking.PaymentRef == nil {
			s.logger.Warn("RequestRefund: booking id=%d is not paid", bookingID)
			return ErrNotPaid
		}

		// База возврата - фактически уплаченная сумма
		paidAmount := booking.PriceAmount
		if booking.PaymentStatus == domain.PaymentDepositPaid {
			paidAmount = booking.DepositAmount
		}

		amount, percent := domain.CalculateRefund(booking.StartAt, now, paidAmount)
		if amount <= 0 {
			s.logger.Warn("RequestRefund: booking id=%d not eligible, refund window elapsed", bookingID)
			return ErrRefundNotEligible
		}

		if err := s.bookingRepo.MarkRefundRequested(txCtx, bookingID, amount, req.Reason); err != nil {
			s.logger.Error("RequestRefund: failed to mark requested for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: RequestRefund - repository error: %v", ErrInternal, err)
		}

		// Синхронная проверка у провайдера. Отказ откатывает транзакцию,
		// бронирование остается без следов запроса
		if err := s.payments.CheckRefundEligibility(txCtx, *booking.PaymentRef, amount); err != nil {
			s.logger.Warn("RequestRefund: provider rejected refund for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: %v", ErrRefundNotEligible, err)
		}

		if err := s.payments.IssueRefund(txCtx, *booking.PaymentRef, amount); err != nil {
			s.logger.Error("RequestRefund: provider refund failed for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: RequestRefund - provider error: %v", ErrInternal, err)
		}

		if err := s.bookingRepo.MarkRefundProcessed(txCtx, bookingID, amount, req.Reason); err != nil {
			s.logger.Error("RequestRefund: failed to mark processed for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: RequestRefund - repository error: %v", ErrInternal, err)
		}

		result = &models.RefundResponse{
			BookingID:     bookingID,
			RefundAmount:  amount,
			RefundPercent: percent,
			PaymentStatus: string(domain.PaymentRefunded),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RequestRefund: booking id=%d refunded %d (%d%%)", bookingID, result.RefundAmount, result.RefundPercent)

	s.notifier.Notify(ctx, notifier.Notification{
		Event:     notifier.EventRefundProcessed,
		BookingID: bookingID,
		ProID:     proID,
	})

	return result, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkViewAccess проверяет право на просмотр бронирования
func (s *Service) checkViewAccess(booking *domain.Booking, actor domain.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.IsPro() && booking.IsOwnedByPro(actor.ID) {
		return nil
	}
	if actor.IsCustomer() && booking.IsRequestedBy(actor.ID) {
		return nil
	}
	return ErrAccessDenied
}
