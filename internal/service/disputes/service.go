package disputes

import (
	"context"
	"errors"
	"fmt"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	bookingRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/booking"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/notifier"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/disputes/models"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/ptr"
)

// Service сервис споров по бронированиям.
// Переходы статусов выполняются compare-and-set запросами: гонка двух
// операций над одним спором заканчивается ErrDisputeStateChanged, а не
// потерянным обновлением
type Service struct {
	bookingRepo BookingRepository
	logRepo     DisputeLogRepository
	payments    PaymentGateway
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса споров
func NewService(
	bookingRepo BookingRepository,
	logRepo DisputeLogRepository,
	payments PaymentGateway,
	notify Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logRepo:     logRepo,
		payments:    payments,
		notifier:    notify,
		txManager:   txManager,
		logger:      logger,
	}
}

// Open открывает спор по бронированию.
// Доступно зарегистрированному заявителю, преподавателю-владельцу
// и администратору. Спор открывается только по бронированию
// с захваченным платежом
func (s *Service) Open(ctx context.Context, bookingID int64, req *models.OpenDisputeRequest) (*models.DisputeResponse, error) {
	s.logger.Info("OpenDispute: booking id=%d by actor=%d role=%s", bookingID, req.Actor.ID, req.Actor.Role)

	if req.Message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if len(req.EvidenceURLs) > domain.MaxEvidenceURLs {
		return nil, fmt.Errorf("%w: too many evidence urls", ErrInvalidInput)
	}

	var proID int64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.lockBooking(txCtx, bookingID, "OpenDispute")
		if err != nil {
			return err
		}
		proID = booking.ProID

		// Сначала права, потом состояние: чужой актор получает
		// ErrAccessDenied независимо от статуса спора
		if err := s.checkPartyAccess(booking, req.Actor); err != nil {
			s.logger.Warn("OpenDispute: access denied for actor=%d to booking id=%d", req.Actor.ID, bookingID)
			return err
		}

		if !booking.IsPaid() && booking.PaymentStatus != domain.PaymentRefunded {
			s.logger.Warn("OpenDispute: booking id=%d is not disputable, payment_status=%s", bookingID, booking.PaymentStatus)
			return ErrNotDisputable
		}

		if booking.DisputeStatus != domain.DisputeNone {
			s.logger.Warn("OpenDispute: booking id=%d already has dispute, status=%s", bookingID, booking.DisputeStatus)
			return ErrDisputeAlreadyOpen
		}

		if err := s.bookingRepo.TransitionDispute(txCtx, bookingID,
			[]domain.DisputeStatus{domain.DisputeNone}, domain.DisputeOpened); err != nil {
			return s.mapTransitionError("OpenDispute", bookingID, err)
		}

		return s.appendLog(txCtx, bookingID, req.Actor, domain.DisputeActionOpened, req.Message, req.EvidenceURLs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("OpenDispute: booking id=%d dispute opened", bookingID)

	s.notifier.Notify(ctx, notifier.Notification{
		Event:     notifier.EventDisputeOpened,
		BookingID: bookingID,
		ProID:     proID,
	})

	return &models.DisputeResponse{
		BookingID:     bookingID,
		DisputeStatus: string(domain.DisputeOpened),
	}, nil
}

// Respond фиксирует ответ преподавателя на открытый спор.
// Доступно преподавателю-владельцу и администратору
func (s *Service) Respond(ctx context.Context, bookingID int64, req *models.RespondDisputeRequest) (*models.DisputeResponse, error) {
	s.logger.Info("RespondDispute: booking id=%d by actor=%d role=%s", bookingID, req.Actor.ID, req.Actor.Role)

	if req.Message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.lockBooking(txCtx, bookingID, "RespondDispute")
		if err != nil {
			return err
		}

		if !req.Actor.IsAdmin() && !(req.Actor.IsPro() && booking.IsOwnedByPro(req.Actor.ID)) {
			s.logger.Warn("RespondDispute: access denied for actor=%d to booking id=%d", req.Actor.ID, bookingID)
			return ErrAccessDenied
		}

		switch booking.DisputeStatus {
		case domain.DisputeOpened:
			// допустимый переход
		case domain.DisputeNone:
			return ErrNoActiveDispute
		default:
			s.logger.Warn("RespondDispute: booking id=%d invalid transition from %s", bookingID, booking.DisputeStatus)
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.TransitionDispute(txCtx, bookingID,
			[]domain.DisputeStatus{domain.DisputeOpened}, domain.DisputeProResponded); err != nil {
			return s.mapTransitionError("RespondDispute", bookingID, err)
		}

		return s.appendLog(txCtx, bookingID, req.Actor, domain.DisputeActionResponded, req.Message, req.EvidenceURLs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RespondDispute: booking id=%d pro responded", bookingID)

	return &models.DisputeResponse{
		BookingID:     bookingID,
		DisputeStatus: string(domain.DisputeProResponded),
	}, nil
}

// Escalate эскалирует спор на администратора платформы.
// Доступно обеим сторонам спора и администратору
func (s *Service) Escalate(ctx context.Context, bookingID int64, req *models.EscalateDisputeRequest) (*models.DisputeResponse, error) {
	s.logger.Info("EscalateDispute: booking id=%d by actor=%d role=%s", bookingID, req.Actor.ID, req.Actor.Role)

	var proID int64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.lockBooking(txCtx, bookingID, "EscalateDispute")
		if err != nil {
			return err
		}
		proID = booking.ProID

		if err := s.checkPartyAccess(booking, req.Actor); err != nil {
			s.logger.Warn("EscalateDispute: access denied for actor=%d to booking id=%d", req.Actor.ID, bookingID)
			return err
		}

		switch booking.DisputeStatus {
		case domain.DisputeOpened, domain.DisputeProResponded:
			// допустимые переходы
		case domain.DisputeNone:
			return ErrNoActiveDispute
		default:
			s.logger.Warn("EscalateDispute: booking id=%d invalid transition from %s", bookingID, booking.DisputeStatus)
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.TransitionDispute(txCtx, bookingID,
			[]domain.DisputeStatus{domain.DisputeOpened, domain.DisputeProResponded}, domain.DisputeEscalated); err != nil {
			return s.mapTransitionError("EscalateDispute", bookingID, err)
		}

		return s.appendLog(txCtx, bookingID, req.Actor, domain.DisputeActionEscalated, req.Message, nil)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("EscalateDispute: booking id=%d escalated", bookingID)

	s.notifier.Notify(ctx, notifier.Notification{
		Event:     notifier.EventDisputeEscalated,
		BookingID: bookingID,
		ProID:     proID,
	})

	return &models.DisputeResponse{
		BookingID:     bookingID,
		DisputeStatus: string(domain.DisputeEscalated),
	}, nil
}

// Resolve закрывает спор с исходом в пользу одной из сторон.
// Доступно только администратору, в том числе по эскалированным спорам.
// При решении в пользу клиента с указанной суммой возврат выполняется
// ДО смены состояния: отказ шлюза оставляет спор как был
func (s *Service) Resolve(ctx context.Context, bookingID int64, req *models.ResolveDisputeRequest) (*models.DisputeResponse, error) {
	s.logger.Info("ResolveDispute: booking id=%d by actor=%d role=%s resolution=%s",
		bookingID, req.Actor.ID, req.Actor.Role, req.Resolution)

	var target domain.DisputeStatus
	switch req.Resolution {
	case models.ResolutionPro:
		target = domain.DisputeResolvedPro
	case models.ResolutionCustomer:
		target = domain.DisputeResolvedCustomer
	default:
		return nil, fmt.Errorf("%w: unknown resolution %q", ErrInvalidInput, req.Resolution)
	}

	if req.RefundAmount != nil && *req.RefundAmount <= 0 {
		return nil, fmt.Errorf("%w: refundAmount must be positive", ErrInvalidInput)
	}

	var refundAmount *int64
	var proID int64

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.lockBooking(txCtx, bookingID, "ResolveDispute")
		if err != nil {
			return err
		}
		proID = booking.ProID

		// Спор разрешает только администратор, независимо от состояния
		if !req.Actor.IsAdmin() {
			s.logger.Warn("ResolveDispute: access denied for actor=%d to booking id=%d", req.Actor.ID, bookingID)
			return ErrAccessDenied
		}

		allowedFrom := []domain.DisputeStatus{domain.DisputeOpened, domain.DisputeProResponded, domain.DisputeEscalated}

		switch booking.DisputeStatus {
		case domain.DisputeNone:
			return ErrNoActiveDispute
		case domain.DisputeResolvedPro, domain.DisputeResolvedCustomer:
			return ErrInvalidTransition
		}

		// Возврат до смены состояния спора. Непосредственно перед возвратом
		// шлюз синхронно подтверждает возможность возврата на эту сумму
		if target == domain.DisputeResolvedCustomer && req.RefundAmount != nil {
			if booking.PaymentRef == nil {
				return fmt.Errorf("%w: booking has no captured payment", ErrInvalidInput)
			}
			amount := *req.RefundAmount

			if err := s.payments.CheckRefundEligibility(txCtx, *booking.PaymentRef, amount); err != nil {
				s.logger.Warn("ResolveDispute: gateway rejected refund for booking id=%d: %v", bookingID, err)
				return fmt.Errorf("%w: %v", ErrRefundFailed, err)
			}

			if err := s.payments.IssueRefund(txCtx, *booking.PaymentRef, amount); err != nil {
				s.logger.Error("ResolveDispute: refund failed for booking id=%d: %v", bookingID, err)
				return fmt.Errorf("%w: %v", ErrRefundFailed, err)
			}

			if err := s.bookingRepo.MarkRefundProcessed(txCtx, bookingID, amount, "dispute resolved in customer favor"); err != nil {
				s.logger.Error("ResolveDispute: failed to mark refund for booking id=%d: %v", bookingID, err)
				return fmt.Errorf("%w: ResolveDispute - repository error: %v", ErrInternal, err)
			}

			refundAmount = ptr.Ptr(amount)
		}

		if err := s.bookingRepo.ResolveDispute(txCtx, bookingID, allowedFrom, target, req.Notes); err != nil {
			return s.mapTransitionError("ResolveDispute", bookingID, err)
		}

		return s.appendLog(txCtx, bookingID, req.Actor, domain.DisputeActionResolved, req.Notes, nil)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ResolveDispute: booking id=%d resolved as %s", bookingID, target)

	s.notifier.Notify(ctx, notifier.Notification{
		Event:     notifier.EventDisputeResolved,
		BookingID: bookingID,
		ProID:     proID,
	})

	return &models.DisputeResponse{
		BookingID:     bookingID,
		DisputeStatus: string(target),
		RefundAmount:  refundAmount,
		Notes:         ptr.Ptr(req.Notes),
	}, nil
}

// GetLog возвращает журнал спора в хронологическом порядке.
// Видимость как у бронирования: стороны спора и администратор
func (s *Service) GetLog(ctx context.Context, bookingID int64, actor domain.Actor) (*models.DisputeLogResponse, error) {
	s.logger.Info("GetDisputeLog: booking id=%d by actor=%d role=%s", bookingID, actor.ID, actor.Role)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetDisputeLog: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetDisputeLog: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetDisputeLog - repository error: %v", ErrInternal, err)
	}

	if err := s.checkPartyAccess(booking, actor); err != nil {
		s.logger.Warn("GetDisputeLog: access denied for actor=%d to booking id=%d", actor.ID, bookingID)
		return nil, err
	}

	entries, err := s.logRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		s.logger.Error("GetDisputeLog: log repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetDisputeLog - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLogEntries(bookingID, entries), nil
}

// Вспомогательные методы

func (s *Service) lockBooking(ctx context.Context, bookingID int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByIDForUpdate(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkPartyAccess проверяет, что актор - сторона спора или администратор.
// Гостевые бронирования не имеют аутентифицированного клиента, поэтому
// со стороны клиента операции со спором недоступны
func (s *Service) checkPartyAccess(booking *domain.Booking, actor domain.Actor) error {
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

func (s *Service) mapTransitionError(op string, bookingID int64, err error) error {
	if errors.Is(err, bookingRepo.ErrDisputeStateChanged) {
		s.logger.Warn("%s: booking id=%d dispute state changed concurrently", op, bookingID)
		return ErrDisputeStateChanged
	}
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) appendLog(ctx context.Context, bookingID int64, actor domain.Actor, action, message string, evidence []string) error {
	entry := &domain.DisputeLogEntry{
		BookingID:    bookingID,
		ActorID:      ptr.Ptr(actor.ID),
		ActorRole:    actor.Role,
		Action:       action,
		Message:      message,
		EvidenceURLs: evidence,
	}

	if _, err := s.logRepo.Append(ctx, entry); err != nil {
		s.logger.Error("appendLog: failed to append dispute log for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: failed to append dispute log: %v", ErrInternal, err)
	}
	return nil
}
