package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	availabilityRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/availability"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/schedule/models"
)

// Service сервис расписания преподавателя: недельные правила,
// разовые правила на дату и блокировки интервалов
type Service struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(availabilityRepo AvailabilityRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetSchedule возвращает все правила доступности преподавателя
func (s *Service) GetSchedule(ctx context.Context, proID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: pro=%d", proID)

	rules, err := s.availabilityRepo.GetRulesByPro(ctx, proID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for pro=%d: %v", proID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(proID, rules), nil
}

// UpdateSchedule полностью заменяет набор правил преподавателя.
// Доступно самому преподавателю и администратору
func (s *Service) UpdateSchedule(ctx context.Context, proID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: pro=%d, %d rules, by actor=%d", proID, len(req.Rules), req.Actor.ID)

	if err := s.checkProAccess(proID, req.Actor); err != nil {
		s.logger.Warn("UpdateSchedule: access denied for actor=%d to pro=%d", req.Actor.ID, proID)
		return nil, err
	}

	rules, err := toDomainRules(proID, req.Rules)
	if err != nil {
		s.logger.Warn("UpdateSchedule: invalid rules for pro=%d: %v", proID, err)
		return nil, err
	}

	// Замена выполняется атомарно: либо новый набор целиком, либо старый
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.availabilityRepo.ReplaceRules(txCtx, proID, rules); err != nil {
			s.logger.Error("UpdateSchedule: replace failed for pro=%d: %v", proID, err)
			return fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateSchedule: pro=%d schedule replaced", proID)
	return s.GetSchedule(ctx, proID)
}

// GetBlocks возвращает блокировки преподавателя в окне.
// Доступно самому преподавателю и администратору
func (s *Service) GetBlocks(ctx context.Context, proID int64, req *models.GetBlocksRequest) (*models.BlockListResponse, error) {
	s.logger.Info("GetBlocks: pro=%d, window %s - %s", proID,
		req.From.Format(domain.DateTimeFormat), req.To.Format(domain.DateTimeFormat))

	if err := s.checkProAccess(proID, req.Actor); err != nil {
		s.logger.Warn("GetBlocks: access denied for actor=%d to pro=%d", req.Actor.ID, proID)
		return nil, err
	}

	if req.From.IsZero() || req.To.IsZero() || !req.To.After(req.From) {
		return nil, fmt.Errorf("%w: window boundaries are invalid", ErrInvalidInput)
	}

	blocks, err := s.availabilityRepo.GetBlocksByProInWindow(ctx, proID, req.From, req.To)
	if err != nil {
		s.logger.Error("GetBlocks: repository error for pro=%d: %v", proID, err)
		return nil, fmt.Errorf("%w: GetBlocks - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlocks(proID, blocks), nil
}

// AddBlock создает ручную блокировку интервала.
// Доступно самому преподавателю и администратору
func (s *Service) AddBlock(ctx context.Context, proID int64, req *models.AddBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("AddBlock: pro=%d, %s - %s, by actor=%d", proID,
		req.StartAt.Format(domain.DateTimeFormat), req.EndAt.Format(domain.DateTimeFormat), req.Actor.ID)

	if err := s.checkProAccess(proID, req.Actor); err != nil {
		s.logger.Warn("AddBlock: access denied for actor=%d to pro=%d", req.Actor.ID, proID)
		return nil, err
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() || !req.EndAt.After(req.StartAt) {
		return nil, fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInterval)
	}

	block, err := s.availabilityRepo.CreateBlock(ctx, &domain.BlockedInterval{
		ProID:   proID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Reason:  req.Reason,
		Source:  domain.BlockSourceManual,
	})
	if err != nil {
		s.logger.Error("AddBlock: repository error for pro=%d: %v", proID, err)
		return nil, fmt.Errorf("%w: AddBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddBlock: pro=%d created block id=%d", proID, block.ID)
	return models.FromDomainBlock(block), nil
}

// DeleteBlock удаляет блокировку интервала.
// Доступно самому преподавателю и администратору
func (s *Service) DeleteBlock(ctx context.Context, proID, blockID int64, actor domain.Actor) error {
	s.logger.Info("DeleteBlock: pro=%d, block id=%d, by actor=%d", proID, blockID, actor.ID)

	if err := s.checkProAccess(proID, actor); err != nil {
		s.logger.Warn("DeleteBlock: access denied for actor=%d to pro=%d", actor.ID, proID)
		return err
	}

	if err := s.availabilityRepo.DeleteBlock(ctx, proID, blockID); err != nil {
		if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlock: block id=%d not found for pro=%d", blockID, proID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for pro=%d: %v", proID, err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlock: pro=%d deleted block id=%d", proID, blockID)
	return nil
}

// Вспомогательные методы

func (s *Service) checkProAccess(proID int64, actor domain.Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.IsPro() && actor.ID == proID {
		return nil
	}
	return ErrAccessDenied
}

// toDomainRules валидирует и конвертирует входной набор правил
func toDomainRules(proID int64, inputs []models.RuleInput) ([]*domain.AvailabilityRule, error) {
	rules := make([]*domain.AvailabilityRule, 0, len(inputs))

	for i, in := range inputs {
		hasDay := in.DayOfWeek != nil
		hasDate := in.SpecificDate != nil

		if hasDay == hasDate {
			return nil, fmt.Errorf("%w: rule %d must set exactly one of dayOfWeek and specificDate", ErrInvalidRule, i)
		}
		if hasDay && (*in.DayOfWeek < 0 || *in.DayOfWeek > 6) {
			return nil, fmt.Errorf("%w: rule %d has dayOfWeek out of range", ErrInvalidRule, i)
		}

		start, err := time.Parse(domain.TimeFormat, in.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d has invalid startTime", ErrInvalidRule, i)
		}
		end, err := time.Parse(domain.TimeFormat, in.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d has invalid endTime", ErrInvalidRule, i)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("%w: rule %d has endTime before startTime", ErrInvalidRule, i)
		}

		rule := &domain.AvailabilityRule{
			ProID:     proID,
			DayOfWeek: in.DayOfWeek,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
			Recurring: hasDay,
		}

		if hasDate {
			date, err := time.Parse(domain.DateFormat, *in.SpecificDate)
			if err != nil {
				return nil, fmt.Errorf("%w: rule %d has invalid specificDate", ErrInvalidRule, i)
			}
			rule.SpecificDate = &date
		}

		rules = append(rules, rule)
	}

	return rules, nil
}
