package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	settingsRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/settings"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/settings/models"
)

// Service сервис настроек бронирования преподавателя
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get возвращает настройки преподавателя.
// Если преподаватель не настраивал их, возвращаются дефолтные значения
func (s *Service) Get(ctx context.Context, proID int64) (*models.SettingsResponse, error) {
	s.logger.Info("GetSettings: pro=%d", proID)

	settings, err := s.settingsRepo.GetByProID(ctx, proID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("GetSettings: pro=%d has no settings, returning defaults", proID)
			return models.FromDomainSettings(domain.DefaultSettings(proID)), nil
		}
		s.logger.Error("GetSettings: repository error for pro=%d: %v", proID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update сохраняет настройки преподавателя.
// Доступно самому преподавателю и администратору
func (s *Service) Update(ctx context.Context, proID int64, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: pro=%d by actor=%d role=%s", proID, req.Actor.ID, req.Actor.Role)

	if !req.Actor.IsAdmin() && !(req.Actor.IsPro() && req.Actor.ID == proID) {
		s.logger.Warn("UpdateSettings: access denied for actor=%d to pro=%d", req.Actor.ID, proID)
		return nil, ErrAccessDenied
	}

	if err := validateSettings(req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed for pro=%d: %v", proID, err)
		return nil, err
	}

	updated, err := s.settingsRepo.Upsert(ctx, &domain.ProSettings{
		ProID:               proID,
		SlotDurationMinutes: req.SlotDurationMinutes,
		RequiresDeposit:     req.RequiresDeposit,
		DepositPercent:      req.DepositPercent,
		AutoConfirm:         req.AutoConfirm,
		PriceAmount:         req.PriceAmount,
		Currency:            req.Currency,
	})
	if err != nil {
		s.logger.Error("UpdateSettings: repository error for pro=%d: %v", proID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: pro=%d settings updated", proID)
	return models.FromDomainSettings(updated), nil
}

// validateSettings проверяет бизнес-ограничения настроек
func validateSettings(req *models.UpdateSettingsRequest) error {
	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if req.RequiresDeposit && (req.DepositPercent < domain.MinDepositPercent || req.DepositPercent > domain.MaxDepositPercent) {
		return fmt.Errorf("%w: depositPercent must be between %d and %d",
			ErrInvalidInput, domain.MinDepositPercent, domain.MaxDepositPercent)
	}
	if req.PriceAmount < 0 {
		return fmt.Errorf("%w: priceAmount must not be negative", ErrInvalidInput)
	}
	if len(req.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidInput)
	}
	return nil
}
