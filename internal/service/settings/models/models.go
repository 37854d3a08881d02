package models

import "github.com/golfpro-saas/GolfPro-BookingService/internal/domain"

// Request модели

// UpdateSettingsRequest запрос на обновление настроек преподавателя
type UpdateSettingsRequest struct {
	Actor               domain.Actor `json:"-"`
	SlotDurationMinutes int          `json:"slotDurationMinutes"`
	RequiresDeposit     bool         `json:"requiresDeposit"`
	DepositPercent      int          `json:"depositPercent"`
	AutoConfirm         bool         `json:"autoConfirm"`
	PriceAmount         int64        `json:"priceAmount"`
	Currency            string       `json:"currency"`
}

// Response модели

// SettingsResponse настройки бронирования преподавателя
type SettingsResponse struct {
	ProID               int64  `json:"proId"`
	SlotDurationMinutes int    `json:"slotDurationMinutes"`
	RequiresDeposit     bool   `json:"requiresDeposit"`
	DepositPercent      int    `json:"depositPercent"`
	AutoConfirm         bool   `json:"autoConfirm"`
	PriceAmount         int64  `json:"priceAmount"`
	Currency            string `json:"currency"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.ProSettings) *SettingsResponse {
	return &SettingsResponse{
		ProID:               s.ProID,
		SlotDurationMinutes: s.SlotDurationMinutes,
		RequiresDeposit:     s.RequiresDeposit,
		DepositPercent:      s.DepositPercent,
		AutoConfirm:         s.AutoConfirm,
		PriceAmount:         s.PriceAmount,
		Currency:            s.Currency,
	}
}
