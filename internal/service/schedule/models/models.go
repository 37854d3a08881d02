package models

import (
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
)

// Request модели

// RuleInput одно правило доступности во входном наборе
type RuleInput struct {
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`    // 0 (воскресенье) - 6 (суббота)
	SpecificDate *string `json:"specificDate,omitempty"` // "2006-01-02", разовое правило
	StartTime    string  `json:"startTime"`              // "HH:MM"
	EndTime      string  `json:"endTime"`                // "HH:MM"
}

// UpdateScheduleRequest запрос на полную замену расписания преподавателя
type UpdateScheduleRequest struct {
	Actor domain.Actor `json:"-"`
	Rules []RuleInput  `json:"rules"`
}

// AddBlockRequest запрос на блокировку интервала
type AddBlockRequest struct {
	Actor   domain.Actor `json:"-"`
	StartAt time.Time    `json:"startAt"`
	EndAt   time.Time    `json:"endAt"`
	Reason  *string      `json:"reason,omitempty"`
}

// GetBlocksRequest запрос блокировок в окне
type GetBlocksRequest struct {
	Actor domain.Actor `json:"-"`
	From  time.Time    `json:"from"`
	To    time.Time    `json:"to"`
}

// Response модели

// RuleResponse правило доступности
type RuleResponse struct {
	ID           int64   `json:"id"`
	DayOfWeek    *int    `json:"dayOfWeek,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Recurring    bool    `json:"recurring"`
}

// ScheduleResponse расписание преподавателя
type ScheduleResponse struct {
	ProID int64          `json:"proId"`
	Rules []RuleResponse `json:"rules"`
}

// BlockResponse блокировка интервала
type BlockResponse struct {
	ID      int64     `json:"id"`
	ProID   int64     `json:"proId"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  *string   `json:"reason,omitempty"`
	Source  string    `json:"source"`
}

// BlockListResponse список блокировок
type BlockListResponse struct {
	ProID  int64           `json:"proId"`
	Blocks []BlockResponse `json:"blocks"`
}

// Методы конвертации

// FromDomainRules конвертирует правила в DTO
func FromDomainRules(proID int64, rules []*domain.AvailabilityRule) *ScheduleResponse {
	result := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		resp := RuleResponse{
			ID:        r.ID,
			DayOfWeek: r.DayOfWeek,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Recurring: r.Recurring,
		}
		if r.SpecificDate != nil {
			date := r.SpecificDate.Format(domain.DateFormat)
			resp.SpecificDate = &date
		}
		result = append(result, resp)
	}
	return &ScheduleResponse{ProID: proID, Rules: result}
}

// FromDomainBlock конвертирует блокировку в DTO
func FromDomainBlock(b *domain.BlockedInterval) *BlockResponse {
	return &BlockResponse{
		ID:      b.ID,
		ProID:   b.ProID,
		StartAt: b.StartAt,
		EndAt:   b.EndAt,
		Reason:  b.Reason,
		Source:  b.Source,
	}
}

// FromDomainBlocks конвертирует список блокировок в DTO
func FromDomainBlocks(proID int64, blocks []*domain.BlockedInterval) *BlockListResponse {
	result := make([]BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		result = append(result, *FromDomainBlock(b))
	}
	return &BlockListResponse{ProID: proID, Blocks: result}
}
