package get_available_slots

import (
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	getSlots "github.com/golfpro-saas/GolfPro-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	StartAt         string `json:"startAt"` // ISO 8601
	EndAt           string `json:"endAt"`   // ISO 8601
	DurationMinutes int    `json:"durationMinutes"`
}

// SlotsResponse HTTP модель ответа со списком слотов
type SlotsResponse struct {
	ProID int64          `json:"proId"`
	Date  string         `json:"date"` // "2025-10-15"
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartAt:         s.StartAt.Format(time.RFC3339),
			EndAt:           s.EndAt.Format(time.RFC3339),
			DurationMinutes: s.DurationMinutes,
		})
	}

	return &SlotsResponse{
		ProID: resp.ProID,
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}
