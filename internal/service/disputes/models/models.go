package models

import (
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
)

// Resolution варианты исхода спора
const (
	ResolutionPro      = "pro"
	ResolutionCustomer = "customer"
)

// Request модели

// OpenDisputeRequest запрос на открытие спора
type OpenDisputeRequest struct {
	Actor        domain.Actor `json:"-"`
	Message      string       `json:"message"`
	EvidenceURLs []string     `json:"evidenceUrls,omitempty"`
}

// RespondDisputeRequest ответ преподавателя на спор
type RespondDisputeRequest struct {
	Actor        domain.Actor `json:"-"`
	Message      string       `json:"message"`
	EvidenceURLs []string     `json:"evidenceUrls,omitempty"`
}

// EscalateDisputeRequest запрос на эскалацию спора
type EscalateDisputeRequest struct {
	Actor   domain.Actor `json:"-"`
	Message string       `json:"message"`
}

// ResolveDisputeRequest запрос на разрешение спора.
// RefundAmount указывается при решении в пользу клиента, если вместе
// с решением выполняется возврат; без него возврат не производится
type ResolveDisputeRequest struct {
	Actor        domain.Actor `json:"-"`
	Resolution   string       `json:"resolution"` // "pro" или "customer"
	Notes        string       `json:"notes"`
	RefundAmount *int64       `json:"refundAmount,omitempty"`
}

// Response модели

// DisputeResponse состояние спора после операции
type DisputeResponse struct {
	BookingID     int64   `json:"bookingId"`
	DisputeStatus string  `json:"disputeStatus"`
	RefundAmount  *int64  `json:"refundAmount,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// DisputeLogEntryResponse одна запись журнала спора
type DisputeLogEntryResponse struct {
	ID           int64     `json:"id"`
	BookingID    int64     `json:"bookingId"`
	ActorID      *int64    `json:"actorId,omitempty"`
	ActorRole    string    `json:"actorRole"`
	Action       string    `json:"action"`
	Message      string    `json:"message"`
	EvidenceURLs []string  `json:"evidenceUrls,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DisputeLogResponse журнал спора в хронологическом порядке
type DisputeLogResponse struct {
	BookingID int64                     `json:"bookingId"`
	Entries   []DisputeLogEntryResponse `json:"entries"`
}

// Методы конвертации

// FromDomainLogEntries конвертирует записи журнала в DTO
func FromDomainLogEntries(bookingID int64, entries []*domain.DisputeLogEntry) *DisputeLogResponse {
	result := make([]DisputeLogEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, DisputeLogEntryResponse{
			ID:           e.ID,
			BookingID:    e.BookingID,
			ActorID:      e.ActorID,
			ActorRole:    string(e.ActorRole),
			Action:       e.Action,
			Message:      e.Message,
			EvidenceURLs: e.EvidenceURLs,
			CreatedAt:    e.CreatedAt,
		})
	}
	return &DisputeLogResponse{BookingID: bookingID, Entries: result}
}
