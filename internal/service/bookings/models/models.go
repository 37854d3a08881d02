package models

import (
	"errors"
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Actor  domain.Actor `json:"-"`
	Reason string       `json:"reason"`
}

// CompleteBookingRequest запрос на завершение занятия
type CompleteBookingRequest struct {
	Actor domain.Actor `json:"-"`
}

// RequestRefundRequest запрос возврата по бронированию
type RequestRefundRequest struct {
	Actor  domain.Actor `json:"-"`
	Reason string       `json:"reason"`
}

// GetUserBookingsRequest запрос на получение бронирований клиента
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetProBookingsRequest запрос на получение бронирований преподавателя
type GetProBookingsRequest struct {
	Actor           domain.Actor `json:"-"`
	ProID           int64        `json:"proId"`
	From            *time.Time   `json:"from,omitempty"`
	To              *time.Time   `json:"to,omitempty"`
	Status          *string      `json:"status,omitempty"`
	IncludeInactive bool         `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProBookingsRequest) ToDomainFilter() (domain.ProBookingsFilter, error) {
	filter := domain.ProBookingsFilter{
		ProID:           r.ProID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID    int64 `json:"id"`
	ProID int64 `json:"proId"`

	CustomerID *int64  `json:"customerId,omitempty"`
	GuestName  *string `json:"guestName,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`

	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentType   string `json:"paymentType"`

	PriceAmount   int64  `json:"priceAmount"`
	Currency      string `json:"currency"`
	DepositAmount int64  `json:"depositAmount"`

	RefundAmount      *int64  `json:"refundAmount,omitempty"`
	RefundReason      *string `json:"refundReason,omitempty"`
	RefundRequestedAt *string `json:"refundRequestedAt,omitempty"` // ISO 8601
	RefundProcessedAt *string `json:"refundProcessedAt,omitempty"` // ISO 8601

	DisputeStatus string `json:"disputeStatus"`

	CustomerNotes *string `json:"customerNotes,omitempty"`
	ProNotes      *string `json:"proNotes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// RefundResponse ответ на запрос возврата
type RefundResponse struct {
	BookingID     int64  `json:"bookingId"`
	RefundAmount  int64  `json:"refundAmount"`
	RefundPercent int    `json:"refundPercent"`
	PaymentStatus string `json:"paymentStatus"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		ProID:         b.ProID,
		CustomerID:    b.CustomerID,
		GuestName:     b.GuestName,
		GuestPhone:    b.GuestPhone,
		GuestEmail:    b.GuestEmail,
		StartAt:       b.StartAt,
		EndAt:         b.EndAt,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		PaymentType:   string(b.PaymentType),
		PriceAmount:   b.PriceAmount,
		Currency:      b.Currency,
		DepositAmount: b.DepositAmount,
		RefundAmount:  b.RefundAmount,
		RefundReason:  b.RefundReason,
		DisputeStatus: string(b.DisputeStatus),
		CustomerNotes: b.CustomerNotes,
		ProNotes:      b.ProNotes,

		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	resp.RefundRequestedAt = formatTime(b.RefundRequestedAt)
	resp.RefundProcessedAt = formatTime(b.RefundProcessedAt)
	resp.CancelledAt = formatTime(b.CancelledAt)

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result}
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
