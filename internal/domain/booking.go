package domain

import (
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/pkg/timerange"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentPaid        PaymentStatus = "paid"
	PaymentDepositPaid PaymentStatus = "deposit_paid"
	PaymentRefunded    PaymentStatus = "refunded"
)

// PaymentType represents how the booking is paid for
type PaymentType string

const (
	PaymentTypeNone    PaymentType = "none"
	PaymentTypeDeposit PaymentType = "deposit"
	PaymentTypeFull    PaymentType = "full"
)

// Booking represents a lesson reservation with a pro.
// The requester is either a registered customer (CustomerID) or a guest
// (GuestName/GuestPhone/GuestEmail) - never both.
type Booking struct {
	ID    int64
	ProID int64

	CustomerID *int64
	GuestName  *string
	GuestPhone *string
	GuestEmail *string

	StartAt time.Time
	EndAt   time.Time

	Status        BookingStatus
	PaymentStatus PaymentStatus
	PaymentType   PaymentType

	PriceAmount   int64 // minor currency units
	Currency      string
	DepositAmount int64
	PaymentRef    *string

	RefundAmount      *int64
	RefundReason      *string
	RefundRequestedAt *time.Time
	RefundProcessedAt *time.Time

	DisputeStatus          DisputeStatus
	DisputeOpenedAt        *time.Time
	DisputeResolvedAt      *time.Time
	DisputeResolutionNotes *string

	CustomerNotes *string
	ProNotes      *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the booked interval as a half-open time range.
func (b *Booking) Range() timerange.Range {
	return timerange.Range{Start: b.StartAt, End: b.EndAt}
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsGuest returns true if the booking was made by an unregistered guest
func (b *Booking) IsGuest() bool {
	return b.CustomerID == nil
}

// IsRequestedBy returns true if the given registered user made this booking
func (b *Booking) IsRequestedBy(userID int64) bool {
	return b.CustomerID != nil && *b.CustomerID == userID
}

// IsOwnedByPro returns true if the given pro owns this booking
func (b *Booking) IsOwnedByPro(proID int64) bool {
	return b.ProID == proID
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCompleted returns true if the booking may transition to completed:
// it was confirmed and its end time has passed
func (b *Booking) CanBeCompleted(now time.Time) bool {
	return b.Status == StatusConfirmed && b.EndAt.Before(now)
}

// IsPaid returns true if the booking carries a captured payment
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentPaid || b.PaymentStatus == PaymentDepositPaid
}

// ProBookingsFilter фильтр для получения бронирований преподавателя
type ProBookingsFilter struct {
	ProID           int64
	From            *time.Time     // начало окна (опционально)
	To              *time.Time     // конец окна (опционально)
	Status          *BookingStatus // фильтр по статусу (опционально)
	IncludeInactive bool           // включать ли отмененные и завершенные
}
