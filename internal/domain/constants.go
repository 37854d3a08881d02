package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 60
	DefaultDepositPercent      = 30
	DefaultCurrency            = "USD"
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 15
	MaxSlotDurationMinutes      = 240 // 4 hours
	MinDepositPercent           = 1
	MaxDepositPercent           = 100
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxDisputeMessageLength     = 2000
	MaxEvidenceURLs             = 10
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
)

// ActiveStatuses статусы бронирований, занимающих слот
// Используется при фильтрации для расчета доступности
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы бронирований, не занимающих слот
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
