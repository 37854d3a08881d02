package finalize_payment

import "time"

// Request модель запроса на финализацию платежа
type Request struct {
	PaymentRef string // идентификатор платежной сессии
}

// Response модель ответа финализации платежа
type Response struct {
	BookingID     int64
	Status        string
	PaymentStatus string
	StartAt       time.Time
	EndAt         time.Time

	// AlreadyFinalized true, если платеж был финализирован ранее:
	// повторный вызов безвреден
	AlreadyFinalized bool
}
