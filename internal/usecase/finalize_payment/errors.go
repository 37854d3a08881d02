package finalize_payment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование по ссылке
	// на платеж не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrPaymentNotCompleted возвращается, когда провайдер не подтвердил
	// платеж. Подтверждение работает fail-closed
	ErrPaymentNotCompleted = errors.New("payment is not completed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
