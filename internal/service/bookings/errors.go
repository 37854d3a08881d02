package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	// в текущем статусе
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotComplete возвращается, когда бронирование не может быть
	// завершено: оно не подтверждено или еще не прошло
	ErrCannotComplete = errors.New("booking cannot be completed")

	// ErrNotPaid возвращается при запросе возврата по неоплаченному бронированию
	ErrNotPaid = errors.New("booking is not paid")

	// ErrRefundNotEligible возвращается, когда возврат невозможен:
	// по политике сумма равна нулю либо провайдер отклонил возврат
	ErrRefundNotEligible = errors.New("booking is not eligible for refund")

	// ErrRefundAlreadyProcessed возвращается при повторном запросе возврата
	ErrRefundAlreadyProcessed = errors.New("refund already processed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
