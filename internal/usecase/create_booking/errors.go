package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDuration возвращается, когда длительность запроса
	// не совпадает с длительностью слота преподавателя
	ErrInvalidDuration = errors.New("duration does not match slot duration")

	// ErrOutsideAvailability возвращается, когда запрошенный интервал
	// не попадает в рабочие окна преподавателя
	ErrOutsideAvailability = errors.New("slot is outside working hours")

	// ErrSlotNotAvailable возвращается, когда слот занят другим бронированием
	// или блокировкой
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrPaymentInitFailed возвращается, когда не удалось создать сессию
	// оплаты депозита. Бронирование при этом отменяется
	ErrPaymentInitFailed = errors.New("failed to initiate deposit payment")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
