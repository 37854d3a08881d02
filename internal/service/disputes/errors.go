package disputes

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у актора нет прав на операцию.
	// Отличается от ошибок состояния: состояние спора здесь ни при чем
	ErrAccessDenied = errors.New("access denied")

	// ErrNotDisputable возвращается при попытке открыть спор по бронированию
	// без захваченного платежа
	ErrNotDisputable = errors.New("booking is not disputable")

	// ErrDisputeAlreadyOpen возвращается при повторном открытии спора
	ErrDisputeAlreadyOpen = errors.New("dispute already open")

	// ErrNoActiveDispute возвращается, когда операция требует активного спора
	ErrNoActiveDispute = errors.New("no active dispute")

	// ErrInvalidTransition возвращается, когда переход недопустим
	// из текущего состояния спора
	ErrInvalidTransition = errors.New("invalid dispute transition")

	// ErrDisputeStateChanged возвращается, когда состояние спора изменилось
	// параллельной операцией между чтением и записью
	ErrDisputeStateChanged = errors.New("dispute state changed concurrently")

	// ErrRefundFailed возвращается, когда возврат при решении в пользу
	// клиента не прошел. Состояние спора при этом не меняется
	ErrRefundFailed = errors.New("refund failed, dispute state unchanged")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
