package schedule

import "errors"

var (
	// ErrAccessDenied возвращается, когда у актора нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = errors.New("blocked interval not found")

	// ErrInvalidRule возвращается при некорректном правиле доступности
	ErrInvalidRule = errors.New("invalid availability rule")

	// ErrInvalidInterval возвращается при некорректном интервале блокировки
	ErrInvalidInterval = errors.New("invalid blocked interval")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
