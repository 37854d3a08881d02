package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotConflict возвращается, когда exclusion constraint отклонил вставку:
	// интервал пересекается с активным бронированием этого преподавателя.
	// Именно constraint, а не проверка в коде, является источником истины
	ErrSlotConflict = errors.New("booking.repository: slot conflicts with an existing booking")

	// ErrDisputeStateChanged возвращается, когда CAS-обновление статуса спора
	// не прошло: состояние изменилось между чтением и записью
	ErrDisputeStateChanged = errors.New("booking.repository: dispute state changed concurrently")

	// ErrDuplicatePaymentRef возвращается при попытке привязать платеж,
	// уже привязанный к другому бронированию
	ErrDuplicatePaymentRef = errors.New("booking.repository: payment reference already used")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
