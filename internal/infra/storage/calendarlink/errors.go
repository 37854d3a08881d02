package calendarlink

import "errors"

var (
	// ErrLinkNotFound возвращается, когда привязка календаря не найдена
	ErrLinkNotFound = errors.New("calendarlink.repository: calendar link not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendarlink.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendarlink.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendarlink.repository: failed to scan row")
)
