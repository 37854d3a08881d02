package gcal

import "errors"

var (
	// ErrAuthExpired возвращается, когда токен доступа к календарю
	// отозван или просрочен. Вызывающий код пропускает фильтрацию
	// по календарю, а не падает
	ErrAuthExpired = errors.New("gcal: calendar authorization expired")

	// ErrUnavailable возвращается при сетевой или серверной ошибке
	// провайдера календаря
	ErrUnavailable = errors.New("gcal: calendar provider unavailable")
)
