package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	ProID int64     // ID преподавателя
	Date  time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ProID int64     // ID преподавателя
	Date  time.Time // Дата, на которую запрашивались слоты
	Slots []Slot    // Список доступных слотов по возрастанию времени начала
}

// Slot модель доступного слота
type Slot struct {
	StartAt         time.Time // Начало слота
	EndAt           time.Time // Конец слота (не входит в интервал)
	DurationMinutes int       // Длительность слота в минутах
}
