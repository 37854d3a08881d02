package create_booking

import "time"

// Request модель запроса на создание бронирования.
// Заявитель - либо зарегистрированный клиент (CustomerID), либо гость
// (гостевые поля). Указывается строго один из вариантов
type Request struct {
	ProID int64

	CustomerID *int64
	GuestName  *string
	GuestPhone *string
	GuestEmail *string

	StartAt time.Time
	EndAt   time.Time

	CustomerNotes *string
}

// Response модель ответа на создание бронирования
type Response struct {
	ID    int64
	ProID int64

	CustomerID *int64
	GuestName  *string

	StartAt time.Time
	EndAt   time.Time

	Status        string
	PaymentStatus string
	PaymentType   string

	PriceAmount   int64
	Currency      string
	DepositAmount int64

	// PaymentRedirectURL заполняется, когда требуется оплата депозита:
	// клиент должен перейти по ссылке для завершения оплаты
	PaymentRedirectURL *string

	CreatedAt time.Time
}
