package create_booking

import (
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	createBooking "github.com/golfpro-saas/GolfPro-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model.
// Для гостевого бронирования передаются гостевые поля, для
// зарегистрированного клиента заявитель берется из аутентификации
type CreateBookingRequest struct {
	ProID   int64  `json:"proId"`
	StartAt string `json:"startAt"` // ISO 8601
	EndAt   string `json:"endAt"`   // ISO 8601

	GuestName  *string `json:"guestName,omitempty"`
	GuestPhone *string `json:"guestPhone,omitempty"`
	GuestEmail *string `json:"guestEmail,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID    int64 `json:"id"`
	ProID int64 `json:"proId"`

	CustomerID *int64  `json:"customerId,omitempty"`
	GuestName  *string `json:"guestName,omitempty"`

	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentType   string `json:"paymentType"`

	PriceAmount   int64  `json:"priceAmount"`
	Currency      string `json:"currency"`
	DepositAmount int64  `json:"depositAmount"`

	PaymentRedirectURL *string `json:"paymentRedirectUrl,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID *int64) (*createBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}
	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ProID:         r.ProID,
		CustomerID:    customerID,
		GuestName:     r.GuestName,
		GuestPhone:    r.GuestPhone,
		GuestEmail:    r.GuestEmail,
		StartAt:       startAt,
		EndAt:         endAt,
		CustomerNotes: r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		ProID:              resp.ProID,
		CustomerID:         resp.CustomerID,
		GuestName:          resp.GuestName,
		StartAt:            resp.StartAt.Format(time.RFC3339),
		EndAt:              resp.EndAt.Format(time.RFC3339),
		Status:             resp.Status,
		PaymentStatus:      resp.PaymentStatus,
		PaymentType:        resp.PaymentType,
		PriceAmount:        resp.PriceAmount,
		Currency:           resp.Currency,
		DepositAmount:      resp.DepositAmount,
		PaymentRedirectURL: resp.PaymentRedirectURL,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
	}
}

// customerFromActor возвращает ID заявителя для зарегистрированного клиента
func customerFromActor(actor domain.Actor, ok bool) *int64 {
	if !ok || !actor.IsCustomer() {
		return nil
	}
	id := actor.ID
	return &id
}
