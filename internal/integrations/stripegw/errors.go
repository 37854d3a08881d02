package stripegw

import "errors"

var (
	// ErrCreateSession возвращается при ошибке создания Checkout-сессии
	ErrCreateSession = errors.New("stripegw: failed to create checkout session")

	// ErrPaymentNotCompleted возвращается, когда платеж не в статусе succeeded.
	// Подтверждение платежа работает fail-closed: любая неопределенность
	// трактуется как неуспех
	ErrPaymentNotCompleted = errors.New("stripegw: payment is not completed")

	// ErrPaymentLookup возвращается при ошибке запроса платежа у провайдера
	ErrPaymentLookup = errors.New("stripegw: failed to look up payment")

	// ErrRefundNotEligible возвращается, когда провайдер отклонил возврат:
	// платеж не захвачен, уже возвращен или оспорен
	ErrRefundNotEligible = errors.New("stripegw: payment is not eligible for refund")

	// ErrRefundFailed возвращается при ошибке выполнения возврата
	ErrRefundFailed = errors.New("stripegw: failed to issue refund")
)
