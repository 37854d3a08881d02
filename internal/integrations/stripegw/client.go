package stripegw

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config конфигурация платежного шлюза
type Config struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

// Client шлюз платежей поверх Stripe.
// Ссылкой на платеж (payment_ref) служит идентификатор Checkout-сессии
type Client struct {
	sc     *client.API
	config Config
	logger Logger
}

// NewClient создает новый платежный шлюз
func NewClient(cfg Config, logger Logger) *Client {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)

	return &Client{
		sc:     sc,
		config: cfg,
		logger: logger,
	}
}

// DepositSession результат создания сессии оплаты депозита
type DepositSession struct {
	PaymentRef  string
	RedirectURL string
}

// InitiateDeposit создает Checkout-сессию на оплату депозита.
// Ключ идемпотентности генерируется на каждый вызов: повтор запроса
// со стороны клиента создаст новую сессию, а не задублирует платеж
func (c *Client) InitiateDeposit(ctx context.Context, bookingID int64, amount int64, currency, description string) (*DepositSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(c.config.SuccessURL),
		CancelURL:  stripe.String(c.config.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"booking_id": fmt.Sprintf("%d", bookingID),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	session, err := c.sc.CheckoutSessions.New(params)
	if err != nil {
		c.logger.Error("stripegw: InitiateDeposit - booking %d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrCreateSession, err)
	}

	c.logger.Info("stripegw: InitiateDeposit - booking %d, session %s", bookingID, session.ID)

	return &DepositSession{
		PaymentRef:  session.ID,
		RedirectURL: session.URL,
	}, nil
}

// ConfirmPayment проверяет, что платеж по сессии завершен.
// Fail-closed: сетевая ошибка или неопределенный статус означают неуспех
func (c *Client) ConfirmPayment(ctx context.Context, paymentRef string) error {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := c.sc.CheckoutSessions.Get(paymentRef, params)
	if err != nil {
		c.logger.Error("stripegw: ConfirmPayment - session %s: %v", paymentRef, err)
		return fmt.Errorf("%w: %v", ErrPaymentLookup, err)
	}

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		c.logger.Warn("stripegw: ConfirmPayment - session %s not paid, status %s", paymentRef, session.PaymentStatus)
		return fmt.Errorf("%w: status %s", ErrPaymentNotCompleted, session.PaymentStatus)
	}

	return nil
}

// CheckRefundEligibility проверяет у провайдера, что по платежу
// доступна запрошенная сумма возврата
func (c *Client) CheckRefundEligibility(ctx context.Context, paymentRef string, amount int64) error {
	intent, err := c.paymentIntentBySession(ctx, paymentRef)
	if err != nil {
		return err
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return fmt.Errorf("%w: payment intent status %s", ErrRefundNotEligible, intent.Status)
	}

	var refunded int64
	if intent.LatestCharge != nil {
		refunded = intent.LatestCharge.AmountRefunded
	}
	if intent.AmountReceived-refunded < amount {
		return fmt.Errorf("%w: received %d, refunded %d, requested %d",
			ErrRefundNotEligible, intent.AmountReceived, refunded, amount)
	}

	return nil
}

// IssueRefund выполняет возврат указанной суммы по платежу
func (c *Client) IssueRefund(ctx context.Context, paymentRef string, amount int64) error {
	intent, err := c.paymentIntentBySession(ctx, paymentRef)
	if err != nil {
		return err
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intent.ID),
		Amount:        stripe.Int64(amount),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	refund, err := c.sc.Refunds.New(params)
	if err != nil {
		c.logger.Error("stripegw: IssueRefund - session %s: %v", paymentRef, err)
		return fmt.Errorf("%w: %v", ErrRefundFailed, err)
	}

	c.logger.Info("stripegw: IssueRefund - session %s, refund %s, amount %d", paymentRef, refund.ID, amount)

	return nil
}

// paymentIntentBySession получает платеж по идентификатору Checkout-сессии
func (c *Client) paymentIntentBySession(ctx context.Context, paymentRef string) (*stripe.PaymentIntent, error) {
	sessionParams := &stripe.CheckoutSessionParams{}
	sessionParams.Context = ctx

	session, err := c.sc.CheckoutSessions.Get(paymentRef, sessionParams)
	if err != nil {
		c.logger.Error("stripegw: paymentIntentBySession - session %s: %v", paymentRef, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentLookup, err)
	}
	if session.PaymentIntent == nil {
		return nil, fmt.Errorf("%w: session %s has no payment intent", ErrPaymentLookup, paymentRef)
	}

	intentParams := &stripe.PaymentIntentParams{}
	intentParams.Context = ctx
	intentParams.AddExpand("latest_charge")

	intent, err := c.sc.PaymentIntents.Get(session.PaymentIntent.ID, intentParams)
	if err != nil {
		c.logger.Error("stripegw: paymentIntentBySession - intent %s: %v", session.PaymentIntent.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentLookup, err)
	}

	return intent, nil
}
