package finalize_payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	bookingRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/booking"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/notifier"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/stripegw"
)

type stubBookingRepo struct {
	booking         *domain.Booking
	getErr          error
	confirmedStatus domain.PaymentStatus
	confirmCalls    int
}

func (s *stubBookingRepo) GetByPaymentRef(ctx context.Context, paymentRef string) (*domain.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.booking, nil
}

func (s *stubBookingRepo) GetByIDForUpdate(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.booking, nil
}

func (s *stubBookingRepo) ConfirmPayment(ctx context.Context, bookingID int64, paymentStatus domain.PaymentStatus) error {
	s.confirmCalls++
	s.confirmedStatus = paymentStatus
	return nil
}

type stubPayments struct {
	err   error
	calls int
}

func (s *stubPayments) ConfirmPayment(ctx context.Context, paymentRef string) error {
	s.calls++
	return s.err
}

type stubNotifier struct {
	events []string
}

func (s *stubNotifier) Notify(ctx context.Context, n notifier.Notification) {
	s.events = append(s.events, n.Event)
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func pendingDepositBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		ProID:         1,
		StartAt:       time.Date(2025, 11, 4, 10, 0, 0, 0, time.UTC),
		EndAt:         time.Date(2025, 11, 4, 11, 0, 0, 0, time.UTC),
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentUnpaid,
		PaymentType:   domain.PaymentTypeDeposit,
	}
}

func TestExecute_ConfirmsDepositPayment(t *testing.T) {
	repo := &stubBookingRepo{booking: pendingDepositBooking()}
	payments := &stubPayments{}
	notify := &stubNotifier{}

	uc := NewUseCase(repo, payments, notify, passthroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{PaymentRef: "cs_test_123"})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.BookingID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.PaymentDepositPaid), resp.PaymentStatus)
	assert.False(t, resp.AlreadyFinalized)
	assert.Equal(t, domain.PaymentDepositPaid, repo.confirmedStatus)
	assert.Equal(t, []string{notifier.EventBookingConfirmed}, notify.events)
}

func TestExecute_FullPaymentGetsPaidStatus(t *testing.T) {
	booking := pendingDepositBooking()
	booking.PaymentType = domain.PaymentTypeFull
	repo := &stubBookingRepo{booking: booking}

	uc := NewUseCase(repo, &stubPayments{}, &stubNotifier{}, passthroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{PaymentRef: "cs_test_123"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
}

func TestExecute_IdempotentWhenAlreadyPaid(t *testing.T) {
	booking := pendingDepositBooking()
	booking.Status = domain.StatusConfirmed
	booking.PaymentStatus = domain.PaymentDepositPaid
	repo := &stubBookingRepo{booking: booking}
	payments := &stubPayments{}
	notify := &stubNotifier{}

	uc := NewUseCase(repo, payments, notify, passthroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{PaymentRef: "cs_test_123"})
	require.NoError(t, err)

	// the provider is not contacted again, nothing is re-notified
	assert.True(t, resp.AlreadyFinalized)
	assert.Zero(t, payments.calls)
	assert.Zero(t, repo.confirmCalls)
	assert.Empty(t, notify.events)
}

func TestExecute_PaymentNotCompletedFailsClosed(t *testing.T) {
	repo := &stubBookingRepo{booking: pendingDepositBooking()}
	payments := &stubPayments{err: stripegw.ErrPaymentNotCompleted}

	uc := NewUseCase(repo, payments, &stubNotifier{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{PaymentRef: "cs_test_123"})
	assert.ErrorIs(t, err, ErrPaymentNotCompleted)
	assert.Zero(t, repo.confirmCalls)
}

func TestExecute_ProviderErrorFailsClosed(t *testing.T) {
	repo := &stubBookingRepo{booking: pendingDepositBooking()}
	payments := &stubPayments{err: errors.New("stripe timeout")}

	uc := NewUseCase(repo, payments, &stubNotifier{}, passthroughTxManager{}, nopLogger{})

	// an unreachable provider never confirms a booking
	_, err := uc.Execute(context.Background(), &Request{PaymentRef: "cs_test_123"})
	assert.ErrorIs(t, err, ErrPaymentNotCompleted)
	assert.Zero(t, repo.confirmCalls)
}

func TestExecute_UnknownPaymentRef(t *testing.T) {
	repo := &stubBookingRepo{getErr: bookingRepo.ErrBookingNotFound}

	uc := NewUseCase(repo, &stubPayments{}, &stubNotifier{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{PaymentRef: "cs_unknown"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_EmptyRef(t *testing.T) {
	uc := NewUseCase(&stubBookingRepo{}, &stubPayments{}, &stubNotifier{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
