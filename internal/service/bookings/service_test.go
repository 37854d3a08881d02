package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/notifier"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/bookings/models"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/ptr"
)

type stubBookingRepo struct {
	booking *domain.Booking
	getErr  error

	cancelled       bool
	cancelReason    string
	updatedStatus   *domain.BookingStatus
	refundRequested bool
	refundProcessed bool
	refundAmount    int64
}

func (s *stubBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.booking, nil
}

func (s *stubBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.GetByID(ctx, id)
}

func (s *stubBookingRepo) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	if s.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{s.booking}, nil
}

func (s *stubBookingRepo) GetByProWithFilter(ctx context.Context, filter domain.ProBookingsFilter) ([]*domain.Booking, error) {
	if s.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{s.booking}, nil
}

func (s *stubBookingRepo) Cancel(ctx context.Context, bookingID int64, reason string) error {
	s.cancelled = true
	s.cancelReason = reason
	return nil
}

func (s *stubBookingRepo) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	s.updatedStatus = &status
	return nil
}

func (s *stubBookingRepo) MarkRefundRequested(ctx context.Context, bookingID int64, amount int64, reason string) error {
	s.refundRequested = true
	return nil
}

func (s *stubBookingRepo) MarkRefundProcessed(ctx context.Context, bookingID int64, amount int64, reason string) error {
	s.refundProcessed = true
	s.refundAmount = amount
	return nil
}

type stubPayments struct {
	eligibilityErr error
	refundErr      error
	refunded       []int64
}

func (s *stubPayments) CheckRefundEligibility(ctx context.Context, paymentRef string, amount int64) error {
	return s.eligibilityErr
}

func (s *stubPayments) IssueRefund(ctx context.Context, paymentRef string, amount int64) error {
	if s.refundErr != nil {
		return s.refundErr
	}
	s.refunded = append(s.refunded, amount)
	return nil
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

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var (
	customer = domain.Actor{ID: 7, Role: domain.RoleCustomer}
	pro      = domain.Actor{ID: 1, Role: domain.RolePro}
	admin    = domain.Actor{ID: 99, Role: domain.RoleAdmin}
	stranger = domain.Actor{ID: 1000, Role: domain.RoleCustomer}

	lessonStart = time.Date(2025, 11, 4, 10, 0, 0, 0, time.UTC)
)

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		ProID:         1,
		CustomerID:    ptr.Ptr[int64](7),
		StartAt:       lessonStart,
		EndAt:         lessonStart.Add(time.Hour),
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
		PaymentType:   domain.PaymentTypeFull,
		PriceAmount:   10000,
		Currency:      "USD",
		PaymentRef:    ptr.Ptr("cs_test_123"),
	}
}

type fixture struct {
	bookings *stubBookingRepo
	payments *stubPayments
	notify   *stubNotifier
	svc      *Service
}

func newFixture(booking *domain.Booking, now time.Time) *fixture {
	f := &fixture{
		bookings: &stubBookingRepo{booking: booking},
		payments: &stubPayments{},
		notify:   &stubNotifier{},
	}
	f.svc = NewService(f.bookings, f.payments, f.notify, passthroughTxManager{}, nopLogger{})
	f.svc.timeProvider = &fixedTime{now: now}
	return f
}

// GetByID

func TestGetByID_Visibility(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart)

	for _, actor := range []domain.Actor{customer, pro, admin} {
		resp, err := f.svc.GetByID(context.Background(), 42, actor)
		require.NoError(t, err, "actor role %s", actor.Role)
		assert.Equal(t, int64(42), resp.ID)
	}

	_, err := f.svc.GetByID(context.Background(), 42, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// Cancel

func TestCancel_ByRequester(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart)

	err := f.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		Actor:  customer,
		Reason: "schedule conflict",
	})
	require.NoError(t, err)

	assert.True(t, f.bookings.cancelled)
	assert.Equal(t, "schedule conflict", f.bookings.cancelReason)
	assert.Equal(t, []string{notifier.EventBookingCancelled}, f.notify.events)
}

func TestCancel_StrangerDenied(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart)

	err := f.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{Actor: stranger})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, f.bookings.cancelled)
}

func TestCancel_OwningProDenied(t *testing.T) {
	// cancellation is requester self-service: the pro frees the time
	// through blocks or the dispute flow, not by cancelling for the customer
	f := newFixture(confirmedBooking(), lessonStart)

	err := f.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		Actor:  pro,
		Reason: "not feeling well",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, f.bookings.cancelled)
}

func TestCancel_AdminAllowed(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart)

	err := f.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{Actor: admin})
	require.NoError(t, err)
	assert.True(t, f.bookings.cancelled)
}

func TestCancel_CompletedBookingRejected(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusCompleted

	f := newFixture(booking, lessonStart)

	err := f.svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{Actor: customer})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

// Complete

func TestComplete_ProCompletesPastLesson(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart.Add(2*time.Hour))

	err := f.svc.Complete(context.Background(), 42, &models.CompleteBookingRequest{Actor: pro})
	require.NoError(t, err)
	require.NotNil(t, f.bookings.updatedStatus)
	assert.Equal(t, domain.StatusCompleted, *f.bookings.updatedStatus)
}

func TestComplete_BeforeEndRejected(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart.Add(30*time.Minute))

	err := f.svc.Complete(context.Background(), 42, &models.CompleteBookingRequest{Actor: pro})
	assert.ErrorIs(t, err, ErrCannotComplete)
}

func TestComplete_CustomerDenied(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart.Add(2*time.Hour))

	err := f.svc.Complete(context.Background(), 42, &models.CompleteBookingRequest{Actor: customer})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// RequestRefund

func TestRequestRefund_FullRefundOutside24Hours(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart.Add(-30*time.Hour))

	resp, err := f.svc.RequestRefund(context.Background(), 42, &models.RequestRefundRequest{
		Actor:  customer,
		Reason: "cannot make it",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10000), resp.RefundAmount)
	assert.Equal(t, 100, resp.RefundPercent)
	assert.Equal(t, string(domain.PaymentRefunded), resp.PaymentStatus)
	assert.True(t, f.bookings.refundProcessed)
	assert.Equal(t, []int64{10000}, f.payments.refunded)
	assert.Equal(t, []string{notifier.EventRefundProcessed}, f.notify.events)
}

func TestRequestRefund_HalfRefundWithin24Hours(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart.Add(-18*time.Hour))

	resp, err := f.svc.RequestRefund(context.Background(), 42, &models.RequestRefundRequest{Actor: customer})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), resp.RefundAmount)
	assert.Equal(t, 50, resp.RefundPercent)
}

func TestRequestRefund_DepositBaseWhenDepositPaid(t *testing.T) {
	booking := confirmedBooking()
	booking.PaymentStatus = domain.PaymentDepositPaid
	booking.PaymentType = domain.PaymentTypeDeposit
	booking.DepositAmount = 3000

	f := newFixture(booking, lessonStart.Add(-30*time.Hour))

	resp, err := f.svc.RequestRefund(context.Background(), 42, &models.RequestRefundRequest{Actor: customer})
	require.NoError(t, err)

	// the refund base is what was actually captured, not the lesson price
	assert.Equal(t, int64(3000), resp.RefundAmount)
}

func TestRequestRefund_InsideCutoffNotEligible(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart.Add(-6*time.Hour))

	_, err := f.svc.RequestRefund(context.Background(), 42, &models.RequestRefundRequest{Actor: customer})
	assert.ErrorIs(t, err, ErrRefundNotEligible)
	assert.Empty(t, f.payments.refunded)
}

func TestRequestRefund_UnpaidRejected(t *testing.T) {
	booking := confirmedBooking()
	booking.PaymentStatus = domain.PaymentUnpaid
	booking.PaymentRef = nil

	f := newFixture(booking, lessonStart.Add(-30*time.Hour))

	_, err := f.svc.RequestRefund(context.Background(), 42, &models.RequestRefundRequest{Actor: customer})
	assert.ErrorIs(t, err, ErrNotPaid)
}

func TestRequestRefund_AlreadyRefunded(t *testing.T) {
	booking := confirmedBooking()
	booking.PaymentStatus = domain.PaymentRefunded

	f := newFixture(booking, lessonStart.Add(-30*time.Hour))

	_, err := f.svc.RequestRefund(context.Background(), 42, &models.RequestRefundRequest{Actor: customer})
	assert.ErrorIs(t, err, ErrRefundAlreadyProcessed)
}

func TestRequestRefund_ProCannotRequest(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart.Add(-30*time.Hour))

	_, err := f.svc.RequestRefund(context.Background(), 42, &models.RequestRefundRequest{Actor: pro})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRequestRefund_ProviderRejectionRollsBack(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart.Add(-30*time.Hour))
	f.payments.eligibilityErr = errors.New("charge disputed")

	_, err := f.svc.RequestRefund(context.Background(), 42, &models.RequestRefundRequest{Actor: customer})
	assert.ErrorIs(t, err, ErrRefundNotEligible)

	// rejection aborts before any money moves
	assert.Empty(t, f.payments.refunded)
	assert.False(t, f.bookings.refundProcessed)
	assert.Empty(t, f.notify.events)
}

// GetProBookings

func TestGetProBookings_Access(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart)

	_, err := f.svc.GetProBookings(context.Background(), &models.GetProBookingsRequest{
		Actor: pro,
		ProID: 1,
	})
	assert.NoError(t, err)

	_, err = f.svc.GetProBookings(context.Background(), &models.GetProBookingsRequest{
		Actor: pro,
		ProID: 2,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetProBookings(context.Background(), &models.GetProBookingsRequest{
		Actor: admin,
		ProID: 2,
	})
	assert.NoError(t, err)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	f := newFixture(confirmedBooking(), lessonStart)

	_, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("teleported"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
