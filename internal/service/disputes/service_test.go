package disputes

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
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/disputes/models"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/ptr"
)

type stubBookingRepo struct {
	booking *domain.Booking
	getErr  error

	transitionErr error
	transitionTo  *domain.DisputeStatus

	resolveErr error
	resolvedTo *domain.DisputeStatus

	refundMarked bool
	refundAmount int64
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

func (s *stubBookingRepo) TransitionDispute(ctx context.Context, id int64, from []domain.DisputeStatus, to domain.DisputeStatus) error {
	if s.transitionErr != nil {
		return s.transitionErr
	}
	s.transitionTo = &to
	return nil
}

func (s *stubBookingRepo) ResolveDispute(ctx context.Context, id int64, from []domain.DisputeStatus, to domain.DisputeStatus, notes string) error {
	if s.resolveErr != nil {
		return s.resolveErr
	}
	s.resolvedTo = &to
	return nil
}

func (s *stubBookingRepo) MarkRefundProcessed(ctx context.Context, id int64, amount int64, reason string) error {
	s.refundMarked = true
	s.refundAmount = amount
	return nil
}

type stubLogRepo struct {
	entries []*domain.DisputeLogEntry
}

func (s *stubLogRepo) Append(ctx context.Context, entry *domain.DisputeLogEntry) (*domain.DisputeLogEntry, error) {
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *stubLogRepo) GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.DisputeLogEntry, error) {
	return s.entries, nil
}

type stubPayments struct {
	eligibilityErr    error
	eligibilityChecks int

	err      error
	refunded []int64
}

func (s *stubPayments) CheckRefundEligibility(ctx context.Context, paymentRef string, amount int64) error {
	s.eligibilityChecks++
	return s.eligibilityErr
}

func (s *stubPayments) IssueRefund(ctx context.Context, paymentRef string, amount int64) error {
	if s.err != nil {
		return s.err
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

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var (
	customer = domain.Actor{ID: 7, Role: domain.RoleCustomer}
	pro      = domain.Actor{ID: 1, Role: domain.RolePro}
	admin    = domain.Actor{ID: 99, Role: domain.RoleAdmin}
	stranger = domain.Actor{ID: 1000, Role: domain.RoleCustomer}
)

func paidBooking(disputeStatus domain.DisputeStatus) *domain.Booking {
	return &domain.Booking{
		ID:            42,
		ProID:         1,
		CustomerID:    ptr.Ptr[int64](7),
		StartAt:       time.Date(2025, 11, 4, 10, 0, 0, 0, time.UTC),
		EndAt:         time.Date(2025, 11, 4, 11, 0, 0, 0, time.UTC),
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
		PaymentType:   domain.PaymentTypeFull,
		PriceAmount:   10000,
		Currency:      "USD",
		PaymentRef:    ptr.Ptr("cs_test_123"),
		DisputeStatus: disputeStatus,
	}
}

type fixture struct {
	bookings *stubBookingRepo
	log      *stubLogRepo
	payments *stubPayments
	notify   *stubNotifier
	svc      *Service
}

func newFixture(booking *domain.Booking) *fixture {
	f := &fixture{
		bookings: &stubBookingRepo{booking: booking},
		log:      &stubLogRepo{},
		payments: &stubPayments{},
		notify:   &stubNotifier{},
	}
	f.svc = NewService(f.bookings, f.log, f.payments, f.notify, passthroughTxManager{}, nopLogger{})
	return f
}

// Open

func TestOpen_CustomerOpensDispute(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeNone))

	resp, err := f.svc.Open(context.Background(), 42, &models.OpenDisputeRequest{
		Actor:   customer,
		Message: "lesson never happened",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.DisputeOpened), resp.DisputeStatus)
	require.Len(t, f.log.entries, 1)
	assert.Equal(t, domain.DisputeActionOpened, f.log.entries[0].Action)
	assert.Equal(t, []string{notifier.EventDisputeOpened}, f.notify.events)
}

func TestOpen_RequiresMessage(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeNone))

	_, err := f.svc.Open(context.Background(), 42, &models.OpenDisputeRequest{Actor: customer})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOpen_StrangerGetsAccessDeniedBeforeStateChecks(t *testing.T) {
	// unpaid booking with an open dispute: a stranger still sees access
	// denied, not the state of someone else's dispute
	booking := paidBooking(domain.DisputeOpened)
	booking.PaymentStatus = domain.PaymentUnpaid

	f := newFixture(booking)

	_, err := f.svc.Open(context.Background(), 42, &models.OpenDisputeRequest{
		Actor:   stranger,
		Message: "x",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestOpen_OwningProCanOpen(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeNone))

	resp, err := f.svc.Open(context.Background(), 42, &models.OpenDisputeRequest{
		Actor:   pro,
		Message: "customer never showed up",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.DisputeOpened), resp.DisputeStatus)
}

func TestOpen_OtherProDenied(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeNone))

	_, err := f.svc.Open(context.Background(), 42, &models.OpenDisputeRequest{
		Actor:   domain.Actor{ID: 2, Role: domain.RolePro},
		Message: "x",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestOpen_UnpaidBookingNotDisputable(t *testing.T) {
	booking := paidBooking(domain.DisputeNone)
	booking.PaymentStatus = domain.PaymentUnpaid

	f := newFixture(booking)

	_, err := f.svc.Open(context.Background(), 42, &models.OpenDisputeRequest{
		Actor:   customer,
		Message: "x",
	})
	assert.ErrorIs(t, err, ErrNotDisputable)
}

func TestOpen_RefundedBookingIsDisputable(t *testing.T) {
	booking := paidBooking(domain.DisputeNone)
	booking.PaymentStatus = domain.PaymentRefunded

	f := newFixture(booking)

	_, err := f.svc.Open(context.Background(), 42, &models.OpenDisputeRequest{
		Actor:   customer,
		Message: "refund was wrong",
	})
	assert.NoError(t, err)
}

func TestOpen_AlreadyOpen(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeOpened))

	_, err := f.svc.Open(context.Background(), 42, &models.OpenDisputeRequest{
		Actor:   customer,
		Message: "x",
	})
	assert.ErrorIs(t, err, ErrDisputeAlreadyOpen)
}

func TestOpen_ConcurrentTransitionConflict(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeNone))
	f.bookings.transitionErr = bookingRepo.ErrDisputeStateChanged

	_, err := f.svc.Open(context.Background(), 42, &models.OpenDisputeRequest{
		Actor:   customer,
		Message: "x",
	})
	assert.ErrorIs(t, err, ErrDisputeStateChanged)
	assert.Empty(t, f.notify.events)
}

// Respond

func TestRespond_ProResponds(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeOpened))

	resp, err := f.svc.Respond(context.Background(), 42, &models.RespondDisputeRequest{
		Actor:   pro,
		Message: "the customer no-showed",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.DisputeProResponded), resp.DisputeStatus)
}

func TestRespond_CustomerCannotRespond(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeOpened))

	_, err := f.svc.Respond(context.Background(), 42, &models.RespondDisputeRequest{
		Actor:   customer,
		Message: "x",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestRespond_NoActiveDispute(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeNone))

	_, err := f.svc.Respond(context.Background(), 42, &models.RespondDisputeRequest{
		Actor:   pro,
		Message: "x",
	})
	assert.ErrorIs(t, err, ErrNoActiveDispute)
}

func TestRespond_InvalidFromResponded(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeProResponded))

	_, err := f.svc.Respond(context.Background(), 42, &models.RespondDisputeRequest{
		Actor:   pro,
		Message: "x",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// Escalate

func TestEscalate_FromOpenedAndResponded(t *testing.T) {
	for _, status := range []domain.DisputeStatus{domain.DisputeOpened, domain.DisputeProResponded} {
		f := newFixture(paidBooking(status))

		resp, err := f.svc.Escalate(context.Background(), 42, &models.EscalateDisputeRequest{Actor: customer})
		require.NoError(t, err, "from %s", status)
		assert.Equal(t, string(domain.DisputeEscalated), resp.DisputeStatus)
		assert.Equal(t, []string{notifier.EventDisputeEscalated}, f.notify.events)
	}
}

func TestEscalate_BothPartiesMayEscalate(t *testing.T) {
	for _, actor := range []domain.Actor{customer, pro, admin} {
		f := newFixture(paidBooking(domain.DisputeOpened))

		_, err := f.svc.Escalate(context.Background(), 42, &models.EscalateDisputeRequest{Actor: actor})
		assert.NoError(t, err, "actor role %s", actor.Role)
	}
}

func TestEscalate_AlreadyEscalated(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeEscalated))

	_, err := f.svc.Escalate(context.Background(), 42, &models.EscalateDisputeRequest{Actor: customer})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// Resolve

func TestResolve_CustomerFavorWithRefund(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeOpened))

	resp, err := f.svc.Resolve(context.Background(), 42, &models.ResolveDisputeRequest{
		Actor:        admin,
		Resolution:   models.ResolutionCustomer,
		Notes:        "pro at fault",
		RefundAmount: ptr.Ptr[int64](10000),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.DisputeResolvedCustomer), resp.DisputeStatus)
	require.NotNil(t, resp.RefundAmount)
	assert.Equal(t, int64(10000), *resp.RefundAmount)
	assert.Equal(t, 1, f.payments.eligibilityChecks)
	assert.Equal(t, []int64{10000}, f.payments.refunded)
	assert.True(t, f.bookings.refundMarked)
	assert.Equal(t, []string{notifier.EventDisputeResolved}, f.notify.events)
}

func TestResolve_PartialRefundAmount(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeOpened))

	resp, err := f.svc.Resolve(context.Background(), 42, &models.ResolveDisputeRequest{
		Actor:        admin,
		Resolution:   models.ResolutionCustomer,
		RefundAmount: ptr.Ptr[int64](4000),
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{4000}, f.payments.refunded)
	assert.Equal(t, int64(4000), *resp.RefundAmount)
}

func TestResolve_CustomerFavorWithoutRefundAmountSkipsRefund(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeOpened))

	resp, err := f.svc.Resolve(context.Background(), 42, &models.ResolveDisputeRequest{
		Actor:      admin,
		Resolution: models.ResolutionCustomer,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.DisputeResolvedCustomer), resp.DisputeStatus)
	assert.Nil(t, resp.RefundAmount)
	assert.Zero(t, f.payments.eligibilityChecks)
	assert.Empty(t, f.payments.refunded)
	assert.False(t, f.bookings.refundMarked)
}

func TestResolve_InProFavorSkipsRefund(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeOpened))

	resp, err := f.svc.Resolve(context.Background(), 42, &models.ResolveDisputeRequest{
		Actor:      admin,
		Resolution: models.ResolutionPro,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.DisputeResolvedPro), resp.DisputeStatus)
	assert.Nil(t, resp.RefundAmount)
	assert.Empty(t, f.payments.refunded)
}

func TestResolve_NonAdminDeniedRegardlessOfState(t *testing.T) {
	states := []domain.DisputeStatus{domain.DisputeOpened, domain.DisputeProResponded, domain.DisputeEscalated}
	actors := []domain.Actor{customer, pro}

	for _, state := range states {
		for _, actor := range actors {
			f := newFixture(paidBooking(state))

			_, err := f.svc.Resolve(context.Background(), 42, &models.ResolveDisputeRequest{
				Actor:      actor,
				Resolution: models.ResolutionCustomer,
			})
			assert.ErrorIs(t, err, ErrAccessDenied, "state %s, actor role %s", state, actor.Role)
			assert.Nil(t, f.bookings.resolvedTo)
		}
	}
}

func TestResolve_EscalatedResolvedByAdmin(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeEscalated))

	resp, err := f.svc.Resolve(context.Background(), 42, &models.ResolveDisputeRequest{
		Actor:      admin,
		Resolution: models.ResolutionPro,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.DisputeResolvedPro), resp.DisputeStatus)
}

func TestResolve_IneligibleRefundLeavesDisputeUntouched(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeOpened))
	f.payments.eligibilityErr = errors.New("amount exceeds refundable balance")

	_, err := f.svc.Resolve(context.Background(), 42, &models.ResolveDisputeRequest{
		Actor:        admin,
		Resolution:   models.ResolutionCustomer,
		RefundAmount: ptr.Ptr[int64](50000),
	})
	assert.ErrorIs(t, err, ErrRefundFailed)
	assert.ErrorContains(t, err, "amount exceeds refundable balance")

	// the eligibility check runs before anything else: nothing moved
	assert.Empty(t, f.payments.refunded)
	assert.Nil(t, f.bookings.resolvedTo)
	assert.False(t, f.bookings.refundMarked)
	assert.Empty(t, f.notify.events)
	assert.Empty(t, f.log.entries)
}

func TestResolve_RefundFailureLeavesDisputeUntouched(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeOpened))
	f.payments.err = errors.New("charge already refunded")

	_, err := f.svc.Resolve(context.Background(), 42, &models.ResolveDisputeRequest{
		Actor:        admin,
		Resolution:   models.ResolutionCustomer,
		RefundAmount: ptr.Ptr[int64](10000),
	})
	assert.ErrorIs(t, err, ErrRefundFailed)

	// the refund runs before the state change: on failure nothing moved
	assert.Nil(t, f.bookings.resolvedTo)
	assert.False(t, f.bookings.refundMarked)
	assert.Empty(t, f.notify.events)
	assert.Empty(t, f.log.entries)
}

func TestResolve_NonPositiveRefundAmount(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeOpened))

	_, err := f.svc.Resolve(context.Background(), 42, &models.ResolveDisputeRequest{
		Actor:        admin,
		Resolution:   models.ResolutionCustomer,
		RefundAmount: ptr.Ptr[int64](0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolve_UnknownResolution(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeOpened))

	_, err := f.svc.Resolve(context.Background(), 42, &models.ResolveDisputeRequest{
		Actor:      admin,
		Resolution: "split",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolve_AlreadyResolved(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeResolvedPro))

	_, err := f.svc.Resolve(context.Background(), 42, &models.ResolveDisputeRequest{
		Actor:      admin,
		Resolution: models.ResolutionCustomer,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

// GetLog

func TestGetLog_PartyVisibility(t *testing.T) {
	f := newFixture(paidBooking(domain.DisputeOpened))
	f.log.entries = []*domain.DisputeLogEntry{
		{BookingID: 42, Action: domain.DisputeActionOpened, Message: "opened"},
	}

	for _, actor := range []domain.Actor{customer, pro, admin} {
		resp, err := f.svc.GetLog(context.Background(), 42, actor)
		require.NoError(t, err, "actor role %s", actor.Role)
		assert.Len(t, resp.Entries, 1)
	}

	_, err := f.svc.GetLog(context.Background(), 42, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetLog_BookingNotFound(t *testing.T) {
	f := newFixture(nil)
	f.bookings.getErr = bookingRepo.ErrBookingNotFound

	_, err := f.svc.GetLog(context.Background(), 42, admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
