package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	bookingRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/booking"
	settingsRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/settings"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/notifier"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/stripegw"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/ptr"
)

type stubBookingRepo struct {
	createErr    error
	created      *domain.Booking
	paymentRef   string
	cancelled    bool
	cancelReason string
}

func (s *stubBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := *booking
	created.ID = 42
	created.CreatedAt = time.Now()
	s.created = &created
	return &created, nil
}

func (s *stubBookingRepo) SetPaymentRef(ctx context.Context, bookingID int64, paymentRef string) error {
	s.paymentRef = paymentRef
	return nil
}

func (s *stubBookingRepo) Cancel(ctx context.Context, bookingID int64, reason string) error {
	s.cancelled = true
	s.cancelReason = reason
	return nil
}

type stubAvailabilityRepo struct {
	rules  []*domain.AvailabilityRule
	blocks []*domain.BlockedInterval
}

func (s *stubAvailabilityRepo) GetRulesByPro(ctx context.Context, proID int64) ([]*domain.AvailabilityRule, error) {
	return s.rules, nil
}

func (s *stubAvailabilityRepo) GetBlocksByProInWindow(ctx context.Context, proID int64, from, to time.Time) ([]*domain.BlockedInterval, error) {
	return s.blocks, nil
}

type stubSettingsRepo struct {
	settings *domain.ProSettings
	err      error
}

func (s *stubSettingsRepo) GetByProID(ctx context.Context, proID int64) (*domain.ProSettings, error) {
	return s.settings, s.err
}

type stubPayments struct {
	session *stripegw.DepositSession
	err     error
	calls   int
}

func (s *stubPayments) InitiateDeposit(ctx context.Context, bookingID int64, amount int64, currency, description string) (*stripegw.DepositSession, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

type stubNotifier struct {
	events []string
}

func (s *stubNotifier) Notify(ctx context.Context, n notifier.Notification) {
	s.events = append(s.events, n.Event)
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

var tuesday = time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)

type fixture struct {
	bookings     *stubBookingRepo
	availability *stubAvailabilityRepo
	settings     *stubSettingsRepo
	payments     *stubPayments
	notify       *stubNotifier
	uc           *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		bookings: &stubBookingRepo{},
		availability: &stubAvailabilityRepo{
			rules: []*domain.AvailabilityRule{
				{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "17:00", Recurring: true},
			},
		},
		settings: &stubSettingsRepo{err: settingsRepo.ErrSettingsNotFound},
		payments: &stubPayments{
			session: &stripegw.DepositSession{PaymentRef: "cs_test_123", RedirectURL: "https://pay.example/cs_test_123"},
		},
		notify: &stubNotifier{},
	}
	f.uc = NewUseCase(f.bookings, f.availability, f.settings, f.payments, f.notify, passthroughTxManager{}, nopLogger{})
	f.uc.timeProvider = &fixedTime{now: now}
	return f
}

func validRequest() *Request {
	return &Request{
		ProID:      1,
		CustomerID: ptr.Ptr[int64](7),
		StartAt:    tuesday.Add(10 * time.Hour),
		EndAt:      tuesday.Add(11 * time.Hour),
	}
}

func TestExecute_AutoConfirmWithoutDeposit(t *testing.T) {
	f := newFixture(tuesday)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.PaymentUnpaid), resp.PaymentStatus)
	assert.Equal(t, string(domain.PaymentTypeNone), resp.PaymentType)
	assert.Nil(t, resp.PaymentRedirectURL)
	assert.Zero(t, f.payments.calls)
	assert.Equal(t, []string{notifier.EventBookingCreated}, f.notify.events)
}

func TestExecute_ManualConfirmationStaysPending(t *testing.T) {
	f := newFixture(tuesday)
	f.settings.settings = &domain.ProSettings{
		ProID:               1,
		SlotDurationMinutes: 60,
		AutoConfirm:         false,
		Currency:            "USD",
	}
	f.settings.err = nil

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
}

func TestExecute_DepositForcesPendingAndPaymentSession(t *testing.T) {
	f := newFixture(tuesday)
	f.settings.settings = &domain.ProSettings{
		ProID:               1,
		SlotDurationMinutes: 60,
		RequiresDeposit:     true,
		DepositPercent:      30,
		AutoConfirm:         true,
		PriceAmount:         10000,
		Currency:            "USD",
	}
	f.settings.err = nil

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// deposit overrides auto-confirm: the slot is held until payment
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentTypeDeposit), resp.PaymentType)
	assert.Equal(t, int64(3000), resp.DepositAmount)
	require.NotNil(t, resp.PaymentRedirectURL)
	assert.Equal(t, "https://pay.example/cs_test_123", *resp.PaymentRedirectURL)
	assert.Equal(t, "cs_test_123", f.bookings.paymentRef)
}

func TestExecute_PaymentInitFailureCancelsBooking(t *testing.T) {
	f := newFixture(tuesday)
	f.settings.settings = &domain.ProSettings{
		ProID:               1,
		SlotDurationMinutes: 60,
		RequiresDeposit:     true,
		DepositPercent:      50,
		PriceAmount:         10000,
		Currency:            "USD",
	}
	f.settings.err = nil
	f.payments.err = errors.New("stripe is down")

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentInitFailed)
	assert.True(t, f.bookings.cancelled, "booking must be cancelled to free the slot")
	assert.Empty(t, f.notify.events)
}

func TestExecute_SlotConflictMapsToNotAvailable(t *testing.T) {
	f := newFixture(tuesday)
	f.bookings.createErr = bookingRepo.ErrSlotConflict

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_OutsideWorkingWindows(t *testing.T) {
	f := newFixture(tuesday)

	req := validRequest()
	req.StartAt = tuesday.Add(18 * time.Hour)
	req.EndAt = tuesday.Add(19 * time.Hour)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_OneOffRuleReplacesRecurringWindows(t *testing.T) {
	f := newFixture(tuesday)
	f.availability.rules = append(f.availability.rules, &domain.AvailabilityRule{
		ProID:        1,
		SpecificDate: &tuesday,
		StartTime:    "14:00",
		EndTime:      "16:00",
	})

	// 10:00 fits the recurring window, but the one-off override excludes it
	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOutsideAvailability)

	req := validRequest()
	req.StartAt = tuesday.Add(14 * time.Hour)
	req.EndAt = tuesday.Add(15 * time.Hour)

	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_IntervalSpanningOverlappingWindows(t *testing.T) {
	f := newFixture(tuesday)
	f.availability.rules = []*domain.AvailabilityRule{
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "10:30", Recurring: true},
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "10:00", EndTime: "12:00", Recurring: true},
	}

	// 10:00-11:00 fits neither window alone, only their union
	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_BlockedIntervalRejectsBooking(t *testing.T) {
	f := newFixture(tuesday)
	f.availability.blocks = []*domain.BlockedInterval{
		{ProID: 1, StartAt: tuesday.Add(10*time.Hour + 30*time.Minute), EndAt: tuesday.Add(12 * time.Hour)},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_TouchingBlockDoesNotConflict(t *testing.T) {
	f := newFixture(tuesday)
	f.availability.blocks = []*domain.BlockedInterval{
		{ProID: 1, StartAt: tuesday.Add(11 * time.Hour), EndAt: tuesday.Add(12 * time.Hour)},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_DurationMustMatchSlot(t *testing.T) {
	f := newFixture(tuesday)

	req := validRequest()
	req.EndAt = tuesday.Add(11*time.Hour + 30*time.Minute)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_StartMustBeInFuture(t *testing.T) {
	f := newFixture(tuesday.Add(12 * time.Hour))

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RequesterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"neither customer nor guest", func(r *Request) {
			r.CustomerID = nil
		}},
		{"both customer and guest", func(r *Request) {
			r.GuestName = ptr.Ptr("John Doe")
			r.GuestPhone = ptr.Ptr("+15550100")
		}},
		{"guest without contact", func(r *Request) {
			r.CustomerID = nil
			r.GuestName = ptr.Ptr("John Doe")
		}},
		{"guest without name", func(r *Request) {
			r.CustomerID = nil
			r.GuestPhone = ptr.Ptr("+15550100")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tuesday)
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_GuestBooking(t *testing.T) {
	f := newFixture(tuesday)

	req := validRequest()
	req.CustomerID = nil
	req.GuestName = ptr.Ptr("John Doe")
	req.GuestEmail = ptr.Ptr("john@example.com")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.CustomerID)
	require.NotNil(t, resp.GuestName)
	assert.Equal(t, "John Doe", *resp.GuestName)
}
