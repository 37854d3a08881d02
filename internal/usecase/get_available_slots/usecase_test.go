package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	calendarlinkRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/calendarlink"
	settingsRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/settings"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/gcal"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/ptr"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/timerange"
)

type stubBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (s *stubBookingRepo) GetByProWithFilter(ctx context.Context, filter domain.ProBookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, s.err
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

type stubCalendarLinkRepo struct {
	link *domain.CalendarLink
	err  error
}

func (s *stubCalendarLinkRepo) GetByProID(ctx context.Context, proID int64) (*domain.CalendarLink, error) {
	return s.link, s.err
}

type stubCalendarClient struct {
	busy  []timerange.Range
	err   error
	calls int
}

func (s *stubCalendarClient) GetBusyIntervals(ctx context.Context, link *domain.CalendarLink, from, to time.Time) ([]timerange.Range, error) {
	s.calls++
	return s.busy, s.err
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
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

// tuesday is a fixed reference date used across the tests
var tuesday = time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)

func newTestUseCase(
	bookings *stubBookingRepo,
	availability *stubAvailabilityRepo,
	settings *stubSettingsRepo,
	links *stubCalendarLinkRepo,
	calendar *stubCalendarClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(bookings, availability, settings, links, calendar, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func defaultStubs() (*stubBookingRepo, *stubAvailabilityRepo, *stubSettingsRepo, *stubCalendarLinkRepo, *stubCalendarClient) {
	return &stubBookingRepo{},
		&stubAvailabilityRepo{},
		&stubSettingsRepo{err: settingsRepo.ErrSettingsNotFound},
		&stubCalendarLinkRepo{err: calendarlinkRepo.ErrLinkNotFound},
		&stubCalendarClient{}
}

func TestExecute_BookingSplitsWindow(t *testing.T) {
	bookings, availability, settings, links, calendar := defaultStubs()

	availability.rules = []*domain.AvailabilityRule{
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "12:00", Recurring: true},
	}
	bookings.bookings = []*domain.Booking{
		{
			ProID:   1,
			StartAt: tuesday.Add(10 * time.Hour),
			EndAt:   tuesday.Add(11 * time.Hour),
			Status:  domain.StatusConfirmed,
		},
	}

	uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday.Add(-24*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday})
	require.NoError(t, err)

	// the 10:00-11:00 booking removes its slot but not the adjacent ones
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, tuesday.Add(9*time.Hour), resp.Slots[0].StartAt)
	assert.Equal(t, tuesday.Add(10*time.Hour), resp.Slots[0].EndAt)
	assert.Equal(t, tuesday.Add(11*time.Hour), resp.Slots[1].StartAt)
	assert.Equal(t, tuesday.Add(12*time.Hour), resp.Slots[1].EndAt)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	bookings, availability, settings, links, calendar := defaultStubs()

	availability.rules = []*domain.AvailabilityRule{
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "11:00", Recurring: true},
	}
	bookings.bookings = []*domain.Booking{
		{
			ProID:   1,
			StartAt: tuesday.Add(9 * time.Hour),
			EndAt:   tuesday.Add(10 * time.Hour),
			Status:  domain.StatusCancelled,
		},
	}

	uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday.Add(-24*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_OneOffRuleReplacesRecurring(t *testing.T) {
	bookings, availability, settings, links, calendar := defaultStubs()

	availability.rules = []*domain.AvailabilityRule{
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "17:00", Recurring: true},
		{ProID: 1, SpecificDate: ptr.Ptr(tuesday), StartTime: "14:00", EndTime: "16:00"},
	}

	uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday.Add(-24*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday})
	require.NoError(t, err)

	// the one-off window replaces the full recurring day
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, tuesday.Add(14*time.Hour), resp.Slots[0].StartAt)
	assert.Equal(t, tuesday.Add(15*time.Hour), resp.Slots[1].StartAt)
}

func TestExecute_OverlappingRulesYieldDisjointSlots(t *testing.T) {
	bookings, availability, settings, links, calendar := defaultStubs()

	// two recurring rules whose windows intersect: slicing them
	// independently would duplicate the 10:00 and 11:00 slots
	availability.rules = []*domain.AvailabilityRule{
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "12:00", Recurring: true},
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "10:00", EndTime: "13:00", Recurring: true},
	}

	uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday.Add(-24*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	for i, slot := range resp.Slots {
		assert.Equal(t, tuesday.Add(time.Duration(9+i)*time.Hour), slot.StartAt)
	}
	for i := range resp.Slots {
		for j := i + 1; j < len(resp.Slots); j++ {
			a := timerange.Range{Start: resp.Slots[i].StartAt, End: resp.Slots[i].EndAt}
			b := timerange.Range{Start: resp.Slots[j].StartAt, End: resp.Slots[j].EndAt}
			assert.False(t, a.Overlaps(b), "slots %d and %d overlap", i, j)
		}
	}
}

func TestExecute_AdjacentRulesFormOneWindow(t *testing.T) {
	bookings, availability, settings, links, calendar := defaultStubs()

	availability.rules = []*domain.AvailabilityRule{
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "10:30", Recurring: true},
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "10:30", EndTime: "12:00", Recurring: true},
	}

	uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday.Add(-24*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday})
	require.NoError(t, err)

	// merged into a single 09:00-12:00 window: three aligned hour slots
	// instead of two windows each losing a half-hour tail
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, tuesday.Add(9*time.Hour), resp.Slots[0].StartAt)
	assert.Equal(t, tuesday.Add(11*time.Hour), resp.Slots[2].StartAt)
}

func TestExecute_NoRulesGivesEmptyDay(t *testing.T) {
	bookings, availability, settings, links, calendar := defaultStubs()

	availability.rules = []*domain.AvailabilityRule{
		{ProID: 1, DayOfWeek: ptr.Ptr(5), StartTime: "09:00", EndTime: "17:00", Recurring: true},
	}

	uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday.Add(-24*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BlockedIntervalRemovesSlots(t *testing.T) {
	bookings, availability, settings, links, calendar := defaultStubs()

	availability.rules = []*domain.AvailabilityRule{
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "13:00", Recurring: true},
	}
	availability.blocks = []*domain.BlockedInterval{
		{ProID: 1, StartAt: tuesday.Add(9*time.Hour + 30*time.Minute), EndAt: tuesday.Add(11 * time.Hour)},
	}

	uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday.Add(-24*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday})
	require.NoError(t, err)

	// the 09:00 and 10:00 slots overlap the block, 11:00 and 12:00 survive
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, tuesday.Add(11*time.Hour), resp.Slots[0].StartAt)
	assert.Equal(t, tuesday.Add(12*time.Hour), resp.Slots[1].StartAt)
}

func TestExecute_CalendarBusyFiltersSlots(t *testing.T) {
	bookings, availability, settings, links, calendar := defaultStubs()

	availability.rules = []*domain.AvailabilityRule{
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "12:00", Recurring: true},
	}
	links.link = &domain.CalendarLink{ProID: 1, Provider: domain.CalendarProviderGoogle, Enabled: true}
	links.err = nil
	calendar.busy = []timerange.Range{
		{Start: tuesday.Add(9 * time.Hour), End: tuesday.Add(10 * time.Hour)},
	}

	uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday.Add(-24*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, tuesday.Add(10*time.Hour), resp.Slots[0].StartAt)
}

func TestExecute_CalendarErrorsAreIgnored(t *testing.T) {
	for _, calErr := range []error{gcal.ErrAuthExpired, gcal.ErrUnavailable, errors.New("boom")} {
		bookings, availability, settings, links, calendar := defaultStubs()

		availability.rules = []*domain.AvailabilityRule{
			{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "12:00", Recurring: true},
		}
		links.link = &domain.CalendarLink{ProID: 1, Provider: domain.CalendarProviderGoogle, Enabled: true}
		links.err = nil
		calendar.err = calErr

		uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday.Add(-24*time.Hour))

		resp, err := uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday})
		require.NoError(t, err)
		assert.Len(t, resp.Slots, 3, "calendar error %v must not block slots", calErr)
	}
}

func TestExecute_DisabledCalendarLinkSkipsQuery(t *testing.T) {
	bookings, availability, settings, links, calendar := defaultStubs()

	availability.rules = []*domain.AvailabilityRule{
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "10:00", Recurring: true},
	}
	links.link = &domain.CalendarLink{ProID: 1, Provider: domain.CalendarProviderGoogle, Enabled: false}
	links.err = nil

	uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday.Add(-24*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 1)
	assert.Zero(t, calendar.calls)
}

func TestExecute_PastSlotsAreDropped(t *testing.T) {
	bookings, availability, settings, links, calendar := defaultStubs()

	availability.rules = []*domain.AvailabilityRule{
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "12:00", Recurring: true},
	}

	// request for today at 10:00: the 09:00 and 10:00 slots are gone
	uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday.Add(10*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, tuesday.Add(11*time.Hour), resp.Slots[0].StartAt)
}

func TestExecute_CustomSlotDuration(t *testing.T) {
	bookings, availability, settings, links, calendar := defaultStubs()

	availability.rules = []*domain.AvailabilityRule{
		{ProID: 1, DayOfWeek: ptr.Ptr(2), StartTime: "09:00", EndTime: "10:45", Recurring: true},
	}
	settings.settings = &domain.ProSettings{ProID: 1, SlotDurationMinutes: 30, Currency: "USD"}
	settings.err = nil

	uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday.Add(-24*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday})
	require.NoError(t, err)

	// the 15-minute tail does not fit a slot
	assert.Len(t, resp.Slots, 3)
}

func TestExecute_Validation(t *testing.T) {
	bookings, availability, settings, links, calendar := defaultStubs()
	uc := newTestUseCase(bookings, availability, settings, links, calendar, tuesday)

	_, err := uc.Execute(context.Background(), &Request{ProID: 0, Date: tuesday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ProID: 1, Date: tuesday.Add(-48 * time.Hour)})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
