package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	settingsRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/settings"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/settings/models"
)

type stubSettingsRepo struct {
	settings *domain.ProSettings
	getErr   error
	upserted *domain.ProSettings
}

func (s *stubSettingsRepo) GetByProID(ctx context.Context, proID int64) (*domain.ProSettings, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.settings, nil
}

func (s *stubSettingsRepo) Upsert(ctx context.Context, settings *domain.ProSettings) (*domain.ProSettings, error) {
	s.upserted = settings
	return settings, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var (
	pro      = domain.Actor{ID: 1, Role: domain.RolePro}
	otherPro = domain.Actor{ID: 2, Role: domain.RolePro}
	admin    = domain.Actor{ID: 99, Role: domain.RoleAdmin}
)

func validUpdate(actor domain.Actor) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		Actor:               actor,
		SlotDurationMinutes: 60,
		RequiresDeposit:     true,
		DepositPercent:      30,
		AutoConfirm:         true,
		PriceAmount:         10000,
		Currency:            "USD",
	}
}

func TestGet_ReturnsDefaultsWhenUnset(t *testing.T) {
	repo := &stubSettingsRepo{getErr: settingsRepo.ErrSettingsNotFound}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ProID)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultCurrency, resp.Currency)
	assert.False(t, resp.RequiresDeposit)
	assert.True(t, resp.AutoConfirm)
}

func TestGet_ReturnsStoredSettings(t *testing.T) {
	repo := &stubSettingsRepo{settings: &domain.ProSettings{
		ProID:               1,
		SlotDurationMinutes: 30,
		RequiresDeposit:     true,
		DepositPercent:      50,
		PriceAmount:         8000,
		Currency:            "EUR",
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 30, resp.SlotDurationMinutes)
	assert.Equal(t, "EUR", resp.Currency)
}

func TestUpdate_PersistsSettings(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), 1, validUpdate(pro))
	require.NoError(t, err)

	require.NotNil(t, repo.upserted)
	assert.Equal(t, int64(1), repo.upserted.ProID)
	assert.Equal(t, 30, resp.DepositPercent)
}

func TestUpdate_AccessControl(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), 1, validUpdate(otherPro))
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.upserted)

	_, err = svc.Update(context.Background(), 1, validUpdate(admin))
	assert.NoError(t, err)
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.UpdateSettingsRequest)
	}{
		{"slot duration too short", func(r *models.UpdateSettingsRequest) {
			r.SlotDurationMinutes = 10
		}},
		{"slot duration too long", func(r *models.UpdateSettingsRequest) {
			r.SlotDurationMinutes = 300
		}},
		{"deposit percent zero", func(r *models.UpdateSettingsRequest) {
			r.DepositPercent = 0
		}},
		{"deposit percent over 100", func(r *models.UpdateSettingsRequest) {
			r.DepositPercent = 101
		}},
		{"negative price", func(r *models.UpdateSettingsRequest) {
			r.PriceAmount = -1
		}},
		{"bad currency code", func(r *models.UpdateSettingsRequest) {
			r.Currency = "DOLLARS"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubSettingsRepo{}
			svc := NewService(repo, nopLogger{})

			req := validUpdate(pro)
			tt.mutate(req)

			_, err := svc.Update(context.Background(), 1, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.upserted)
		})
	}
}

func TestUpdate_DepositPercentIgnoredWhenDepositDisabled(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := NewService(repo, nopLogger{})

	req := validUpdate(pro)
	req.RequiresDeposit = false
	req.DepositPercent = 0

	_, err := svc.Update(context.Background(), 1, req)
	assert.NoError(t, err)
}
