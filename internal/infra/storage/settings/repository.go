package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/dbmetrics"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий настроек бронирования преподавателя
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProID получает настройки преподавателя
func (r *Repository) GetByProID(ctx context.Context, proID int64) (*domain.ProSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"pro_id",
		"slot_duration_minutes",
		"requires_deposit",
		"deposit_percent",
		"auto_confirm",
		"price_amount",
		"currency",
		"updated_at",
	).
		From("pro_settings").
		Where(squirrel.Eq{"pro_id": proID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ProSettings
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ProID,
		&s.SlotDurationMinutes,
		&s.RequiresDeposit,
		&s.DepositPercent,
		&s.AutoConfirm,
		&s.PriceAmount,
		&s.Currency,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("%w: GetByProID - scan row: %v", ErrScanRow, err)
	}

	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или обновляет настройки преподавателя
func (r *Repository) Upsert(ctx context.Context, s *domain.ProSettings) (*domain.ProSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("pro_settings").
		Columns("pro_id", "slot_duration_minutes", "requires_deposit", "deposit_percent", "auto_confirm", "price_amount", "currency").
		Values(s.ProID, s.SlotDurationMinutes, s.RequiresDeposit, s.DepositPercent, s.AutoConfirm, s.PriceAmount, s.Currency).
		Suffix(`ON CONFLICT (pro_id) DO UPDATE SET
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			requires_deposit = EXCLUDED.requires_deposit,
			deposit_percent = EXCLUDED.deposit_percent,
			auto_confirm = EXCLUDED.auto_confirm,
			price_amount = EXCLUDED.price_amount,
			currency = EXCLUDED.currency,
			updated_at = now()
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	s.UpdatedAt = updatedAt.Time

	return s, nil
}
