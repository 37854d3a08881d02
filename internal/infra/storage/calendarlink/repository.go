package calendarlink

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

// Repository репозиторий привязок внешних календарей преподавателей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProID получает активную привязку календаря преподавателя
func (r *Repository) GetByProID(ctx context.Context, proID int64) (*domain.CalendarLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"pro_id",
		"provider",
		"calendar_id",
		"refresh_token",
		"enabled",
		"created_at",
		"updated_at",
	).
		From("calendar_links").
		Where(squirrel.Eq{"pro_id": proID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProID - build select query: %v", ErrBuildQuery, err)
	}

	var link domain.CalendarLink
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&link.ProID,
		&link.Provider,
		&link.CalendarID,
		&link.RefreshToken,
		&link.Enabled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("%w: GetByProID - scan row: %v", ErrScanRow, err)
	}

	link.CreatedAt = createdAt.Time
	link.UpdatedAt = updatedAt.Time

	return &link, nil
}

// Upsert создает или обновляет привязку календаря преподавателя
func (r *Repository) Upsert(ctx context.Context, link *domain.CalendarLink) (*domain.CalendarLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_links").
		Columns("pro_id", "provider", "calendar_id", "refresh_token", "enabled").
		Values(link.ProID, link.Provider, link.CalendarID, link.RefreshToken, link.Enabled).
		Suffix(`ON CONFLICT (pro_id) DO UPDATE SET
			provider = EXCLUDED.provider,
			calendar_id = EXCLUDED.calendar_id,
			refresh_token = EXCLUDED.refresh_token,
			enabled = EXCLUDED.enabled,
			updated_at = now()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	link.CreatedAt = createdAt.Time
	link.UpdatedAt = updatedAt.Time

	return link, nil
}
