package disputelog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/dbmetrics"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий журнала споров.
// Журнал append-only: записи только добавляются, обновление и удаление не поддерживаются
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в журнал спора
func (r *Repository) Append(ctx context.Context, entry *domain.DisputeLogEntry) (*domain.DisputeLogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("dispute_logs").
		Columns("booking_id", "actor_id", "actor_role", "action", "message", "evidence_urls").
		Values(
			entry.BookingID,
			entry.ActorID,
			entry.ActorRole,
			entry.Action,
			entry.Message,
			pq.Array(entry.EvidenceURLs),
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// GetByBookingID получает все записи журнала спора по бронированию
// в хронологическом порядке
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.DisputeLogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"actor_id",
		"actor_role",
		"action",
		"message",
		"evidence_urls",
		"created_at",
	).
		From("dispute_logs").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.DisputeLogEntry, 0)
	for rows.Next() {
		var entry domain.DisputeLogEntry
		var evidence pq.StringArray
		var createdAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&entry.ActorID,
			&entry.ActorRole,
			&entry.Action,
			&entry.Message,
			&evidence,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBookingID - scan row: %v", ErrScanRow, err)
		}

		entry.EvidenceURLs = []string(evidence)
		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
