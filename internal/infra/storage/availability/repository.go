package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/dbmetrics"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий правил доступности и блокировок преподавателя
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRulesByPro получает все правила доступности преподавателя
func (r *Repository) GetRulesByPro(ctx context.Context, proID int64) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"pro_id",
		"day_of_week",
		"specific_date",
		"to_char(start_time, 'HH24:MI')",
		"to_char(end_time, 'HH24:MI')",
		"recurring",
		"created_at",
		"updated_at",
	).
		From("availability_rules").
		Where(squirrel.Eq{"pro_id": proID}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRulesByPro - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRulesByPro - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.ProID,
			&rule.DayOfWeek,
			&rule.SpecificDate,
			&rule.StartTime,
			&rule.EndTime,
			&rule.Recurring,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRulesByPro - scan row: %v", ErrScanRow, err)
		}

		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRulesByPro - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// ReplaceRules заменяет весь набор правил преподавателя
// Вызывается внутри транзакции: старые правила удаляются, новые вставляются
func (r *Repository) ReplaceRules(ctx context.Context, proID int64, rules []*domain.AvailabilityRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("availability_rules").
		Where(squirrel.Eq{"pro_id": proID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceRules - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceRules - execute delete: %v", ErrExecQuery, err)
	}

	if len(rules) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("availability_rules").
		Columns("pro_id", "day_of_week", "specific_date", "start_time", "end_time", "recurring")

	for _, rule := range rules {
		insertBuilder = insertBuilder.Values(
			proID,
			rule.DayOfWeek,
			rule.SpecificDate,
			rule.StartTime,
			rule.EndTime,
			rule.Recurring,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceRules - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceRules - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetBlocksByProInWindow получает блокировки преподавателя, пересекающие окно [from, to)
func (r *Repository) GetBlocksByProInWindow(ctx context.Context, proID int64, from, to time.Time) ([]*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"pro_id",
		"start_at",
		"end_at",
		"reason",
		"source",
		"created_at",
	).
		From("blocked_intervals").
		Where(squirrel.Eq{"pro_id": proID}).
		Where(squirrel.Gt{"end_at": from}).
		Where(squirrel.Lt{"start_at": to}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocksByProInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocksByProInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.BlockedInterval, 0)
	for rows.Next() {
		var block domain.BlockedInterval
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.ProID,
			&block.StartAt,
			&block.EndAt,
			&block.Reason,
			&block.Source,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBlocksByProInWindow - scan row: %v", ErrScanRow, err)
		}

		block.CreatedAt = createdAt.Time
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlocksByProInWindow - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// CreateBlock создает блокировку интервала
func (r *Repository) CreateBlock(ctx context.Context, block *domain.BlockedInterval) (*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_intervals").
		Columns("pro_id", "start_at", "end_at", "reason", "source").
		Values(block.ProID, block.StartAt, block.EndAt, block.Reason, block.Source).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// DeleteBlock удаляет блокировку интервала преподавателя
func (r *Repository) DeleteBlock(ctx context.Context, proID, blockID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_intervals").
		Where(squirrel.Eq{"id": blockID, "pro_id": proID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}
