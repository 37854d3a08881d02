package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/dbmetrics"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// bookingColumns полный список колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"pro_id",
	"customer_id",
	"guest_name",
	"guest_phone",
	"guest_email",
	"start_at",
	"end_at",
	"status",
	"payment_status",
	"payment_type",
	"price_amount",
	"currency",
	"deposit_amount",
	"payment_ref",
	"refund_amount",
	"refund_reason",
	"refund_requested_at",
	"refund_processed_at",
	"dispute_status",
	"dispute_opened_at",
	"dispute_resolved_at",
	"dispute_resolution_notes",
	"customer_notes",
	"pro_notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Защита от двойного бронирования обеспечивается exclusion constraint
// bookings_no_overlap на уровне БД: из двух конкурентных вставок на
// пересекающиеся интервалы ровно одна получит ErrSlotConflict.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"pro_id",
			"customer_id",
			"guest_name",
			"guest_phone",
			"guest_email",
			"start_at",
			"end_at",
			"status",
			"payment_status",
			"payment_type",
			"price_amount",
			"currency",
			"deposit_amount",
			"customer_notes",
		).
		Values(
			booking.ProID,
			booking.CustomerID,
			booking.GuestName,
			booking.GuestPhone,
			booking.GuestEmail,
			booking.StartAt,
			booking.EndAt,
			booking.Status,
			booking.PaymentStatus,
			booking.PaymentType,
			booking.PriceAmount,
			booking.Currency,
			booking.DepositAmount,
			booking.CustomerNotes,
		).
		Suffix("RETURNING id, dispute_status, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.DisputeStatus,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, false)
}

// GetByIDForUpdate получает бронирование по ID с блокировкой строки (FOR UPDATE)
// Используется внутри транзакций переходов спора: состояние перечитывается
// синхронно перед мутацией
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, true)
}

// GetByPaymentRef получает бронирование по ссылке на платеж
// Используется для идемпотентной финализации оплаты
func (r *Repository) GetByPaymentRef(ctx context.Context, paymentRef string) (*domain.Booking, error) {
	return r.getOne(ctx, squirrel.Eq{"payment_ref": paymentRef}, false)
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where)

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByCustomerID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("start_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByProWithFilter получает бронирования преподавателя с фильтрацией
// по окну времени и статусу. Без фильтра статуса и без IncludeInactive
// возвращаются только активные бронирования (pending, confirmed) —
// именно они занимают слоты при расчете доступности
func (r *Repository) GetByProWithFilter(ctx context.Context, filter domain.ProBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"pro_id": filter.ProID})

	// Пересечение окна [From, To) с интервалом бронирования [start_at, end_at)
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		activeStatusStrings := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("start_at ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// SetPaymentRef привязывает ссылку на платеж шлюза к бронированию
// Частичный уникальный индекс на payment_ref гарантирует, что один платеж
// финализирует ровно одно бронирование
func (r *Repository) SetPaymentRef(ctx context.Context, id int64, paymentRef string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_ref", paymentRef).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentRef - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePaymentRef
		}
		return fmt.Errorf("%w: SetPaymentRef - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SetPaymentRef")
}

// ConfirmPayment переводит бронирование в confirmed с указанным платежным статусом
// Вызывается только после серверного подтверждения оплаты шлюзом
func (r *Repository) ConfirmPayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("payment_status", paymentStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConfirmPayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ConfirmPayment - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "ConfirmPayment")
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateStatus")
}

// Cancel отменяет бронирование с указанием причины
// Физическое удаление не поддерживается: история хранится бессрочно
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Cancel")
}

// MarkRefundRequested фиксирует запрос на возврат
func (r *Repository) MarkRefundRequested(ctx context.Context, id int64, amount int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("refund_amount", amount).
		Set("refund_reason", reason).
		Set("refund_requested_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRefundRequested - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRefundRequested - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "MarkRefundRequested")
}

// MarkRefundProcessed фиксирует успешно проведенный шлюзом возврат:
// payment_status становится refunded, проставляется refund_processed_at
func (r *Repository) MarkRefundProcessed(ctx context.Context, id int64, amount int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", domain.PaymentRefunded).
		Set("refund_amount", amount).
		Set("refund_reason", reason).
		Set("refund_processed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRefundProcessed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRefundProcessed - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "MarkRefundProcessed")
}

// TransitionDispute переводит статус спора из from в to атомарно (compare-and-set).
// Если состояние успело измениться между чтением и записью, возвращает
// ErrDisputeStateChanged — проигравший гонку запрос отклоняется, не повторяется
func (r *Repository) TransitionDispute(ctx context.Context, id int64, from []domain.DisputeStatus, to domain.DisputeStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fromStrings := make([]string, len(from))
	for i, s := range from {
		fromStrings[i] = string(s)
	}

	updateBuilder := psqlbuilder.Update("bookings").
		Set("dispute_status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"dispute_status": fromStrings})

	if to == domain.DisputeOpened {
		updateBuilder = updateBuilder.Set("dispute_opened_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: TransitionDispute - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: TransitionDispute - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TransitionDispute - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrDisputeStateChanged
	}

	return nil
}

// ResolveDispute завершает спор: статус, итоговые заметки и отметка времени
// Тот же CAS-контракт, что и у TransitionDispute
func (r *Repository) ResolveDispute(ctx context.Context, id int64, from []domain.DisputeStatus, to domain.DisputeStatus, notes string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fromStrings := make([]string, len(from))
	for i, s := range from {
		fromStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("dispute_status", to).
		Set("dispute_resolution_notes", notes).
		Set("dispute_resolved_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"dispute_status": fromStrings}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ResolveDispute - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ResolveDispute - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ResolveDispute - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrDisputeStateChanged
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ProID,
		&booking.CustomerID,
		&booking.GuestName,
		&booking.GuestPhone,
		&booking.GuestEmail,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentType,
		&booking.PriceAmount,
		&booking.Currency,
		&booking.DepositAmount,
		&booking.PaymentRef,
		&booking.RefundAmount,
		&booking.RefundReason,
		&booking.RefundRequestedAt,
		&booking.RefundProcessedAt,
		&booking.DisputeStatus,
		&booking.DisputeOpenedAt,
		&booking.DisputeResolvedAt,
		&booking.DisputeResolutionNotes,
		&booking.CustomerNotes,
		&booking.ProNotes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// isExclusionViolation проверяет нарушение exclusion constraint (23P01)
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgExclusionViolation
	}
	return false
}

// isUniqueViolation проверяет нарушение уникального индекса (23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
