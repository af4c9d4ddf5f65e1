package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/psqlbuilder"
)

// codeExclusionViolation нарушение EXCLUDE ограничения bookings_no_overlap
const codeExclusionViolation pq.ErrorCode = "23P01"

var bookingColumns = []string{
	"id",
	"user_id",
	"apartment_id",
	"start_date",
	"end_date",
	"guests",
	"status",
	"expires_at",
	"total_amount",
	"nights",
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
// Если в контексте передана активная транзакция, использует её.
// Даты передаются строками YYYY-MM-DD, чтобы часовой пояс сессии не сдвигал их.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"apartment_id",
			"start_date",
			"end_date",
			"guests",
			"status",
			"expires_at",
			"total_amount",
			"nights",
		).
		Values(
			booking.UserID,
			booking.ApartmentID,
			booking.StartDate.Format(domain.DateFormat),
			booking.EndDate.Format(domain.DateFormat),
			booking.Guests,
			booking.Status,
			booking.ExpiresAt,
			booking.TotalAmount,
			booking.Nights,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if isExclusionViolation(err) {
		return nil, ErrOverlap
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование и блокирует строку до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// FindConflicts возвращает блокирующие бронирования квартиры, пересекающиеся с диапазоном [start, end).
// Бронь pending блокирует, только пока не истекло удержание.
// excludeID исключает саму бронь при повторной проверке.
func (r *Repository) FindConflicts(
	ctx context.Context,
	apartmentID int64,
	dates domain.DateRange,
	now time.Time,
	excludeID *int64,
) ([]domain.Conflict, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "start_date", "end_date", "status").
		From("bookings").
		Where(squirrel.Eq{"apartment_id": apartmentID}).
		// Полуоткрытые интервалы: выезд в день заезда не конфликтует
		Where(squirrel.Lt{"start_date": dates.End.Format(domain.DateFormat)}).
		Where(squirrel.Gt{"end_date": dates.Start.Format(domain.DateFormat)}).
		Where(blockingCondition(now)).
		OrderBy("start_date ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflicts - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	conflicts := make([]domain.Conflict, 0)
	for rows.Next() {
		var c domain.Conflict
		if err := rows.Scan(&c.BookingID, &c.StartDate, &c.EndDate, &c.Status); err != nil {
			return nil, fmt.Errorf("%w: FindConflicts - scan row: %v", ErrScanRow, err)
		}
		conflicts = append(conflicts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindConflicts - rows error: %w", ErrScanRow, err)
	}

	return conflicts, nil
}

// List получает бронирования по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("start_date DESC", "id DESC")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.ApartmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"apartment_id": *filter.ApartmentID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	// Период: брони, пересекающиеся с [From, To)
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_date": filter.To.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Confirm переводит бронь из статуса from в confirmed и снимает срок удержания.
// from - pending либо expired для удержания, истёкшего до оплаты.
// Обновление условное: если статус уже не from, возвращает ErrStatusChanged.
func (r *Repository) Confirm(ctx context.Context, id int64, from domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("expires_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "Confirm", query, args)
}

// Cancel отменяет бронь, находящуюся в статусе from
func (r *Repository) Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("expires_at", nil).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, "Cancel", query, args)
}

// AdvanceStatuses приводит статусы в соответствие с календарём.
// Каждое выражение идемпотентно: повторный запуск с теми же today/now ничего не меняет.
// today - календарная дата в часовом поясе сервиса, now - текущий момент.
func (r *Repository) AdvanceStatuses(ctx context.Context, today time.Time, now time.Time) (domain.SweepResult, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := today.Format(domain.DateFormat)

	var result domain.SweepResult

	// 1. Завершённые проживания (в том числе confirmed, которые никто не перевёл в ongoing)
	completed, err := r.updateStatuses(ctx, executor, "AdvanceStatuses completed",
		psqlbuilder.Update("bookings").
			Set("status", domain.StatusExpired).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"status": []domain.BookingStatus{domain.StatusConfirmed, domain.StatusOngoing}}).
			Where(squirrel.LtOrEq{"end_date": day}),
	)
	if err != nil {
		return result, err
	}
	result.Completed = completed

	// 2. Начавшиеся проживания
	started, err := r.updateStatuses(ctx, executor, "AdvanceStatuses started",
		psqlbuilder.Update("bookings").
			Set("status", domain.StatusOngoing).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"status": domain.StatusConfirmed}).
			Where(squirrel.LtOrEq{"start_date": day}).
			Where(squirrel.Gt{"end_date": day}),
	)
	if err != nil {
		return result, err
	}
	result.Started = started

	// 3. Истёкшие удержания
	expired, err := r.updateStatuses(ctx, executor, "AdvanceStatuses holds",
		psqlbuilder.Update("bookings").
			Set("status", domain.StatusExpired).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"status": domain.StatusPending}).
			Where(squirrel.Or{
				squirrel.LtOrEq{"expires_at": now},
				squirrel.And{
					squirrel.Eq{"expires_at": nil},
					squirrel.LtOrEq{"created_at": now.Add(-domain.HoldDuration)},
				},
			}),
	)
	if err != nil {
		return result, err
	}
	result.ExpiredHolds = expired

	return result, nil
}

func (r *Repository) updateStatuses(
	ctx context.Context,
	executor DBExecutor,
	op string,
	builder squirrel.UpdateBuilder,
) (int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}

func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if isExclusionViolation(err) {
		return ErrOverlap
	}
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

// blockingCondition условие "бронь занимает даты" на момент now
func blockingCondition(now time.Time) squirrel.Sqlizer {
	return squirrel.Or{
		squirrel.Eq{"status": []domain.BookingStatus{domain.StatusConfirmed, domain.StatusOngoing}},
		squirrel.And{
			squirrel.Eq{"status": domain.StatusPending},
			squirrel.Or{
				squirrel.Gt{"expires_at": now},
				squirrel.And{
					squirrel.Eq{"expires_at": nil},
					squirrel.Gt{"created_at": now.Add(-domain.HoldDuration)},
				},
			},
		},
	}
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeExclusionViolation
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var expiresAt, cancelledAt, createdAt, updatedAt sql.NullTime
	var cancellationReason sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ApartmentID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.Guests,
		&booking.Status,
		&expiresAt,
		&booking.TotalAmount,
		&booking.Nights,
		&cancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.StartDate = domain.DateOnly(booking.StartDate)
	booking.EndDate = domain.DateOnly(booking.EndDate)
	if expiresAt.Valid {
		booking.ExpiresAt = &expiresAt.Time
	}
	if cancellationReason.Valid {
		booking.CancellationReason = &cancellationReason.String
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
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
