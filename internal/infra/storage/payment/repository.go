package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/psqlbuilder"
)

const codeUniqueViolation pq.ErrorCode = "23505"

var paymentColumns = []string{
	"id",
	"booking_id",
	"amount",
	"currency",
	"method",
	"external_order_id",
	"external_payment_id",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает платёж
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"booking_id",
			"amount",
			"currency",
			"method",
			"external_order_id",
			"external_payment_id",
			"status",
		).
		Values(
			payment.BookingID,
			payment.Amount,
			payment.Currency,
			payment.Method,
			payment.ExternalOrderID,
			payment.ExternalPaymentID,
			payment.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&createdAt,
		&updatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation {
		return nil, ErrDuplicatePayment
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByExternalPaymentID ищет платёж по идентификатору платежа в шлюзе
func (r *Repository) GetByExternalPaymentID(ctx context.Context, externalPaymentID string) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByExternalPaymentID", squirrel.Eq{"external_payment_id": externalPaymentID})
}

// GetPaidByBookingID возвращает действующий (paid) платёж брони
func (r *Repository) GetPaidByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	return r.getOne(ctx, "GetPaidByBookingID", squirrel.Eq{"booking_id": bookingID, "status": domain.PaymentPaid})
}

// UpdateStatus меняет статус платежа из from в to
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var payment domain.Payment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.Currency,
		&payment.Method,
		&payment.ExternalOrderID,
		&payment.ExternalPaymentID,
		&payment.Status,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %w", ErrScanRow, op, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return &payment, nil
}
