package apartment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/psqlbuilder"
)

var apartmentColumns = []string{
	"id",
	"title",
	"address",
	"price_per_night",
	"cleaning_fee",
	"max_guests",
	"is_available",
	"requires_verification",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с квартирами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория квартир
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую квартиру
func (r *Repository) Create(ctx context.Context, apartment *domain.Apartment) (*domain.Apartment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("apartments").
		Columns(
			"title",
			"address",
			"price_per_night",
			"cleaning_fee",
			"max_guests",
			"is_available",
			"requires_verification",
		).
		Values(
			apartment.Title,
			apartment.Address,
			apartment.PricePerNight,
			apartment.CleaningFee,
			apartment.MaxGuests,
			apartment.IsAvailable,
			apartment.RequiresVerification,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&apartment.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	apartment.CreatedAt = createdAt.Time
	apartment.UpdatedAt = updatedAt.Time

	return apartment, nil
}

// GetByID получает квартиру по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Apartment, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает квартиру и блокирует строку до конца транзакции.
// Блокировка квартиры сериализует все попытки забронировать её даты.
// Вне транзакции работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Apartment, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Apartment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(apartmentColumns...).
		From("apartments").
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	apartment, err := scanApartment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrApartmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan apartment: %v", ErrScanRow, err)
	}

	return apartment, nil
}

// List получает список квартир, при onlyAvailable только открытые для бронирования
func (r *Repository) List(ctx context.Context, onlyAvailable bool) ([]*domain.Apartment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(apartmentColumns...).
		From("apartments").
		OrderBy("id ASC")

	if onlyAvailable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_available": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	apartments := make([]*domain.Apartment, 0)
	for rows.Next() {
		apartment, err := scanApartment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		apartments = append(apartments, apartment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return apartments, nil
}

// SetAvailability открывает или закрывает квартиру для новых бронирований
func (r *Repository) SetAvailability(ctx context.Context, id int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("apartments").
		Set("is_available", available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrApartmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApartment(row rowScanner) (*domain.Apartment, error) {
	var apartment domain.Apartment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&apartment.ID,
		&apartment.Title,
		&apartment.Address,
		&apartment.PricePerNight,
		&apartment.CleaningFee,
		&apartment.MaxGuests,
		&apartment.IsAvailable,
		&apartment.RequiresVerification,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	apartment.CreatedAt = createdAt.Time
	apartment.UpdatedAt = updatedAt.Time

	return &apartment, nil
}
