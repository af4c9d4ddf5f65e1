package document

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ApartmentBooking/internal/domain"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/psqlbuilder"
)

// Repository репозиторий документов, удостоверяющих личность
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория документов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет документ. Данные пишутся в JSONB строкой: lib/pq кодирует []byte как bytea
func (r *Repository) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	data, err := json.Marshal(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal data: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("documents").
		Columns("user_id", "booking_id", "type", "data", "status").
		Values(doc.UserID, doc.BookingID, doc.Type, string(data), doc.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&doc.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	doc.CreatedAt = createdAt.Time
	doc.UpdatedAt = updatedAt.Time

	return doc, nil
}

// GetByID получает документ по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"booking_id",
		"type",
		"data",
		"status",
		"reviewer_id",
		"review_comment",
		"reviewed_at",
		"created_at",
		"updated_at",
	).
		From("documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var doc domain.Document
	var raw []byte
	var bookingID, reviewerID sql.NullInt64
	var reviewComment sql.NullString
	var reviewedAt, createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&doc.ID,
		&doc.UserID,
		&bookingID,
		&doc.Type,
		&raw,
		&doc.Status,
		&reviewerID,
		&reviewComment,
		&reviewedAt,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan document: %v", ErrScanRow, err)
	}

	// Схема данных проверялась при записи, здесь только восстанавливаем тип
	doc.Data, err = domain.DecodeDocumentData(doc.Type, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - decode data: %v", ErrScanRow, err)
	}

	if bookingID.Valid {
		doc.BookingID = &bookingID.Int64
	}
	if reviewerID.Valid {
		doc.ReviewerID = &reviewerID.Int64
	}
	if reviewComment.Valid {
		doc.ReviewComment = &reviewComment.String
	}
	if reviewedAt.Valid {
		doc.ReviewedAt = &reviewedAt.Time
	}
	doc.CreatedAt = createdAt.Time
	doc.UpdatedAt = updatedAt.Time

	return &doc, nil
}

// Review выставляет итог проверки документа, находящегося в статусе pending
func (r *Repository) Review(ctx context.Context, id int64, status domain.DocumentStatus, reviewerID int64, comment *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("documents").
		Set("status", status).
		Set("reviewer_id", reviewerID).
		Set("review_comment", comment).
		Set("reviewed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.DocumentPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Review - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Review - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Review - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyReviewed
	}

	return nil
}

// HasApproved сообщает, есть ли у пользователя одобренный документ,
// привязанный к брони bookingID или не привязанный ни к какой брони
func (r *Repository) HasApproved(ctx context.Context, userID, bookingID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("documents").
		Where(squirrel.Eq{"user_id": userID, "status": domain.DocumentApproved}).
		Where(squirrel.Or{
			squirrel.Eq{"booking_id": bookingID},
			squirrel.Eq{"booking_id": nil},
		}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasApproved - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasApproved - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}
