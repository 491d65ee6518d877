package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fintera/finplan-backend/internal/apperrors"
	"github.com/fintera/finplan-backend/internal/core/domain"
	portsrepo "github.com/fintera/finplan-backend/internal/core/ports/repositories"
	"github.com/fintera/finplan-backend/internal/models"
	"github.com/fintera/finplan-backend/internal/utils/mapping"
	"github.com/fintera/finplan-backend/internal/utils/pagination"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment record data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, plan_id, amount, payment_date, method, reference, record_status,
	       created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (models.PaymentRecord, error) {
	var m models.PaymentRecord
	err := row.Scan(
		&m.PaymentID,
		&m.PlanID,
		&m.Amount,
		&m.Date,
		&m.Method,
		&m.Reference,
		&m.RecordStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePayment inserts a new payment record.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.PaymentRecord) error {
	m := mapping.ToModelPayment(payment)

	query := `
		INSERT INTO payment_records (payment_id, plan_id, amount, payment_date, method, reference, record_status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.PaymentID,
		m.PlanID,
		m.Amount,
		m.Date,
		m.Method,
		m.Reference,
		m.RecordStatus,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return apperrors.ErrDuplicate
			case "23503": // foreign_key_violation (unknown plan)
				return apperrors.ErrNotFound
			}
		}
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves a payment record by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records WHERE payment_id = $1;`

	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by id %s: %w", paymentID, err)
	}

	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

// FindAllPaymentsByPlan retrieves every payment recorded against a plan,
// oldest first. Reconciliation runs over the full history, so no paging here.
func (r *PgxPaymentRepository) FindAllPaymentsByPlan(ctx context.Context, planID string) ([]domain.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_records WHERE plan_id = $1 ORDER BY payment_date ASC, created_at ASC;`

	rows, err := r.Pool.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for plan %s: %w", planID, err)
	}
	defer rows.Close()

	modelPayments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PaymentRecord, error) {
		return scanPayment(row)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.PaymentRecord{}, nil
		}
		return nil, fmt.Errorf("failed to scan payments for plan %s: %w", planID, err)
	}

	return mapping.ToDomainPaymentSlice(modelPayments), nil
}

// ListPaymentsByPlan retrieves a paginated list of payments for a plan using token-based pagination.
// It returns the list of payments, a token for the next page (if any), and an error.
func (r *PgxPaymentRepository) ListPaymentsByPlan(ctx context.Context, planID string, limit int, nextToken *string) ([]domain.PaymentRecord, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + paymentColumns + ` FROM payment_records`
	filterClause := `WHERE plan_id = $1`

	// Ordering must be stable: payment_date, then created_at as a tie-breaker.
	orderByClause := `ORDER BY payment_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{planID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (payment_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query payments for plan "+planID, err)
	}
	defer rows.Close()

	modelPayments := make([]models.PaymentRecord, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanPayment(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan payment row for plan "+planID, scanErr)
		}
		modelPayments = append(modelPayments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating payment rows for plan "+planID, err)
	}

	// Determine the next token
	var nextTokenVal *string
	results := modelPayments
	if len(modelPayments) > limit {
		lastPayment := modelPayments[limit-1] // The *actual* last item of the *current* page
		newToken := pagination.EncodeToken(lastPayment.Date, lastPayment.CreatedAt)
		nextTokenVal = &newToken
		results = modelPayments[:limit]
	}

	return mapping.ToDomainPaymentSlice(results), nextTokenVal, nil
}

// UpdatePaymentStatus transitions the record status of a payment.
func (r *PgxPaymentRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentRecordStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE payment_records
		SET record_status = $2,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE payment_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, paymentID, string(status), updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update payment status %s: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
