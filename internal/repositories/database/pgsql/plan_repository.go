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

type PgxPlanRepository struct {
	BaseRepository
}

// newPgxPlanRepository creates a new repository for payment plan data.
func newPgxPlanRepository(pool *pgxpool.Pool) portsrepo.PlanRepositoryFacade {
	return &PgxPlanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PlanRepositoryFacade = (*PgxPlanRepository)(nil)

const planColumns = `plan_id, sale_id, buyer_id, total_amount, down_payment_amount, down_payment_date,
	       installment_count, installment_due_day, final_settlement_amount, final_settlement_date,
	       start_date, currency_code, is_active,
	       created_at, created_by, last_updated_at, last_updated_by`

func scanPlan(row pgx.Row) (models.PaymentPlan, error) {
	var m models.PaymentPlan
	err := row.Scan(
		&m.PlanID,
		&m.SaleID,
		&m.BuyerID,
		&m.TotalAmount,
		&m.DownPaymentAmount,
		&m.DownPaymentDate,
		&m.InstallmentCount,
		&m.InstallmentDueDay,
		&m.FinalSettlementAmount,
		&m.FinalSettlementDate,
		&m.StartDate,
		&m.CurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePlan inserts a new payment plan.
func (r *PgxPlanRepository) SavePlan(ctx context.Context, plan domain.PlanConfig) error {
	m := mapping.ToModelPlan(plan)

	query := `
		INSERT INTO payment_plans (plan_id, sale_id, buyer_id, total_amount, down_payment_amount, down_payment_date,
			installment_count, installment_due_day, final_settlement_amount, final_settlement_date,
			start_date, currency_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.PlanID,
		m.SaleID,
		m.BuyerID,
		m.TotalAmount,
		m.DownPaymentAmount,
		m.DownPaymentDate,
		m.InstallmentCount,
		m.InstallmentDueDay,
		m.FinalSettlementAmount,
		m.FinalSettlementDate,
		m.StartDate,
		m.CurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save plan %s: %w", m.PlanID, err)
	}
	return nil
}

// FindPlanByID retrieves a payment plan by its ID.
func (r *PgxPlanRepository) FindPlanByID(ctx context.Context, planID string) (*domain.PlanConfig, error) {
	query := `SELECT ` + planColumns + ` FROM payment_plans WHERE plan_id = $1;`

	m, err := scanPlan(r.Pool.QueryRow(ctx, query, planID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find plan by id %s: %w", planID, err)
	}

	plan := mapping.ToDomainPlan(m)
	return &plan, nil
}

// ListPlansBySale retrieves a paginated list of plans for a sale using token-based pagination.
// It returns the list of plans, a token for the next page (if any), and an error.
func (r *PgxPlanRepository) ListPlansBySale(ctx context.Context, saleID string, limit int, nextToken *string) ([]domain.PlanConfig, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + planColumns + ` FROM payment_plans`
	filterClause := `WHERE sale_id = $1`

	// Ordering must be stable: start_date, then created_at as a tie-breaker.
	orderByClause := `ORDER BY start_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{saleID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (start_date, created_at) < ($2, $3)`
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
		return nil, nil, apperrors.NewAppError(500, "failed to query plans for sale "+saleID, err)
	}
	defer rows.Close()

	modelPlans := make([]models.PaymentPlan, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanPlan(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan plan row for sale "+saleID, scanErr)
		}
		modelPlans = append(modelPlans, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating plan rows for sale "+saleID, err)
	}

	// Determine the next token
	var nextTokenVal *string
	results := modelPlans
	if len(modelPlans) > limit {
		lastPlan := modelPlans[limit-1] // The *actual* last item of the *current* page
		newToken := pagination.EncodeToken(lastPlan.StartDate, lastPlan.CreatedAt)
		nextTokenVal = &newToken
		results = modelPlans[:limit]
	}

	return mapping.ToDomainPlanSlice(results), nextTokenVal, nil
}

// UpdatePlan updates the commercial terms of an existing plan.
func (r *PgxPlanRepository) UpdatePlan(ctx context.Context, plan domain.PlanConfig) error {
	m := mapping.ToModelPlan(plan)

	query := `
		UPDATE payment_plans
		SET total_amount = $2,
			down_payment_amount = $3,
			down_payment_date = $4,
			installment_count = $5,
			installment_due_day = $6,
			final_settlement_amount = $7,
			final_settlement_date = $8,
			start_date = $9,
			last_updated_at = $10,
			last_updated_by = $11
		WHERE plan_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.PlanID,
		m.TotalAmount,
		m.DownPaymentAmount,
		m.DownPaymentDate,
		m.InstallmentCount,
		m.InstallmentDueDay,
		m.FinalSettlementAmount,
		m.FinalSettlementDate,
		m.StartDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update plan %s: %w", m.PlanID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivatePlan marks a plan as inactive.
func (r *PgxPlanRepository) DeactivatePlan(ctx context.Context, planID string, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE payment_plans
		SET is_active = FALSE,
			last_updated_at = $2,
			last_updated_by = $3
		WHERE plan_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, planID, updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to deactivate plan %s: %w", planID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
