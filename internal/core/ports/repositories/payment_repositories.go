package repositories

import (
	"context"
	"time"

	"github.com/fintera/finplan-backend/internal/core/domain"
)

// PaymentReader defines read operations for payment record data
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment record by its unique identifier.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error)

	// ListPaymentsByPlan retrieves a paginated list of payments for a plan using token-based pagination.
	// It returns the payments, a token for the next page, and an error.
	ListPaymentsByPlan(ctx context.Context, planID string, limit int, nextToken *string) ([]domain.PaymentRecord, *string, error)

	// FindAllPaymentsByPlan retrieves every payment recorded against a plan.
	// Reconciliation always runs over the full payment history.
	FindAllPaymentsByPlan(ctx context.Context, planID string) ([]domain.PaymentRecord, error)
}

// PaymentWriter defines write operations for payment record data
type PaymentWriter interface {
	// SavePayment persists a new payment record.
	SavePayment(ctx context.Context, payment domain.PaymentRecord) error

	// UpdatePaymentStatus transitions the record status of a payment (verify/reject).
	UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentRecordStatus, updatedByUserID string, updatedAt time.Time) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
// This is a facade for clients that need access to all operations
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
