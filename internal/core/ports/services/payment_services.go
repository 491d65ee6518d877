package services

import (
	"context"

	"github.com/fintera/finplan-backend/internal/core/domain"
	"github.com/fintera/finplan-backend/internal/dto"
)

// PaymentReaderSvc defines read operations for payment record data
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a specific payment record by its ID.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error)

	// ListPayments retrieves a paginated list of payments for a plan.
	ListPayments(ctx context.Context, planID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)
}

// PaymentWriterSvc defines write operations for payment record data
type PaymentWriterSvc interface {
	// RecordPayment appends a new payment record against a plan.
	RecordPayment(ctx context.Context, planID string, req dto.RecordPaymentRequest, creatorUserID string) (*domain.PaymentRecord, error)

	// VerifyPayment marks a recorded payment as verified.
	VerifyPayment(ctx context.Context, paymentID string, requestingUserID string) (*domain.PaymentRecord, error)

	// RejectPayment marks a payment as rejected, excluding it from allocation.
	RejectPayment(ctx context.Context, paymentID string, requestingUserID string) (*domain.PaymentRecord, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
