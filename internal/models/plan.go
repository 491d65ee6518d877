package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentPlan is the persisted shape of a payment plan. The down payment and
// final settlement are flattened into nullable columns; the schedule itself
// is never stored, it is regenerated from these terms on demand.
type PaymentPlan struct {
	PlanID                string              `db:"plan_id"`
	SaleID                string              `db:"sale_id"`
	BuyerID               string              `db:"buyer_id"`
	TotalAmount           decimal.Decimal     `db:"total_amount"`
	DownPaymentAmount     decimal.Decimal     `db:"down_payment_amount"`
	DownPaymentDate       *time.Time          `db:"down_payment_date"` // Nullable
	InstallmentCount      int                 `db:"installment_count"`
	InstallmentDueDay     int                 `db:"installment_due_day"`
	FinalSettlementAmount decimal.NullDecimal `db:"final_settlement_amount"` // Nullable
	FinalSettlementDate   *time.Time          `db:"final_settlement_date"`   // Nullable
	StartDate             time.Time           `db:"start_date"`
	CurrencyCode          string              `db:"currency_code"`
	IsActive              bool                `db:"is_active"`
	AuditFields
}
