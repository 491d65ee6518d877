package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DownPayment is the portion of a plan due at inception ("anticipo").
// Amount may be zero, in which case no down-payment due is scheduled.
type DownPayment struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// FinalSettlement is an optional lump sum ("finiquito") that shrinks the
// installment-bearing principal. When Date is zero it defaults to 30 days
// after the last installment.
type FinalSettlement struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// PlanConfig is the commercial terms of a buyer's payment plan for a sale.
// Editing a plan never invalidates anything explicitly: schedules and
// allocations are derived values, recomputed in full on every read.
type PlanConfig struct {
	PlanID            string           `json:"planID"`  // Primary Key (UUID)
	SaleID            string           `json:"saleID"`  // Sale/unit association (external)
	BuyerID           string           `json:"buyerID"` // Buyer association (external)
	TotalAmount       decimal.Decimal  `json:"totalAmount"`
	DownPayment       DownPayment      `json:"downPayment"`
	InstallmentCount  int              `json:"installmentCount"`
	InstallmentDueDay int              `json:"installmentDueDay"` // 1-31, advisory only
	FinalSettlement   *FinalSettlement `json:"finalSettlement,omitempty"`
	StartDate         time.Time        `json:"startDate"`
	CurrencyCode      string           `json:"currencyCode"`
	IsActive          bool             `json:"isActive"`
	AuditFields
}
