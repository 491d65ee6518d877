package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DueKind distinguishes the three kinds of scheduled dues.
type DueKind string

const (
	KindDownPayment DueKind = "DOWN_PAYMENT"
	KindInstallment DueKind = "INSTALLMENT"
	KindSettlement  DueKind = "SETTLEMENT"
)

// ScheduledDue is one dated obligation in a generated schedule. Dues are
// immutable value objects: sequence 0 is the down payment, 1..N the monthly
// installments, N+1 the settlement when present.
type ScheduledDue struct {
	Sequence int             `json:"sequence"`
	DueDate  time.Time       `json:"dueDate"`
	Amount   decimal.Decimal `json:"amount"`
	Kind     DueKind         `json:"kind"`
	Label    string          `json:"label"`
}
