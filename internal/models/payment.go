package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is the persisted shape of a recorded payment. Records are
// append-only; only record_status ever changes after insert.
type PaymentRecord struct {
	PaymentID    string          `db:"payment_id"`
	PlanID       string          `db:"plan_id"`
	Amount       decimal.Decimal `db:"amount"`
	Date         time.Time       `db:"payment_date"`
	Method       string          `db:"method"`
	Reference    string          `db:"reference"`
	RecordStatus string          `db:"record_status"`
	AuditFields
}
