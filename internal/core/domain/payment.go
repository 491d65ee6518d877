package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecordStatus indicates the verification state of a recorded payment.
type PaymentRecordStatus string

const (
	PaymentRecorded PaymentRecordStatus = "RECORDED"
	PaymentVerified PaymentRecordStatus = "VERIFIED"
	PaymentRejected PaymentRecordStatus = "REJECTED"
)

// PaymentRecord is a single payment registered against a plan. Records are
// appended independently of the schedule; the engine never mutates them and
// never links them durably to a due.
type PaymentRecord struct {
	PaymentID    string              `json:"paymentID"` // Primary Key (UUID)
	PlanID       string              `json:"planID"`    // FK -> PlanConfig.planID
	Amount       decimal.Decimal     `json:"amount"`
	Date         time.Time           `json:"date"`
	Method       string              `json:"method"`    // e.g. transfer, check, cash
	Reference    string              `json:"reference"` // bank reference, folio
	RecordStatus PaymentRecordStatus `json:"recordStatus"`
	AuditFields
}
