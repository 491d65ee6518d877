package mapping

import (
	"github.com/fintera/finplan-backend/internal/core/domain"
	"github.com/fintera/finplan-backend/internal/models"
)

// ToModelPayment converts a domain PaymentRecord to a model PaymentRecord
func ToModelPayment(d domain.PaymentRecord) models.PaymentRecord {
	return models.PaymentRecord{
		PaymentID:    d.PaymentID,
		PlanID:       d.PlanID,
		Amount:       d.Amount,
		Date:         d.Date,
		Method:       d.Method,
		Reference:    d.Reference,
		RecordStatus: string(d.RecordStatus),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model PaymentRecord to a domain PaymentRecord
func ToDomainPayment(m models.PaymentRecord) domain.PaymentRecord {
	return domain.PaymentRecord{
		PaymentID:    m.PaymentID,
		PlanID:       m.PlanID,
		Amount:       m.Amount,
		Date:         m.Date,
		Method:       m.Method,
		Reference:    m.Reference,
		RecordStatus: domain.PaymentRecordStatus(m.RecordStatus),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model PaymentRecords to domain PaymentRecords
func ToDomainPaymentSlice(ms []models.PaymentRecord) []domain.PaymentRecord {
	ds := make([]domain.PaymentRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
