package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/fintera/finplan-backend/internal/core/domain"
	"github.com/fintera/finplan-backend/internal/models"
)

// ToModelPlan converts a domain PlanConfig to a model PaymentPlan
func ToModelPlan(d domain.PlanConfig) models.PaymentPlan {
	m := models.PaymentPlan{
		PlanID:            d.PlanID,
		SaleID:            d.SaleID,
		BuyerID:           d.BuyerID,
		TotalAmount:       d.TotalAmount,
		DownPaymentAmount: d.DownPayment.Amount,
		InstallmentCount:  d.InstallmentCount,
		InstallmentDueDay: d.InstallmentDueDay,
		StartDate:         d.StartDate,
		CurrencyCode:      d.CurrencyCode,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
	if !d.DownPayment.Date.IsZero() {
		date := d.DownPayment.Date
		m.DownPaymentDate = &date
	}
	if d.FinalSettlement != nil {
		m.FinalSettlementAmount = decimal.NewNullDecimal(d.FinalSettlement.Amount)
		if !d.FinalSettlement.Date.IsZero() {
			date := d.FinalSettlement.Date
			m.FinalSettlementDate = &date
		}
	}
	return m
}

// ToDomainPlan converts a model PaymentPlan to a domain PlanConfig
func ToDomainPlan(m models.PaymentPlan) domain.PlanConfig {
	d := domain.PlanConfig{
		PlanID:            m.PlanID,
		SaleID:            m.SaleID,
		BuyerID:           m.BuyerID,
		TotalAmount:       m.TotalAmount,
		DownPayment:       domain.DownPayment{Amount: m.DownPaymentAmount},
		InstallmentCount:  m.InstallmentCount,
		InstallmentDueDay: m.InstallmentDueDay,
		StartDate:         m.StartDate,
		CurrencyCode:      m.CurrencyCode,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
	if m.DownPaymentDate != nil {
		d.DownPayment.Date = *m.DownPaymentDate
	}
	if m.FinalSettlementAmount.Valid {
		settlement := domain.FinalSettlement{Amount: m.FinalSettlementAmount.Decimal}
		if m.FinalSettlementDate != nil {
			settlement.Date = *m.FinalSettlementDate
		}
		d.FinalSettlement = &settlement
	}
	return d
}

// ToDomainPlanSlice converts a slice of model PaymentPlans to domain PlanConfigs
func ToDomainPlanSlice(ms []models.PaymentPlan) []domain.PlanConfig {
	ds := make([]domain.PlanConfig, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPlan(m)
	}
	return ds
}
