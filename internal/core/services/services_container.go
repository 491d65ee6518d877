package services

import (
	portsrepo "github.com/fintera/finplan-backend/internal/core/ports/repositories"
	portssvc "github.com/fintera/finplan-backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Plan = NewPlanService(repos.PlanRepo)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.PlanRepo)
	container.Statement = NewStatementService(repos.PlanRepo, repos.PaymentRepo)
	container.Quotation = NewQuotationService()

	return container
}
