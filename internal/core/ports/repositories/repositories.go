package repositories

// RepositoryProvider holds instances of all the application repositories.
// Services receive the interfaces they need from this provider at wiring time.
type RepositoryProvider struct {
	PlanRepo    PlanRepositoryFacade
	PaymentRepo PaymentRepositoryFacade
}
