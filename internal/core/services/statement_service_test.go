package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintera/finplan-backend/internal/apperrors"
	"github.com/fintera/finplan-backend/internal/core/domain"
	portssvc "github.com/fintera/finplan-backend/internal/core/ports/services"
	"github.com/fintera/finplan-backend/internal/core/services"
)

type StatementServiceTestSuite struct {
	suite.Suite
	mockPlanRepo    *MockPlanRepository
	mockPaymentRepo *MockPaymentRepository
	service         portssvc.StatementSvc
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockPlanRepo = new(MockPlanRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.service = services.NewStatementService(suite.mockPlanRepo, suite.mockPaymentRepo)
}

func (suite *StatementServiceTestSuite) TestGetStatement_Success() {
	ctx := context.Background()
	planID := uuid.NewString()
	plan := activePlanFixture(planID)
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	payments := []domain.PaymentRecord{
		{
			PaymentID:    "p1",
			PlanID:       planID,
			Amount:       decimal.RequireFromString("300000"),
			Date:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			RecordStatus: domain.PaymentVerified,
		},
		{
			PaymentID:    "p2",
			PlanID:       planID,
			Amount:       decimal.RequireFromString("50000"),
			Date:         time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
			RecordStatus: domain.PaymentRecorded,
		},
		{
			PaymentID:    "p3",
			PlanID:       planID,
			Amount:       decimal.RequireFromString("99999"),
			Date:         time.Date(2024, 2, 6, 0, 0, 0, 0, time.UTC),
			RecordStatus: domain.PaymentRejected,
		},
	}

	suite.mockPlanRepo.On("FindPlanByID", ctx, planID).Return(plan, nil).Once()
	suite.mockPaymentRepo.On("FindAllPaymentsByPlan", ctx, planID).Return(payments, nil).Once()

	statement, err := suite.service.GetStatement(ctx, planID, asOf)

	suite.Require().NoError(err)
	suite.Require().NotNil(statement)
	suite.Require().Len(statement.Dues, 11) // down payment + 10 installments

	// Down payment fully covered by p1.
	suite.Equal(domain.DuePaid, statement.Dues[0].Status)

	// First installment: 50,000 of 70,000 covered, past due as of March 15.
	first := statement.Dues[1]
	suite.Equal(domain.DueOverdue, first.Status)
	suite.True(first.PartiallyPaid)
	suite.True(first.AmountAllocated.Equal(decimal.RequireFromString("50000")))
	suite.True(first.AmountPending.Equal(decimal.RequireFromString("20000")))

	// Second installment: untouched and past due.
	second := statement.Dues[2]
	suite.Equal(domain.DueOverdue, second.Status)
	suite.False(second.PartiallyPaid)

	// Everything later is still pending.
	for _, due := range statement.Dues[3:] {
		suite.Equal(domain.DuePending, due.Status)
	}

	// The rejected payment contributed nothing.
	suite.True(statement.Summary.TotalPaid.Equal(decimal.RequireFromString("350000")))
	suite.True(statement.UnallocatedRemainder.IsZero())
	suite.mockPlanRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestGetStatement_PlanNotFound() {
	ctx := context.Background()
	planID := uuid.NewString()

	suite.mockPlanRepo.On("FindPlanByID", ctx, planID).Return(nil, apperrors.ErrNotFound).Once()

	statement, err := suite.service.GetStatement(ctx, planID, time.Now())

	suite.Require().Error(err)
	suite.Nil(statement)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "FindAllPaymentsByPlan", mock.Anything, mock.Anything)
}

func (suite *StatementServiceTestSuite) TestGetStatement_NoPayments() {
	ctx := context.Background()
	planID := uuid.NewString()
	plan := activePlanFixture(planID)

	suite.mockPlanRepo.On("FindPlanByID", ctx, planID).Return(plan, nil).Once()
	suite.mockPaymentRepo.On("FindAllPaymentsByPlan", ctx, planID).Return([]domain.PaymentRecord{}, nil).Once()

	statement, err := suite.service.GetStatement(ctx, planID, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.True(statement.Summary.TotalPaid.IsZero())
	for _, due := range statement.Dues {
		suite.Equal(domain.DuePending, due.Status)
	}
}

func (suite *StatementServiceTestSuite) TestGetSchedule_Success() {
	ctx := context.Background()
	planID := uuid.NewString()
	plan := activePlanFixture(planID)

	suite.mockPlanRepo.On("FindPlanByID", ctx, planID).Return(plan, nil).Once()

	schedule, err := suite.service.GetSchedule(ctx, planID)

	suite.Require().NoError(err)
	suite.Require().Len(schedule, 11)

	total := decimal.Zero
	for _, due := range schedule {
		total = total.Add(due.Amount)
	}
	suite.True(total.Equal(plan.TotalAmount))
	suite.mockPlanRepo.AssertExpectations(suite.T())
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
