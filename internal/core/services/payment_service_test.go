package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintera/finplan-backend/internal/apperrors"
	"github.com/fintera/finplan-backend/internal/core/domain"
	portssvc "github.com/fintera/finplan-backend/internal/core/ports/services"
	"github.com/fintera/finplan-backend/internal/core/services"
	"github.com/fintera/finplan-backend/internal/dto"
)

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	args := m.Called(ctx, paymentID)
	var payment *domain.PaymentRecord
	if args.Get(0) != nil {
		payment = args.Get(0).(*domain.PaymentRecord)
	}
	return payment, args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByPlan(ctx context.Context, planID string, limit int, nextToken *string) ([]domain.PaymentRecord, *string, error) {
	args := m.Called(ctx, planID, limit, nextToken)
	var payments []domain.PaymentRecord
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.PaymentRecord)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return payments, token, args.Error(2)
}

func (m *MockPaymentRepository) FindAllPaymentsByPlan(ctx context.Context, planID string) ([]domain.PaymentRecord, error) {
	args := m.Called(ctx, planID)
	var payments []domain.PaymentRecord
	if args.Get(0) != nil {
		payments = args.Get(0).([]domain.PaymentRecord)
	}
	return payments, args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.PaymentRecord) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePaymentStatus(ctx context.Context, paymentID string, status domain.PaymentRecordStatus, updatedByUserID string, updatedAt time.Time) error {
	args := m.Called(ctx, paymentID, status, updatedByUserID, updatedAt)
	return args.Error(0)
}

func paymentFixture(paymentID string, status domain.PaymentRecordStatus) *domain.PaymentRecord {
	return &domain.PaymentRecord{
		PaymentID:    paymentID,
		PlanID:       uuid.NewString(),
		Amount:       decimal.RequireFromString("70000"),
		Date:         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Method:       "transfer",
		RecordStatus: status,
	}
}

// --- Test Suite ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockPlanRepo    *MockPlanRepository
	service         portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockPlanRepo = new(MockPlanRepository)
	suite.service = services.NewPaymentService(suite.mockPaymentRepo, suite.mockPlanRepo)
}

// --- RecordPayment Tests ---

func (suite *PaymentServiceTestSuite) TestRecordPayment_Success() {
	ctx := context.Background()
	planID := uuid.NewString()
	creatorID := uuid.NewString()
	req := dto.RecordPaymentRequest{
		Amount:    decimal.RequireFromString("50000.005"),
		Date:      time.Date(2024, 2, 1, 14, 30, 0, 0, time.UTC),
		Method:    "transfer",
		Reference: "TRX-001",
	}

	suite.mockPlanRepo.On("FindPlanByID", ctx, planID).Return(activePlanFixture(planID), nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.MatchedBy(func(p domain.PaymentRecord) bool {
		return p.PlanID == planID &&
			p.RecordStatus == domain.PaymentRecorded &&
			p.Amount.Equal(decimal.RequireFromString("50000.01")) &&
			p.Date.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) &&
			p.CreatedBy == creatorID
	})).Return(nil).Once()

	payment, err := suite.service.RecordPayment(ctx, planID, req, creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.NotEmpty(payment.PaymentID)
	suite.Equal(domain.PaymentRecorded, payment.RecordStatus)
	suite.Equal("TRX-001", payment.Reference)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockPlanRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_InactivePlan() {
	ctx := context.Background()
	planID := uuid.NewString()
	plan := activePlanFixture(planID)
	plan.IsActive = false

	suite.mockPlanRepo.On("FindPlanByID", ctx, planID).Return(plan, nil).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.RequireFromString("100"), Date: time.Now(), Method: "cash"}
	payment, err := suite.service.RecordPayment(ctx, planID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, services.ErrPlanInactive)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_PlanNotFound() {
	ctx := context.Background()
	planID := uuid.NewString()

	suite.mockPlanRepo.On("FindPlanByID", ctx, planID).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.RequireFromString("100"), Date: time.Now(), Method: "cash"}
	payment, err := suite.service.RecordPayment(ctx, planID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NonPositiveAmount() {
	ctx := context.Background()
	planID := uuid.NewString()

	suite.mockPlanRepo.On("FindPlanByID", ctx, planID).Return(activePlanFixture(planID), nil).Once()

	req := dto.RecordPaymentRequest{Amount: decimal.Zero, Date: time.Now(), Method: "cash"}
	payment, err := suite.service.RecordPayment(ctx, planID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

// --- Status transition Tests ---

func (suite *PaymentServiceTestSuite) TestVerifyPayment_Success() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(paymentFixture(paymentID, domain.PaymentRecorded), nil).Once()
	suite.mockPaymentRepo.On("UpdatePaymentStatus", ctx, paymentID, domain.PaymentVerified, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	payment, err := suite.service.VerifyPayment(ctx, paymentID, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentVerified, payment.RecordStatus)
	suite.Equal(userID, payment.LastUpdatedBy)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestVerifyPayment_AlreadyVerified() {
	ctx := context.Background()
	paymentID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(paymentFixture(paymentID, domain.PaymentVerified), nil).Once()

	payment, err := suite.service.VerifyPayment(ctx, paymentID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, services.ErrPaymentNotVerifiable)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRejectPayment_FromVerified() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(paymentFixture(paymentID, domain.PaymentVerified), nil).Once()
	suite.mockPaymentRepo.On("UpdatePaymentStatus", ctx, paymentID, domain.PaymentRejected, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	payment, err := suite.service.RejectPayment(ctx, paymentID, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentRejected, payment.RecordStatus)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRejectPayment_RejectedIsTerminal() {
	ctx := context.Background()
	paymentID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(paymentFixture(paymentID, domain.PaymentRejected), nil).Once()

	payment, err := suite.service.RejectPayment(ctx, paymentID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, services.ErrPaymentNotVerifiable)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestVerifyPayment_UpdateError() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	userID := uuid.NewString()
	expectedErr := assert.AnError

	suite.mockPaymentRepo.On("FindPaymentByID", ctx, paymentID).Return(paymentFixture(paymentID, domain.PaymentRecorded), nil).Once()
	suite.mockPaymentRepo.On("UpdatePaymentStatus", ctx, paymentID, domain.PaymentVerified, userID, mock.AnythingOfType("time.Time")).Return(expectedErr).Once()

	payment, err := suite.service.VerifyPayment(ctx, paymentID, userID)

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, expectedErr)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

// --- ListPayments Tests ---

func (suite *PaymentServiceTestSuite) TestListPayments_DefaultLimit() {
	ctx := context.Background()
	planID := uuid.NewString()
	payments := []domain.PaymentRecord{*paymentFixture(uuid.NewString(), domain.PaymentRecorded)}

	suite.mockPaymentRepo.On("ListPaymentsByPlan", ctx, planID, 20, (*string)(nil)).Return(payments, nil, nil).Once()

	resp, err := suite.service.ListPayments(ctx, planID, dto.ListPaymentsParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Payments, 1)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
