package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintera/finplan-backend/internal/apperrors"
	"github.com/fintera/finplan-backend/internal/core/domain"
	portssvc "github.com/fintera/finplan-backend/internal/core/ports/services"
	"github.com/fintera/finplan-backend/internal/dto"
	"github.com/fintera/finplan-backend/internal/handlers"
	"github.com/fintera/finplan-backend/internal/middleware"
)

// --- Mock PlanService ---
type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest, creatorUserID string) (*domain.PlanConfig, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanConfig), args.Error(1)
}
func (m *MockPlanService) GetPlanByID(ctx context.Context, planID string) (*domain.PlanConfig, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanConfig), args.Error(1)
}
func (m *MockPlanService) ListPlansBySale(ctx context.Context, saleID string, params dto.ListPlansParams) (*dto.ListPlansResponse, error) {
	args := m.Called(ctx, saleID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPlansResponse), args.Error(1)
}
func (m *MockPlanService) UpdatePlan(ctx context.Context, planID string, req dto.UpdatePlanRequest, requestingUserID string) (*domain.PlanConfig, error) {
	args := m.Called(ctx, planID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanConfig), args.Error(1)
}
func (m *MockPlanService) DeactivatePlan(ctx context.Context, planID string, requestingUserID string) error {
	args := m.Called(ctx, planID, requestingUserID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.PlanSvcFacade = (*MockPlanService)(nil)

// --- Mock StatementService ---
type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) GetStatement(ctx context.Context, planID string, asOf time.Time) (*domain.PlanStatement, error) {
	args := m.Called(ctx, planID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanStatement), args.Error(1)
}
func (m *MockStatementService) GetSchedule(ctx context.Context, planID string) ([]domain.ScheduledDue, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduledDue), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.StatementSvc = (*MockStatementService)(nil)

// --- Test Suite ---
type PlanHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockPlanService      *MockPlanService
	mockStatementService *MockStatementService
	jwtSecret            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *PlanHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finplan-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *PlanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockPlanService = new(MockPlanService)
	suite.mockStatementService = new(MockStatementService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterPlanRoutes(v1, suite.mockPlanService, suite.mockStatementService)
}

func (suite *PlanHandlerTestSuite) authorizedRequest(method, url string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	token := suite.generateTestToken(uuid.NewString())
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	return req
}

// --- Test Cases ---

func (suite *PlanHandlerTestSuite) TestGetStatement_Success() {
	planID := uuid.NewString()
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	due := domain.ScheduledDue{
		Sequence: 0,
		DueDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.NewFromInt(300000),
		Kind:     domain.KindDownPayment,
		Label:    "Down payment",
	}
	statement := &domain.PlanStatement{
		AsOf: asOf,
		Dues: []domain.DueView{
			{
				Due:             due,
				Status:          domain.DuePaid,
				AmountAllocated: due.Amount,
				AmountPending:   decimal.Zero,
				AppliedPayments: []domain.AppliedPayment{
					{PaymentID: uuid.NewString(), AmountApplied: due.Amount},
				},
			},
		},
		Summary: domain.PlanSummary{
			TotalScheduled:  due.Amount,
			TotalPaid:       due.Amount,
			TotalPending:    decimal.Zero,
			ProgressPercent: decimal.NewFromInt(100),
			MonthlyVelocity: decimal.NewFromInt(150000),
		},
		UnallocatedRemainder: decimal.Zero,
	}

	suite.mockStatementService.On("GetStatement", mock.Anything, planID, asOf).
		Return(statement, nil).Once()

	url := fmt.Sprintf("/api/v1/plans/%s/statement?asOf=2024-03-15", planID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, url, nil))

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.StatementResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(planID, responseBody.PlanID)
	suite.Len(responseBody.Dues, 1)
	suite.Equal("PAID", responseBody.Dues[0].Status)
	suite.True(responseBody.Summary.TotalPaid.Equal(due.Amount))

	suite.mockStatementService.AssertExpectations(suite.T())
}

func (suite *PlanHandlerTestSuite) TestGetStatement_InvalidAsOf() {
	planID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/plans/%s/statement?asOf=15-03-2024", planID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, url, nil))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStatementService.AssertNotCalled(suite.T(), "GetStatement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PlanHandlerTestSuite) TestGetPlan_NotFound() {
	planID := uuid.NewString()

	suite.mockPlanService.On("GetPlanByID", mock.Anything, planID).
		Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/plans/%s", planID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, url, nil))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockPlanService.AssertExpectations(suite.T())
}

func (suite *PlanHandlerTestSuite) TestCreatePlan_Success() {
	creatorID := uuid.NewString()
	reqBody := dto.CreatePlanRequest{
		SaleID:      uuid.NewString(),
		BuyerID:     uuid.NewString(),
		TotalAmount: decimal.NewFromInt(1000000),
		DownPayment: &dto.DownPaymentRequest{
			Amount: decimal.NewFromInt(300000),
			Date:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		InstallmentCount: 10,
		StartDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrencyCode:     "USD",
	}

	created := &domain.PlanConfig{
		PlanID:           uuid.NewString(),
		SaleID:           reqBody.SaleID,
		BuyerID:          reqBody.BuyerID,
		TotalAmount:      reqBody.TotalAmount,
		DownPayment:      domain.DownPayment{Amount: reqBody.DownPayment.Amount, Date: reqBody.DownPayment.Date},
		InstallmentCount: reqBody.InstallmentCount,
		StartDate:        reqBody.StartDate,
		CurrencyCode:     reqBody.CurrencyCode,
		IsActive:         true,
	}

	suite.mockPlanService.On("CreatePlan", mock.Anything, mock.AnythingOfType("dto.CreatePlanRequest"), mock.AnythingOfType("string")).
		Return(created, nil).Once()

	body, _ := json.Marshal(reqBody)
	req := suite.authorizedRequest(http.MethodPost, "/api/v1/plans", body)
	// Use a token for a known creator so the handler forwards that user ID.
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(creatorID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.PlanResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err)
	suite.Equal(created.PlanID, responseBody.PlanID)
	suite.True(responseBody.IsActive)

	suite.mockPlanService.AssertExpectations(suite.T())
}

func (suite *PlanHandlerTestSuite) TestCreatePlan_MissingToken() {
	body, _ := json.Marshal(dto.CreatePlanRequest{})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/plans", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPlanService.AssertNotCalled(suite.T(), "CreatePlan", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PlanHandlerTestSuite) TestDeactivatePlan_AlreadyInactive() {
	planID := uuid.NewString()

	suite.mockPlanService.On("DeactivatePlan", mock.Anything, planID, mock.AnythingOfType("string")).
		Return(fmt.Errorf("plan is inactive: %w", apperrors.ErrConflict)).Once()

	url := fmt.Sprintf("/api/v1/plans/%s", planID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodDelete, url, nil))

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockPlanService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPlanHandler(t *testing.T) {
	suite.Run(t, new(PlanHandlerTestSuite))
}
