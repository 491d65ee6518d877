package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fintera/finplan-backend/internal/apperrors"
	portssvc "github.com/fintera/finplan-backend/internal/core/ports/services"
	"github.com/fintera/finplan-backend/internal/core/services"
	"github.com/fintera/finplan-backend/internal/dto"
)

type QuotationServiceTestSuite struct {
	suite.Suite
	service portssvc.QuotationSvc
}

func (suite *QuotationServiceTestSuite) SetupTest() {
	suite.service = services.NewQuotationService()
}

func (suite *QuotationServiceTestSuite) TestPreviewSchedule_Success() {
	ctx := context.Background()
	req := dto.QuotationPreviewRequest{
		TotalAmount: decimal.RequireFromString("1000000"),
		DownPayment: &dto.DownPaymentRequest{
			Amount: decimal.RequireFromString("300000"),
			Date:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		InstallmentCount: 10,
		StartDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrencyCode:     "USD",
	}

	resp, err := suite.service.PreviewSchedule(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Dues, 11)
	suite.True(resp.TotalScheduled.Equal(req.TotalAmount))
	suite.Equal("USD", resp.CurrencyCode)
	suite.Equal("Installment 1 of 10", resp.Dues[1].Label)
}

func (suite *QuotationServiceTestSuite) TestPreviewSchedule_NoDownPayment() {
	ctx := context.Background()
	req := dto.QuotationPreviewRequest{
		TotalAmount:      decimal.RequireFromString("500000"),
		InstallmentCount: 5,
		StartDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrencyCode:     "USD",
	}

	resp, err := suite.service.PreviewSchedule(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Dues, 5, "installments only, no down-payment due")
	suite.Equal("Installment 1 of 5", resp.Dues[0].Label)
	suite.True(resp.TotalScheduled.Equal(req.TotalAmount))
}

func (suite *QuotationServiceTestSuite) TestPreviewSchedule_InvalidTerms() {
	ctx := context.Background()
	req := dto.QuotationPreviewRequest{
		TotalAmount: decimal.RequireFromString("100000"),
		DownPayment: &dto.DownPaymentRequest{
			Amount: decimal.RequireFromString("300000"),
			Date:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		InstallmentCount: 10,
		StartDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CurrencyCode:     "USD",
	}

	resp, err := suite.service.PreviewSchedule(ctx, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestQuotationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuotationServiceTestSuite))
}
