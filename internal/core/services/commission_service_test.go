package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/realtyfin/realty_ledger_app/internal/apperrors"
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
	"github.com/realtyfin/realty_ledger_app/internal/core/services"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
)

type CommissionServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockCommissionRepository
	mockCatalog *MockCatalogSvc
	service     portssvc.CommissionSvcFacade
}

func (suite *CommissionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCommissionRepository)
	suite.mockCatalog = new(MockCatalogSvc)
	suite.service = services.NewCommissionService(suite.mockRepo, suite.mockCatalog)
}

func (suite *CommissionServiceTestSuite) TestCreateCommission_DerivesValueFromContract() {
	ctx := context.Background()
	req := dto.CreateCommissionRequest{
		ContractID: 10,
		AgentID:    20,
		Percentage: decimal.RequireFromString("6"),
	}

	suite.mockCatalog.On("GetContract", ctx, int64(10)).
		Return(&domain.ContractRef{ContractID: 10, Value: decimal.RequireFromString("500000")}, nil).Once()
	suite.mockRepo.On("SaveCommission", ctx, mock.AnythingOfType("domain.Commission")).
		Return(&domain.Commission{CommissionID: 1}, nil).Once()

	created, err := suite.service.CreateCommission(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)

	savedArg := suite.mockRepo.Calls[0].Arguments.Get(1).(domain.Commission)
	suite.Equal("30000.00", savedArg.Value.StringFixed(2))
	suite.Equal(domain.CommissionPending, savedArg.Status)

	suite.mockCatalog.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CommissionServiceTestSuite) TestCreateCommission_ExplicitValueSkipsCatalog() {
	ctx := context.Background()
	value := decimal.RequireFromString("1234.567")
	req := dto.CreateCommissionRequest{
		ContractID: 10,
		AgentID:    20,
		Percentage: decimal.RequireFromString("5"),
		Value:      &value,
	}

	suite.mockRepo.On("SaveCommission", ctx, mock.AnythingOfType("domain.Commission")).
		Return(&domain.Commission{CommissionID: 2}, nil).Once()

	_, err := suite.service.CreateCommission(ctx, req)

	suite.Require().NoError(err)
	savedArg := suite.mockRepo.Calls[0].Arguments.Get(1).(domain.Commission)
	suite.Equal("1234.57", savedArg.Value.StringFixed(2))

	suite.mockCatalog.AssertNotCalled(suite.T(), "GetContract")
}

func (suite *CommissionServiceTestSuite) TestCreateCommission_PercentageOutOfRange() {
	ctx := context.Background()

	for _, pct := range []string{"-0.01", "100.01"} {
		req := dto.CreateCommissionRequest{
			ContractID: 10,
			AgentID:    20,
			Percentage: decimal.RequireFromString(pct),
		}

		created, err := suite.service.CreateCommission(ctx, req)

		suite.Require().Error(err, "percentage %s", pct)
		suite.Nil(created)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCommission")
}

func (suite *CommissionServiceTestSuite) TestCreateCommission_UnknownContract() {
	ctx := context.Background()
	req := dto.CreateCommissionRequest{
		ContractID: 404,
		AgentID:    20,
		Percentage: decimal.RequireFromString("5"),
	}

	suite.mockCatalog.On("GetContract", ctx, int64(404)).Return(nil, apperrors.ErrNotFound).Once()

	created, err := suite.service.CreateCommission(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCommission")
}

func (suite *CommissionServiceTestSuite) TestUpdateCommission_PercentageChangeRecomputesValue() {
	ctx := context.Background()
	pending := &domain.Commission{
		CommissionID: 5,
		ContractID:   10,
		AgentID:      20,
		Percentage:   decimal.RequireFromString("5"),
		Value:        decimal.RequireFromString("25000.00"),
		Status:       domain.CommissionPending,
	}
	newPct := decimal.RequireFromString("7")

	suite.mockRepo.On("FindCommissionByID", ctx, int64(5)).Return(pending, nil).Once()
	suite.mockCatalog.On("GetContract", ctx, int64(10)).
		Return(&domain.ContractRef{ContractID: 10, Value: decimal.RequireFromString("500000")}, nil).Once()
	suite.mockRepo.On("UpdateCommission", ctx, mock.AnythingOfType("domain.Commission")).
		Return(&domain.Commission{CommissionID: 5}, nil).Once()

	_, err := suite.service.UpdateCommission(ctx, 5, dto.UpdateCommissionRequest{Percentage: &newPct})

	suite.Require().NoError(err)
	updatedArg := suite.mockRepo.Calls[1].Arguments.Get(1).(domain.Commission)
	suite.Equal("35000.00", updatedArg.Value.StringFixed(2))

	suite.mockCatalog.AssertExpectations(suite.T())
}

func (suite *CommissionServiceTestSuite) TestUpdateCommission_ExplicitValueWinsOverRecompute() {
	ctx := context.Background()
	pending := &domain.Commission{
		CommissionID: 5,
		ContractID:   10,
		Percentage:   decimal.RequireFromString("5"),
		Value:        decimal.RequireFromString("25000.00"),
		Status:       domain.CommissionPending,
	}
	newPct := decimal.RequireFromString("7")
	newValue := decimal.RequireFromString("40000")

	suite.mockRepo.On("FindCommissionByID", ctx, int64(5)).Return(pending, nil).Once()
	suite.mockRepo.On("UpdateCommission", ctx, mock.AnythingOfType("domain.Commission")).
		Return(&domain.Commission{CommissionID: 5}, nil).Once()

	_, err := suite.service.UpdateCommission(ctx, 5, dto.UpdateCommissionRequest{
		Percentage: &newPct,
		Value:      &newValue,
	})

	suite.Require().NoError(err)
	updatedArg := suite.mockRepo.Calls[1].Arguments.Get(1).(domain.Commission)
	suite.Equal("40000.00", updatedArg.Value.StringFixed(2))

	suite.mockCatalog.AssertNotCalled(suite.T(), "GetContract")
}

func (suite *CommissionServiceTestSuite) TestUpdateCommission_RejectedWhenNotPending() {
	ctx := context.Background()
	approved := &domain.Commission{CommissionID: 5, Status: domain.CommissionApproved}

	suite.mockRepo.On("FindCommissionByID", ctx, int64(5)).Return(approved, nil).Once()

	notes := "late edit"
	updated, err := suite.service.UpdateCommission(ctx, 5, dto.UpdateCommissionRequest{Notes: &notes})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateCommission")
}

func (suite *CommissionServiceTestSuite) TestApproveCommission_Success() {
	ctx := context.Background()
	approvedAt := time.Now().UTC()
	approved := &domain.Commission{CommissionID: 6, Status: domain.CommissionApproved, ApprovedAt: &approvedAt}

	suite.mockRepo.On("ApproveCommission", ctx, int64(6), mock.AnythingOfType("time.Time")).
		Return(approved, nil).Once()

	commission, err := suite.service.ApproveCommission(ctx, 6)

	suite.Require().NoError(err)
	suite.Equal(domain.CommissionApproved, commission.Status)
	suite.NotNil(commission.ApprovedAt)
}

func (suite *CommissionServiceTestSuite) TestPayCommission_Success() {
	ctx := context.Background()
	paidAt := time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)
	bankAccountID := int64(77)
	paid := &domain.Commission{CommissionID: 6, Status: domain.CommissionPaid, PaidAt: &paidAt}

	suite.mockRepo.On("PayCommission", ctx, int64(6), paidAt, int64(3), &bankAccountID, "done", "RCPT-9").
		Return(paid, nil).Once()

	commission, err := suite.service.PayCommission(ctx, 6, dto.PayCommissionRequest{
		PaidAt:        "2026-05-02",
		PaymentTypeID: 3,
		BankAccountID: &bankAccountID,
		Notes:         "done",
		ReceiptRef:    "RCPT-9",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.CommissionPaid, commission.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CommissionServiceTestSuite) TestPayCommission_PendingSkipsApproval() {
	ctx := context.Background()

	suite.mockRepo.On("PayCommission", ctx, int64(6), mock.AnythingOfType("time.Time"), int64(3), (*int64)(nil), "", "").
		Return(nil, apperrors.ErrInvalidStateTransition).Once()

	commission, err := suite.service.PayCommission(ctx, 6, dto.PayCommissionRequest{
		PaidAt:        "2026-05-02",
		PaymentTypeID: 3,
	})

	suite.Require().Error(err)
	suite.Nil(commission)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func (suite *CommissionServiceTestSuite) TestCancelCommission_PaidIsRejected() {
	ctx := context.Background()

	suite.mockRepo.On("CancelCommission", ctx, int64(8), "", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrInvalidStateTransition).Once()

	commission, err := suite.service.CancelCommission(ctx, 8, dto.CancelCommissionRequest{})

	suite.Require().Error(err)
	suite.Nil(commission)
	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func TestCommissionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CommissionServiceTestSuite))
}
