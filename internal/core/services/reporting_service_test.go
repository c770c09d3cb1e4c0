package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/realtyfin/realty_ledger_app/internal/apperrors"
	"github.com/realtyfin/realty_ledger_app/internal/core/aggregation"
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
	"github.com/realtyfin/realty_ledger_app/internal/core/services"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockTxnRepo  *MockTransactionRepository
	mockCommRepo *MockCommissionRepository
	mockRemote   *MockRemoteRender
	mockLocal    *MockLocalRenderer
	service      portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCommRepo = new(MockCommissionRepository)
	suite.mockRemote = new(MockRemoteRender)
	suite.mockLocal = new(MockLocalRenderer)
	suite.service = services.NewReportingService(suite.mockTxnRepo, suite.mockCommRepo, suite.mockRemote, suite.mockLocal)
}

func paidTxn(id int64, txnType domain.TransactionType, amount string, paidOn time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Type:          txnType,
		CategoryID:    1,
		Amount:        decimal.RequireFromString(amount),
		Description:   "fixture",
		DueDate:       paidOn,
		PaymentDate:   &paidOn,
		Status:        domain.TransactionPaid,
	}
}

func (suite *ReportingServiceTestSuite) TestExportTransactions_RemoteSuccess() {
	ctx := context.Background()
	filter := domain.TransactionFilter{}
	remoteBytes := []byte("remote-xlsx")

	suite.mockRemote.On("RenderTransactionsExport", ctx, filter, domain.FormatXLSX).
		Return(remoteBytes, nil).Once()

	result, err := suite.service.ExportTransactions(ctx, filter, domain.FormatXLSX)

	suite.Require().NoError(err)
	suite.Equal(remoteBytes, result.Data)
	suite.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.ContentType)
	suite.Contains(result.Filename, "transactions_")
	suite.Contains(result.Filename, ".xlsx")

	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListAllTransactions")
	suite.mockLocal.AssertNotCalled(suite.T(), "Render")
}

func (suite *ReportingServiceTestSuite) TestExportTransactions_FallbackRendersIdenticalPayload() {
	ctx := context.Background()
	filter := domain.TransactionFilter{}
	day := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		paidTxn(1, domain.Receivable, "600.00", day),
		paidTxn(2, domain.Payable, "250.00", day),
	}

	suite.mockRemote.On("RenderTransactionsExport", ctx, filter, domain.FormatPDF).
		Return(nil, apperrors.ErrServiceUnavailable).Once()
	suite.mockTxnRepo.On("ListAllTransactions", ctx, filter).Return(txns, nil).Once()
	suite.mockLocal.On("Render", ctx, mock.AnythingOfType("domain.ReportDocument"), domain.FormatPDF).
		Return([]byte("local-pdf"), nil).Once()

	result, err := suite.service.ExportTransactions(ctx, filter, domain.FormatPDF)

	suite.Require().NoError(err)
	suite.Equal([]byte("local-pdf"), result.Data)
	suite.Equal("application/pdf", result.ContentType)

	// The locally rendered document must carry the same summary numbers the
	// remote path would have embedded for the same filter.
	suite.Require().Len(suite.mockLocal.RenderedDocs, 1)
	doc := suite.mockLocal.RenderedDocs[0]
	suite.Equal(services.TransactionSummaryLines(aggregation.Summarize(txns)), doc.Summary)
	suite.Len(doc.Rows, 2)

	suite.mockRemote.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockLocal.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestExportTransactions_BothPathsDown() {
	ctx := context.Background()
	filter := domain.TransactionFilter{}

	suite.mockRemote.On("RenderTransactionsExport", ctx, filter, domain.FormatXLSX).
		Return(nil, apperrors.ErrServiceUnavailable).Once()
	suite.mockTxnRepo.On("ListAllTransactions", ctx, filter).
		Return([]domain.Transaction{}, nil).Once()
	suite.mockLocal.On("Render", ctx, mock.AnythingOfType("domain.ReportDocument"), domain.FormatXLSX).
		Return(nil, errors.New("render crashed")).Once()

	result, err := suite.service.ExportTransactions(ctx, filter, domain.FormatXLSX)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrRenderingFailed)
}

func (suite *ReportingServiceTestSuite) TestExportTransactions_NonUnavailableErrorSkipsFallback() {
	ctx := context.Background()
	filter := domain.TransactionFilter{}
	remoteErr := errors.New("bad request rejected by render service")

	suite.mockRemote.On("RenderTransactionsExport", ctx, filter, domain.FormatXLSX).
		Return(nil, remoteErr).Once()

	result, err := suite.service.ExportTransactions(ctx, filter, domain.FormatXLSX)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, remoteErr)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListAllTransactions")
	suite.mockLocal.AssertNotCalled(suite.T(), "Render")
}

func (suite *ReportingServiceTestSuite) TestExportCommissions_FallbackUsesCommissionLedger() {
	ctx := context.Background()
	filter := domain.CommissionFilter{}
	commissions := []domain.Commission{
		{CommissionID: 1, ContractID: 10, AgentID: 20, Percentage: decimal.RequireFromString("5"), Value: decimal.RequireFromString("25000"), Status: domain.CommissionPaid},
		{CommissionID: 2, ContractID: 11, AgentID: 20, Percentage: decimal.RequireFromString("6"), Value: decimal.RequireFromString("30000"), Status: domain.CommissionCancelled},
	}

	suite.mockRemote.On("RenderCommissionsExport", ctx, filter, domain.FormatXLSX).
		Return(nil, apperrors.ErrServiceUnavailable).Once()
	suite.mockCommRepo.On("ListAllCommissions", ctx, filter).Return(commissions, nil).Once()
	suite.mockLocal.On("Render", ctx, mock.AnythingOfType("domain.ReportDocument"), domain.FormatXLSX).
		Return([]byte("local-xlsx"), nil).Once()

	result, err := suite.service.ExportCommissions(ctx, filter, domain.FormatXLSX)

	suite.Require().NoError(err)
	suite.Equal([]byte("local-xlsx"), result.Data)
	suite.Contains(result.Filename, "commissions_")

	// Cancelled commissions are excluded from the value totals.
	suite.Require().Len(suite.mockLocal.RenderedDocs, 1)
	doc := suite.mockLocal.RenderedDocs[0]
	suite.Equal([]domain.SummaryLine{
		{Label: "Commission count", Value: "2"},
		{Label: "Total value", Value: "25000.00"},
		{Label: "Total paid", Value: "25000.00"},
	}, doc.Summary)
}

func (suite *ReportingServiceTestSuite) TestFinancialReport_Success() {
	ctx := context.Background()
	day := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		paidTxn(1, domain.Receivable, "1500.00", day),
	}

	suite.mockTxnRepo.On("ListAllTransactions", ctx, mock.AnythingOfType("domain.TransactionFilter")).
		Return(txns, nil).Once()

	report, err := suite.service.FinancialReport(ctx, dto.FinancialReportParams{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
		Type:      "RECEIVABLE",
	})

	suite.Require().NoError(err)
	suite.Equal("1500.00", report.Summary.TotalReceived.StringFixed(2))
	suite.Len(report.LineItems, 1)

	// The window and type land in the repository filter as given.
	filterArg := suite.mockTxnRepo.Calls[0].Arguments.Get(1).(domain.TransactionFilter)
	suite.Require().NotNil(filterArg.DueDateFrom)
	suite.Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), *filterArg.DueDateFrom)
	suite.Require().NotNil(filterArg.Type)
	suite.Equal(domain.Receivable, *filterArg.Type)
}

func (suite *ReportingServiceTestSuite) TestFinancialReport_InvertedWindow() {
	ctx := context.Background()

	report, err := suite.service.FinancialReport(ctx, dto.FinancialReportParams{
		StartDate: "2026-03-31",
		EndDate:   "2026-03-01",
	})

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListAllTransactions")
}

func (suite *ReportingServiceTestSuite) TestCashFlow_FiltersToPaidInWindow() {
	ctx := context.Background()
	start := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC)
	day := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		paidTxn(1, domain.Receivable, "600.00", day),
		paidTxn(2, domain.Payable, "250.00", day),
	}

	suite.mockTxnRepo.On("ListAllTransactions", ctx, mock.AnythingOfType("domain.TransactionFilter")).
		Return(txns, nil).Once()

	entries, err := suite.service.CashFlow(ctx, start, end)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("350.00", entries[0].Balance.StringFixed(2))

	filterArg := suite.mockTxnRepo.Calls[0].Arguments.Get(1).(domain.TransactionFilter)
	suite.Require().NotNil(filterArg.Status)
	suite.Equal(domain.TransactionPaid, *filterArg.Status)
	suite.Require().NotNil(filterArg.PaidFrom)
	suite.Equal(start, *filterArg.PaidFrom)
	suite.Require().NotNil(filterArg.PaidTo)
	suite.Equal(end, *filterArg.PaidTo)
}

func (suite *ReportingServiceTestSuite) TestCashFlow_InvertedWindow() {
	ctx := context.Background()
	start := time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	entries, err := suite.service.CashFlow(ctx, start, end)

	suite.Require().Error(err)
	suite.Nil(entries)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestTransactionReceipt_Success() {
	ctx := context.Background()
	day := time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC)
	txn := paidTxn(5, domain.Receivable, "1500.00", day)
	txn.ReceiptRef = "RCPT-1"

	suite.mockTxnRepo.On("FindTransactionByID", ctx, int64(5)).Return(&txn, nil).Once()
	suite.mockLocal.On("Render", ctx, mock.AnythingOfType("domain.ReportDocument"), domain.FormatPDF).
		Return([]byte("receipt-pdf"), nil).Once()

	result, err := suite.service.TransactionReceipt(ctx, 5)

	suite.Require().NoError(err)
	suite.Equal("application/pdf", result.ContentType)
	suite.Equal("receipt_5.pdf", result.Filename)

	suite.Require().Len(suite.mockLocal.RenderedDocs, 1)
	suite.Equal("Payment Receipt", suite.mockLocal.RenderedDocs[0].Title)
}

func (suite *ReportingServiceTestSuite) TestTransactionReceipt_UnpaidTransaction() {
	ctx := context.Background()
	pending := &domain.Transaction{TransactionID: 5, Status: domain.TransactionPending}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, int64(5)).Return(pending, nil).Once()

	result, err := suite.service.TransactionReceipt(ctx, 5)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLocal.AssertNotCalled(suite.T(), "Render")
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
