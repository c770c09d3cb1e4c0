package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/realtyfin/realty_ledger_app/internal/apperrors"
	"github.com/realtyfin/realty_ledger_app/internal/core/aggregation"
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	portsrepo "github.com/realtyfin/realty_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
	"github.com/realtyfin/realty_ledger_app/internal/middleware"
)

// reportingService is the reporting gateway. Exports try the external
// render service first and fall back, exactly once, to recomputing the
// identical payload locally.
type reportingService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	commissionRepo  portsrepo.CommissionRepositoryFacade
	remoteRender    portssvc.RemoteRenderSvc
	localRender     portssvc.ReportRenderer
}

// NewReportingService creates the reporting gateway.
func NewReportingService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	commissionRepo portsrepo.CommissionRepositoryFacade,
	remoteRender portssvc.RemoteRenderSvc,
	localRender portssvc.ReportRenderer,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		transactionRepo: transactionRepo,
		commissionRepo:  commissionRepo,
		remoteRender:    remoteRender,
		localRender:     localRender,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func contentTypeFor(format domain.DocumentFormat) string {
	if format == domain.FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func exportFilename(prefix string, format domain.DocumentFormat, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, at.Format("20060102"), format)
}

// ExportTransactions renders the filtered transaction ledger as a binary
// document via the dual-path protocol.
func (s *reportingService) ExportTransactions(ctx context.Context, filter domain.TransactionFilter, format domain.DocumentFormat) (*portssvc.ExportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	data, err := s.remoteRender.RenderTransactionsExport(ctx, filter, format)
	if err == nil {
		return &portssvc.ExportResult{
			Data:        data,
			ContentType: contentTypeFor(format),
			Filename:    exportFilename("transactions", format, now),
		}, nil
	}
	if !errors.Is(err, apperrors.ErrServiceUnavailable) {
		return nil, err
	}
	logger.Warn("Remote render service unavailable, falling back to local rendering", slog.String("error", err.Error()))

	txns, err := s.transactionRepo.ListAllTransactions(ctx, filter)
	if err != nil {
		logger.Error("Failed to fetch transactions for local export", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions for export: %w", err)
	}

	doc := AssembleTransactionsReport(txns, now)
	data, err = s.localRender.Render(ctx, doc, format)
	if err != nil {
		logger.Error("Local rendering failed after remote failure", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRenderingFailed, err)
	}

	logger.Info("Export rendered locally", slog.String("format", string(format)), slog.Int("row_count", len(doc.Rows)))
	return &portssvc.ExportResult{
		Data:        data,
		ContentType: contentTypeFor(format),
		Filename:    exportFilename("transactions", format, now),
	}, nil
}

// ExportCommissions renders the filtered commission ledger as a binary
// document via the dual-path protocol.
func (s *reportingService) ExportCommissions(ctx context.Context, filter domain.CommissionFilter, format domain.DocumentFormat) (*portssvc.ExportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	data, err := s.remoteRender.RenderCommissionsExport(ctx, filter, format)
	if err == nil {
		return &portssvc.ExportResult{
			Data:        data,
			ContentType: contentTypeFor(format),
			Filename:    exportFilename("commissions", format, now),
		}, nil
	}
	if !errors.Is(err, apperrors.ErrServiceUnavailable) {
		return nil, err
	}
	logger.Warn("Remote render service unavailable, falling back to local rendering", slog.String("error", err.Error()))

	commissions, err := s.commissionRepo.ListAllCommissions(ctx, filter)
	if err != nil {
		logger.Error("Failed to fetch commissions for local export", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve commissions for export: %w", err)
	}

	doc := AssembleCommissionsReport(commissions, now)
	data, err = s.localRender.Render(ctx, doc, format)
	if err != nil {
		logger.Error("Local rendering failed after remote failure", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRenderingFailed, err)
	}

	logger.Info("Export rendered locally", slog.String("format", string(format)), slog.Int("row_count", len(doc.Rows)))
	return &portssvc.ExportResult{
		Data:        data,
		ContentType: contentTypeFor(format),
		Filename:    exportFilename("commissions", format, now),
	}, nil
}

// FinancialReport assembles the summary plus line items for a due-date
// window, always recomputed from the ledger.
func (s *reportingService) FinancialReport(ctx context.Context, params dto.FinancialReportParams) (*dto.FinancialReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	start, err := dto.ParseDate(params.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be a valid %s date", apperrors.ErrValidation, dto.DateFormat)
	}
	end, err := dto.ParseDate(params.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date must be a valid %s date", apperrors.ErrValidation, dto.DateFormat)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date precedes start_date", apperrors.ErrValidation)
	}

	filter := domain.TransactionFilter{
		DueDateFrom: &start,
		DueDateTo:   &end,
		CategoryID:  params.CategoryID,
		PersonID:    params.PersonID,
	}
	if params.Type != "" {
		t := domain.TransactionType(params.Type)
		filter.Type = &t
	}

	txns, err := s.transactionRepo.ListAllTransactions(ctx, filter)
	if err != nil {
		logger.Error("Failed to fetch transactions for financial report", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions for report: %w", err)
	}

	resp := &dto.FinancialReportResponse{
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Summary:   aggregation.Summarize(txns),
		LineItems: dto.ToTransactionResponses(txns),
	}

	logger.Info("Financial report generated", slog.Int("line_items", len(txns)))
	return resp, nil
}

// CashFlow returns the per-day income/expense series for paid transactions
// in the window, with the running balance seeded from zero.
func (s *reportingService) CashFlow(ctx context.Context, start, end time.Time) ([]domain.CashFlowEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date precedes start_date", apperrors.ErrValidation)
	}

	paid := domain.TransactionPaid
	filter := domain.TransactionFilter{
		Status:   &paid,
		PaidFrom: &start,
		PaidTo:   &end,
	}
	txns, err := s.transactionRepo.ListAllTransactions(ctx, filter)
	if err != nil {
		logger.Error("Failed to fetch transactions for cash flow", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions for cash flow: %w", err)
	}

	entries := aggregation.CashFlow(txns, start, end, decimal.Zero)
	logger.Debug("Cash flow computed", slog.Int("entry_count", len(entries)))
	return entries, nil
}

// TransactionReceipt renders a PDF receipt for a single paid transaction.
func (s *reportingService) TransactionReceipt(ctx context.Context, transactionID int64) (*portssvc.ExportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.TransactionPaid || txn.PaymentDate == nil {
		return nil, fmt.Errorf("%w: transaction %d is not paid; no receipt exists", apperrors.ErrValidation, transactionID)
	}

	now := time.Now().UTC()
	doc := AssembleReceipt(txn, now)
	data, err := s.localRender.Render(ctx, doc, domain.FormatPDF)
	if err != nil {
		logger.Error("Failed to render receipt", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRenderingFailed, err)
	}

	return &portssvc.ExportResult{
		Data:        data,
		ContentType: "application/pdf",
		Filename:    fmt.Sprintf("receipt_%d.pdf", transactionID),
	}, nil
}
