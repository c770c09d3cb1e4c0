package services

import (
	"context"
	"time"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
)

// ExportResult is a rendered binary document plus its download metadata.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ReportingSvcFacade is the reporting gateway. Exports follow the dual-path
// protocol: delegate to the external render service first; on
// ErrServiceUnavailable recompute the identical payload locally and render
// it with the local renderer, exactly once.
type ReportingSvcFacade interface {
	ExportTransactions(ctx context.Context, filter domain.TransactionFilter, format domain.DocumentFormat) (*ExportResult, error)
	ExportCommissions(ctx context.Context, filter domain.CommissionFilter, format domain.DocumentFormat) (*ExportResult, error)
	FinancialReport(ctx context.Context, params dto.FinancialReportParams) (*dto.FinancialReportResponse, error)
	CashFlow(ctx context.Context, start, end time.Time) ([]domain.CashFlowEntry, error)
	TransactionReceipt(ctx context.Context, transactionID int64) (*ExportResult, error)
}

// ReportRenderer renders an assembled report payload into a binary document.
// Implementations exist for spreadsheet and PDF output.
type ReportRenderer interface {
	Render(ctx context.Context, doc domain.ReportDocument, format domain.DocumentFormat) ([]byte, error)
}

// RemoteRenderSvc is the client for the external document-generation
// service. Any transport failure, timeout or non-success response surfaces
// as apperrors.ErrServiceUnavailable so the gateway can fall back.
type RemoteRenderSvc interface {
	RenderTransactionsExport(ctx context.Context, filter domain.TransactionFilter, format domain.DocumentFormat) ([]byte, error)
	RenderCommissionsExport(ctx context.Context, filter domain.CommissionFilter, format domain.DocumentFormat) ([]byte, error)
}
