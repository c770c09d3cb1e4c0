package services

import (
	"context"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
)

// TransactionSvcFacade defines the transaction ledger operations exposed to
// handlers. Status transitions are atomic per record and never idempotent:
// re-settling or re-cancelling a terminal record fails with
// apperrors.ErrInvalidStateTransition.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int64, error)
	UpdateTransaction(ctx context.Context, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	MarkTransactionAsPaid(ctx context.Context, transactionID int64, req dto.MarkTransactionPaidRequest) (*domain.Transaction, error)
	CancelTransaction(ctx context.Context, transactionID int64, req dto.CancelTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID int64) error
}
