package repositories

import (
	"context"
	"time"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

// TransactionRepositoryFacade defines persistence operations for the
// transaction ledger. Transition methods (MarkTransactionPaid,
// CancelTransaction, DeleteTransaction, UpdateTransaction) must perform the
// read-check-write of the current status atomically per record: the row is
// locked, the status re-checked under the lock, and
// apperrors.ErrInvalidStateTransition (or ErrConflict for delete) returned
// when the record is no longer in the expected state.
type TransactionRepositoryFacade interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)
	// ListTransactions returns one deterministically ordered page plus the
	// total number of rows matching the filter.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int64, error)
	// ListAllTransactions returns every row matching the filter, ignoring
	// pagination. Used by aggregation and export paths.
	ListAllTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)
	MarkTransactionPaid(ctx context.Context, transactionID int64, paymentDate time.Time, notes string, receiptRef string, now time.Time) (*domain.Transaction, error)
	CancelTransaction(ctx context.Context, transactionID int64, notes string, now time.Time) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID int64) error
}

// CommissionRepositoryFacade defines persistence operations for the
// commission ledger. The same per-record atomicity contract as the
// transaction repository applies to Approve/Pay/Cancel.
type CommissionRepositoryFacade interface {
	SaveCommission(ctx context.Context, commission domain.Commission) (*domain.Commission, error)
	FindCommissionByID(ctx context.Context, commissionID int64) (*domain.Commission, error)
	ListCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, int64, error)
	ListAllCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, error)
	UpdateCommission(ctx context.Context, commission domain.Commission) (*domain.Commission, error)
	ApproveCommission(ctx context.Context, commissionID int64, approvedAt time.Time) (*domain.Commission, error)
	PayCommission(ctx context.Context, commissionID int64, paidAt time.Time, paymentTypeID int64, bankAccountID *int64, notes string, receiptRef string) (*domain.Commission, error)
	CancelCommission(ctx context.Context, commissionID int64, notes string, now time.Time) (*domain.Commission, error)
}

// CategoryRepositoryFacade defines persistence operations for the category
// registry. DeleteCategory checks for referencing transactions inside the
// same database transaction as the delete and returns apperrors.ErrConflict
// when any exist or when the category is a protected system row.
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)
	ListCategories(ctx context.Context, categoryType *domain.CategoryType, manageableOnly bool) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
}

// RepositoryProvider bundles the concrete repositories for service wiring.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade
	CommissionRepo  CommissionRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
}
