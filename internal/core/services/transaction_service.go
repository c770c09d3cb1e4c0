package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/realtyfin/realty_ledger_app/internal/apperrors"
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	portsrepo "github.com/realtyfin/realty_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
	"github.com/realtyfin/realty_ledger_app/internal/middleware"
	"github.com/realtyfin/realty_ledger_app/internal/utils/money"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// transactionService provides the transaction ledger operations.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	categoryRepo    portsrepo.CategoryRepositoryFacade
}

// NewTransactionService creates a new transaction ledger service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateCategory checks that the referenced category exists and is scoped
// to the transaction's side of the ledger.
func (s *transactionService) validateCategory(ctx context.Context, categoryID int64, txnType domain.TransactionType) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %d does not exist", apperrors.ErrValidation, categoryID)
		}
		return fmt.Errorf("failed to fetch category %d: %w", categoryID, err)
	}
	if string(category.Type) != string(txnType) {
		return fmt.Errorf("%w: category %q is not applicable to %s transactions", apperrors.ErrValidation, category.Name, txnType)
	}
	return nil
}

// CreateTransaction creates a new pending transaction after validation.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	dueDate, err := dto.ParseDate(req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: dueDate must be a valid %s date", apperrors.ErrValidation, dto.DateFormat)
	}
	txnType := domain.TransactionType(req.Type)
	if err := s.validateCategory(ctx, req.CategoryID, txnType); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		Type:          txnType,
		CategoryID:    req.CategoryID,
		Amount:        money.RoundCurrency(req.Amount),
		Status:        domain.TransactionPending,
		Description:   req.Description,
		DueDate:       dueDate,
		PersonID:      req.PersonID,
		ContractID:    req.ContractID,
		PropertyID:    req.PropertyID,
		BankAccountID: req.BankAccountID,
		PaymentTypeID: req.PaymentTypeID,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.transactionRepo.SaveTransaction(ctx, txn)
	if err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created", slog.Int64("transaction_id", saved.TransactionID), slog.String("type", string(saved.Type)))
	return saved, nil
}

// GetTransactionByID retrieves a single transaction.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find transaction", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions retrieves one deterministically ordered page of
// transactions matching the filter.
func (s *transactionService) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = defaultPageSize
	}
	if filter.PerPage > maxPageSize {
		filter.PerPage = maxPageSize
	}

	txns, total, err := s.transactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	logger.Debug("Transactions listed", slog.Int("count", len(txns)), slog.Int64("total", total))
	return txns, total, nil
}

// UpdateTransaction applies field updates to a pending transaction. Amount,
// dates and links of a settled or cancelled record are immutable.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.IsMutable() {
		return nil, fmt.Errorf("%w: transaction %d is %s and cannot be updated", apperrors.ErrInvalidStateTransition, transactionID, txn.Status)
	}

	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		txn.Amount = money.RoundCurrency(*req.Amount)
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, *req.CategoryID, txn.Type); err != nil {
			return nil, err
		}
		txn.CategoryID = *req.CategoryID
	}
	if req.DueDate != nil {
		dueDate, err := dto.ParseDate(*req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: dueDate must be a valid %s date", apperrors.ErrValidation, dto.DateFormat)
		}
		txn.DueDate = dueDate
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	if req.PersonID != nil {
		txn.PersonID = req.PersonID
	}
	if req.ContractID != nil {
		txn.ContractID = req.ContractID
	}
	if req.PropertyID != nil {
		txn.PropertyID = req.PropertyID
	}
	if req.BankAccountID != nil {
		txn.BankAccountID = req.BankAccountID
	}
	if req.PaymentTypeID != nil {
		txn.PaymentTypeID = req.PaymentTypeID
	}
	txn.LastUpdatedAt = time.Now().UTC()

	updated, err := s.transactionRepo.UpdateTransaction(ctx, *txn)
	if err != nil {
		logger.Error("Failed to update transaction", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction updated", slog.Int64("transaction_id", transactionID))
	return updated, nil
}

// MarkTransactionAsPaid settles a pending transaction. The payment date
// defaults to today when omitted; a receipt reference is generated when the
// caller does not supply one.
func (s *transactionService) MarkTransactionAsPaid(ctx context.Context, transactionID int64, req dto.MarkTransactionPaidRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	paymentDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.PaymentDate != nil {
		parsed, err := dto.ParseDate(*req.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: paymentDate must be a valid %s date", apperrors.ErrValidation, dto.DateFormat)
		}
		paymentDate = parsed
	}

	receiptRef := req.ReceiptRef
	if receiptRef == "" {
		receiptRef = uuid.NewString()
	}

	txn, err := s.transactionRepo.MarkTransactionPaid(ctx, transactionID, paymentDate, req.Notes, receiptRef, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidStateTransition) {
			logger.Warn("Rejected markAsPaid on non-pending transaction", slog.Int64("transaction_id", transactionID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to mark transaction paid", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Transaction marked as paid", slog.Int64("transaction_id", transactionID), slog.String("payment_date", paymentDate.Format(dto.DateFormat)))
	return txn, nil
}

// CancelTransaction cancels a pending transaction. Cancelling an already
// terminal record fails loudly; double-submission must not be masked.
func (s *transactionService) CancelTransaction(ctx context.Context, transactionID int64, req dto.CancelTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.CancelTransaction(ctx, transactionID, req.Notes, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidStateTransition) {
			logger.Warn("Rejected cancel on non-pending transaction", slog.Int64("transaction_id", transactionID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to cancel transaction", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Transaction cancelled", slog.Int64("transaction_id", transactionID))
	return txn, nil
}

// DeleteTransaction hard-deletes a pending transaction. Settled or cancelled
// history must not disappear, so anything else is a conflict.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Rejected delete of settled transaction", slog.Int64("transaction_id", transactionID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete transaction", slog.Int64("transaction_id", transactionID), slog.String("error", err.Error()))
		}
		return err
	}

	logger.Info("Transaction deleted", slog.Int64("transaction_id", transactionID))
	return nil
}
