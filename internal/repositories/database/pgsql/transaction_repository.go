package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/realtyfin/realty_ledger_app/internal/apperrors"
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	portsrepo "github.com/realtyfin/realty_ledger_app/internal/core/ports/repositories"
	"github.com/realtyfin/realty_ledger_app/internal/models"
	"github.com/realtyfin/realty_ledger_app/internal/utils/mapping"
)

const transactionColumns = `transaction_id, txn_type, category_id, amount, status, description,
	due_date, payment_date, person_id, contract_id, property_id, bank_account_id,
	payment_type_id, notes, receipt_ref, created_at, last_updated_at`

// transactionSortColumns whitelists sort keys accepted from the API.
var transactionSortColumns = map[string]string{
	"id":           "transaction_id",
	"amount":       "amount",
	"due_date":     "due_date",
	"payment_date": "payment_date",
	"created_at":   "created_at",
}

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TxnType,
		&m.CategoryID,
		&m.Amount,
		&m.Status,
		&m.Description,
		&m.DueDate,
		&m.PaymentDate,
		&m.PersonID,
		&m.ContractID,
		&m.PropertyID,
		&m.BankAccountID,
		&m.PaymentTypeID,
		&m.Notes,
		&m.ReceiptRef,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveTransaction inserts a new transaction row and returns it with the
// generated identifier.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (
			txn_type, category_id, amount, status, description, due_date, payment_date,
			person_id, contract_id, property_id, bank_account_id, payment_type_id,
			notes, receipt_ref, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING transaction_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.TxnType,
		m.CategoryID,
		m.Amount,
		m.Status,
		m.Description,
		m.DueDate,
		m.PaymentDate,
		m.PersonID,
		m.ContractID,
		m.PropertyID,
		m.BankAccountID,
		m.PaymentTypeID,
		m.Notes,
		m.ReceiptRef,
		m.CreatedAt,
		m.LastUpdatedAt,
	).Scan(&m.TransactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert transaction", err)
	}

	saved := mapping.ToDomainTransaction(m)
	return &saved, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE transaction_id = $1;`, transactionColumns)
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find transaction %d", transactionID), err)
	}
	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// buildTransactionWhere translates the filter into a WHERE clause and its
// positional arguments.
func buildTransactionWhere(filter domain.TransactionFilter) (string, []interface{}) {
	clauses := make([]string, 0, 8)
	args := make([]interface{}, 0, 8)

	add := func(clause string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Type != nil {
		add("txn_type = $%d", string(*filter.Type))
	}
	if filter.Status != nil {
		add("status = $%d", string(*filter.Status))
	}
	if filter.CategoryID != nil {
		add("category_id = $%d", *filter.CategoryID)
	}
	if filter.PersonID != nil {
		add("person_id = $%d", *filter.PersonID)
	}
	if filter.ContractID != nil {
		add("contract_id = $%d", *filter.ContractID)
	}
	if filter.PropertyID != nil {
		add("property_id = $%d", *filter.PropertyID)
	}
	if filter.DueDateFrom != nil {
		add("due_date >= $%d", *filter.DueDateFrom)
	}
	if filter.DueDateTo != nil {
		add("due_date <= $%d", *filter.DueDateTo)
	}
	if filter.PaidFrom != nil {
		add("payment_date >= $%d", *filter.PaidFrom)
	}
	if filter.PaidTo != nil {
		add("payment_date <= $%d", *filter.PaidTo)
	}
	if filter.Description != "" {
		add("description ILIKE $%d", "%"+filter.Description+"%")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func transactionOrderBy(filter domain.TransactionFilter) string {
	column, ok := transactionSortColumns[filter.SortBy]
	if !ok {
		column = "due_date"
	}
	direction := "ASC"
	if filter.SortDirection == domain.SortDesc {
		direction = "DESC"
	}
	// transaction_id tiebreak keeps page ordering deterministic.
	return fmt.Sprintf(" ORDER BY %s %s, transaction_id ASC", column, direction)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args []interface{}) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate transaction rows", err)
	}
	return txns, nil
}

// ListTransactions returns one page matching the filter plus the total row count.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int64, error) {
	where, args := buildTransactionWhere(filter)

	var total int64
	countQuery := "SELECT COUNT(*) FROM transactions" + where
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count transactions", err)
	}

	limit := filter.PerPage
	offset := (filter.Page - 1) * filter.PerPage
	pageArgs := append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM transactions%s%s LIMIT $%d OFFSET $%d",
		transactionColumns, where, transactionOrderBy(filter), len(args)+1, len(args)+2)

	txns, err := r.queryTransactions(ctx, query, pageArgs)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// ListAllTransactions returns every row matching the filter, ordered by id.
// Aggregation and export paths need the full set, not a page.
func (r *PgxTransactionRepository) ListAllTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	where, args := buildTransactionWhere(filter)
	query := fmt.Sprintf("SELECT %s FROM transactions%s ORDER BY transaction_id ASC", transactionColumns, where)
	return r.queryTransactions(ctx, query, args)
}

// lockTransaction fetches a row FOR UPDATE inside tx so the status
// read-check-write is atomic per record.
func (r *PgxTransactionRepository) lockTransaction(ctx context.Context, tx pgx.Tx, transactionID int64) (*models.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, transactionColumns)
	m, err := scanTransaction(tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to lock transaction %d", transactionID), err)
	}
	return m, nil
}

// UpdateTransaction rewrites the mutable fields of a pending transaction.
// The pending check runs under the row lock: concurrent settlement wins and
// this update observes the transition error.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.lockTransaction(ctx, tx, txn.TransactionID)
	if err != nil {
		return nil, err
	}
	if domain.TransactionStatus(current.Status) != domain.TransactionPending {
		return nil, fmt.Errorf("%w: transaction %d is %s", apperrors.ErrInvalidStateTransition, txn.TransactionID, current.Status)
	}

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET category_id = $2, amount = $3, description = $4, due_date = $5,
		    person_id = $6, contract_id = $7, property_id = $8, bank_account_id = $9,
		    payment_type_id = $10, notes = $11, last_updated_at = $12
		WHERE transaction_id = $1;
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.CategoryID,
		m.Amount,
		m.Description,
		m.DueDate,
		m.PersonID,
		m.ContractID,
		m.PropertyID,
		m.BankAccountID,
		m.PaymentTypeID,
		m.Notes,
		m.LastUpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to update transaction %d", txn.TransactionID), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// MarkTransactionPaid settles a pending transaction atomically: the row is
// locked, the status re-checked, and the terminal write committed in one
// database transaction. Exactly one of two concurrent settlements wins.
func (r *PgxTransactionRepository) MarkTransactionPaid(ctx context.Context, transactionID int64, paymentDate time.Time, notes string, receiptRef string, now time.Time) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.lockTransaction(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	status := domain.TransactionStatus(current.Status)
	if !status.CanTransitionTo(domain.TransactionPaid) {
		return nil, fmt.Errorf("%w: cannot mark %s transaction %d as paid", apperrors.ErrInvalidStateTransition, status, transactionID)
	}

	query := `
		UPDATE transactions
		SET status = $2, payment_date = $3, notes = COALESCE(NULLIF($4, ''), notes),
		    receipt_ref = $5, last_updated_at = $6
		WHERE transaction_id = $1;
	`
	_, err = tx.Exec(ctx, query, transactionID, string(domain.TransactionPaid), paymentDate, notes, receiptRef, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to mark transaction %d paid", transactionID), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	updated := mapping.ToDomainTransaction(*current)
	updated.Status = domain.TransactionPaid
	updated.PaymentDate = &paymentDate
	if notes != "" {
		updated.Notes = notes
	}
	updated.ReceiptRef = receiptRef
	updated.LastUpdatedAt = now
	return &updated, nil
}

// CancelTransaction cancels a pending transaction atomically. A cancelled
// record keeps a null payment_date.
func (r *PgxTransactionRepository) CancelTransaction(ctx context.Context, transactionID int64, notes string, now time.Time) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.lockTransaction(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	status := domain.TransactionStatus(current.Status)
	if !status.CanTransitionTo(domain.TransactionCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel %s transaction %d", apperrors.ErrInvalidStateTransition, status, transactionID)
	}

	query := `
		UPDATE transactions
		SET status = $2, notes = COALESCE(NULLIF($3, ''), notes), last_updated_at = $4
		WHERE transaction_id = $1;
	`
	_, err = tx.Exec(ctx, query, transactionID, string(domain.TransactionCancelled), notes, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to cancel transaction %d", transactionID), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	updated := mapping.ToDomainTransaction(*current)
	updated.Status = domain.TransactionCancelled
	if notes != "" {
		updated.Notes = notes
	}
	updated.LastUpdatedAt = now
	return &updated, nil
}

// DeleteTransaction hard-deletes a pending transaction. Settled or cancelled
// history must not disappear, so any other status is a conflict.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.lockTransaction(ctx, tx, transactionID)
	if err != nil {
		return err
	}
	if domain.TransactionStatus(current.Status) != domain.TransactionPending {
		return fmt.Errorf("%w: %s transaction %d cannot be deleted", apperrors.ErrConflict, current.Status, transactionID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete transaction %d", transactionID), err)
	}

	return r.Commit(ctx, tx)
}
