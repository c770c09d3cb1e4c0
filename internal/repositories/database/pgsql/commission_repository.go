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

const commissionColumns = `commission_id, contract_id, agent_id, commission_type_id, percentage,
	value, status, approved_at, paid_at, payment_type_id, bank_account_id,
	notes, receipt_ref, created_at, last_updated_at`

var commissionSortColumns = map[string]string{
	"id":         "commission_id",
	"value":      "value",
	"percentage": "percentage",
	"created_at": "created_at",
}

type PgxCommissionRepository struct {
	BaseRepository
}

// newPgxCommissionRepository creates a new repository for commission data.
func newPgxCommissionRepository(pool *pgxpool.Pool) portsrepo.CommissionRepositoryFacade {
	return &PgxCommissionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CommissionRepositoryFacade = (*PgxCommissionRepository)(nil)

func scanCommission(row pgx.Row) (*models.Commission, error) {
	var m models.Commission
	err := row.Scan(
		&m.CommissionID,
		&m.ContractID,
		&m.AgentID,
		&m.CommissionTypeID,
		&m.Percentage,
		&m.Value,
		&m.Status,
		&m.ApprovedAt,
		&m.PaidAt,
		&m.PaymentTypeID,
		&m.BankAccountID,
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

// SaveCommission inserts a new commission row and returns it with the
// generated identifier.
func (r *PgxCommissionRepository) SaveCommission(ctx context.Context, commission domain.Commission) (*domain.Commission, error) {
	m := mapping.ToModelCommission(commission)
	query := `
		INSERT INTO commissions (
			contract_id, agent_id, commission_type_id, percentage, value, status,
			approved_at, paid_at, payment_type_id, bank_account_id, notes, receipt_ref,
			created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING commission_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.ContractID,
		m.AgentID,
		m.CommissionTypeID,
		m.Percentage,
		m.Value,
		m.Status,
		m.ApprovedAt,
		m.PaidAt,
		m.PaymentTypeID,
		m.BankAccountID,
		m.Notes,
		m.ReceiptRef,
		m.CreatedAt,
		m.LastUpdatedAt,
	).Scan(&m.CommissionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert commission", err)
	}

	saved := mapping.ToDomainCommission(m)
	return &saved, nil
}

// FindCommissionByID retrieves a commission by its ID.
func (r *PgxCommissionRepository) FindCommissionByID(ctx context.Context, commissionID int64) (*domain.Commission, error) {
	query := fmt.Sprintf(`SELECT %s FROM commissions WHERE commission_id = $1;`, commissionColumns)
	m, err := scanCommission(r.Pool.QueryRow(ctx, query, commissionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find commission %d", commissionID), err)
	}
	commission := mapping.ToDomainCommission(*m)
	return &commission, nil
}

func buildCommissionWhere(filter domain.CommissionFilter) (string, []interface{}) {
	clauses := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)

	add := func(clause string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Status != nil {
		add("status = $%d", string(*filter.Status))
	}
	if filter.AgentID != nil {
		add("agent_id = $%d", *filter.AgentID)
	}
	if filter.ContractID != nil {
		add("contract_id = $%d", *filter.ContractID)
	}
	if filter.CommissionTypeID != nil {
		add("commission_type_id = $%d", *filter.CommissionTypeID)
	}
	if filter.DateFrom != nil {
		add("created_at >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("created_at <= $%d", *filter.DateTo)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func commissionOrderBy(filter domain.CommissionFilter) string {
	column, ok := commissionSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if filter.SortDirection == domain.SortDesc {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, commission_id ASC", column, direction)
}

func (r *PgxCommissionRepository) queryCommissions(ctx context.Context, query string, args []interface{}) ([]domain.Commission, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query commissions", err)
	}
	defer rows.Close()

	commissions := make([]domain.Commission, 0)
	for rows.Next() {
		m, err := scanCommission(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan commission row", err)
		}
		commissions = append(commissions, mapping.ToDomainCommission(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate commission rows", err)
	}
	return commissions, nil
}

// ListCommissions returns one page matching the filter plus the total row count.
func (r *PgxCommissionRepository) ListCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, int64, error) {
	where, args := buildCommissionWhere(filter)

	var total int64
	countQuery := "SELECT COUNT(*) FROM commissions" + where
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count commissions", err)
	}

	limit := filter.PerPage
	offset := (filter.Page - 1) * filter.PerPage
	pageArgs := append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM commissions%s%s LIMIT $%d OFFSET $%d",
		commissionColumns, where, commissionOrderBy(filter), len(args)+1, len(args)+2)

	commissions, err := r.queryCommissions(ctx, query, pageArgs)
	if err != nil {
		return nil, 0, err
	}
	return commissions, total, nil
}

// ListAllCommissions returns every row matching the filter, ordered by id.
func (r *PgxCommissionRepository) ListAllCommissions(ctx context.Context, filter domain.CommissionFilter) ([]domain.Commission, error) {
	where, args := buildCommissionWhere(filter)
	query := fmt.Sprintf("SELECT %s FROM commissions%s ORDER BY commission_id ASC", commissionColumns, where)
	return r.queryCommissions(ctx, query, args)
}

func (r *PgxCommissionRepository) lockCommission(ctx context.Context, tx pgx.Tx, commissionID int64) (*models.Commission, error) {
	query := fmt.Sprintf(`SELECT %s FROM commissions WHERE commission_id = $1 FOR UPDATE;`, commissionColumns)
	m, err := scanCommission(tx.QueryRow(ctx, query, commissionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to lock commission %d", commissionID), err)
	}
	return m, nil
}

// UpdateCommission rewrites the mutable fields of a pending commission.
func (r *PgxCommissionRepository) UpdateCommission(ctx context.Context, commission domain.Commission) (*domain.Commission, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.lockCommission(ctx, tx, commission.CommissionID)
	if err != nil {
		return nil, err
	}
	if domain.CommissionStatus(current.Status) != domain.CommissionPending {
		return nil, fmt.Errorf("%w: commission %d is %s", apperrors.ErrInvalidStateTransition, commission.CommissionID, current.Status)
	}

	m := mapping.ToModelCommission(commission)
	query := `
		UPDATE commissions
		SET agent_id = $2, commission_type_id = $3, percentage = $4, value = $5,
		    notes = $6, last_updated_at = $7
		WHERE commission_id = $1;
	`
	_, err = tx.Exec(ctx, query,
		m.CommissionID,
		m.AgentID,
		m.CommissionTypeID,
		m.Percentage,
		m.Value,
		m.Notes,
		m.LastUpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to update commission %d", commission.CommissionID), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &commission, nil
}

// ApproveCommission moves a pending commission to APPROVED atomically.
func (r *PgxCommissionRepository) ApproveCommission(ctx context.Context, commissionID int64, approvedAt time.Time) (*domain.Commission, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.lockCommission(ctx, tx, commissionID)
	if err != nil {
		return nil, err
	}
	status := domain.CommissionStatus(current.Status)
	if !status.CanTransitionTo(domain.CommissionApproved) {
		return nil, fmt.Errorf("%w: cannot approve %s commission %d", apperrors.ErrInvalidStateTransition, status, commissionID)
	}

	query := `
		UPDATE commissions
		SET status = $2, approved_at = $3, last_updated_at = $3
		WHERE commission_id = $1;
	`
	if _, err := tx.Exec(ctx, query, commissionID, string(domain.CommissionApproved), approvedAt); err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to approve commission %d", commissionID), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	updated := mapping.ToDomainCommission(*current)
	updated.Status = domain.CommissionApproved
	updated.ApprovedAt = &approvedAt
	updated.LastUpdatedAt = approvedAt
	return &updated, nil
}

// PayCommission moves an approved commission to PAID atomically, recording
// the settlement details. Only one of two concurrent payments wins.
func (r *PgxCommissionRepository) PayCommission(ctx context.Context, commissionID int64, paidAt time.Time, paymentTypeID int64, bankAccountID *int64, notes string, receiptRef string) (*domain.Commission, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.lockCommission(ctx, tx, commissionID)
	if err != nil {
		return nil, err
	}
	status := domain.CommissionStatus(current.Status)
	if !status.CanTransitionTo(domain.CommissionPaid) {
		return nil, fmt.Errorf("%w: cannot pay %s commission %d", apperrors.ErrInvalidStateTransition, status, commissionID)
	}

	query := `
		UPDATE commissions
		SET status = $2, paid_at = $3, payment_type_id = $4, bank_account_id = $5,
		    notes = COALESCE(NULLIF($6, ''), notes), receipt_ref = $7, last_updated_at = $3
		WHERE commission_id = $1;
	`
	_, err = tx.Exec(ctx, query, commissionID, string(domain.CommissionPaid), paidAt, paymentTypeID, bankAccountID, notes, receiptRef)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to pay commission %d", commissionID), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	updated := mapping.ToDomainCommission(*current)
	updated.Status = domain.CommissionPaid
	updated.PaidAt = &paidAt
	updated.PaymentTypeID = &paymentTypeID
	updated.BankAccountID = bankAccountID
	if notes != "" {
		updated.Notes = notes
	}
	updated.ReceiptRef = receiptRef
	updated.LastUpdatedAt = paidAt
	return &updated, nil
}

// CancelCommission cancels a pending or approved commission atomically.
func (r *PgxCommissionRepository) CancelCommission(ctx context.Context, commissionID int64, notes string, now time.Time) (*domain.Commission, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := r.lockCommission(ctx, tx, commissionID)
	if err != nil {
		return nil, err
	}
	status := domain.CommissionStatus(current.Status)
	if !status.CanTransitionTo(domain.CommissionCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel %s commission %d", apperrors.ErrInvalidStateTransition, status, commissionID)
	}

	query := `
		UPDATE commissions
		SET status = $2, notes = COALESCE(NULLIF($3, ''), notes), last_updated_at = $4
		WHERE commission_id = $1;
	`
	if _, err := tx.Exec(ctx, query, commissionID, string(domain.CommissionCancelled), notes, now); err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to cancel commission %d", commissionID), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	updated := mapping.ToDomainCommission(*current)
	updated.Status = domain.CommissionCancelled
	if notes != "" {
		updated.Notes = notes
	}
	updated.LastUpdatedAt = now
	return &updated, nil
}
