package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/realtyfin/realty_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories against one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(pool),
		CommissionRepo:  newPgxCommissionRepository(pool),
		CategoryRepo:    newPgxCategoryRepository(pool),
	}
}
