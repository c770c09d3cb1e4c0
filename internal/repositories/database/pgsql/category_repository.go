package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/realtyfin/realty_ledger_app/internal/apperrors"
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	portsrepo "github.com/realtyfin/realty_ledger_app/internal/core/ports/repositories"
	"github.com/realtyfin/realty_ledger_app/internal/models"
	"github.com/realtyfin/realty_ledger_app/internal/utils/mapping"
)

const categoryColumns = `category_id, name, cat_type, is_system, created_at, last_updated_at`

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (*models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&m.CatType,
		&m.IsSystem,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveCategory inserts a new category. A name already taken within the same
// type scope surfaces as ErrDuplicate.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO transaction_categories (name, cat_type, is_system, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING category_id;
	`
	err := r.Pool.QueryRow(ctx, query, m.Name, m.CatType, m.IsSystem, m.CreatedAt, m.LastUpdatedAt).Scan(&m.CategoryID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category %q already exists for type %s", apperrors.ErrDuplicate, m.Name, m.CatType)
		}
		return nil, apperrors.NewAppError(500, "failed to insert category", err)
	}

	saved := mapping.ToDomainCategory(m)
	return &saved, nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM transaction_categories WHERE category_id = $1;`, categoryColumns)
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find category %d", categoryID), err)
	}
	category := mapping.ToDomainCategory(*m)
	return &category, nil
}

// ListCategories returns categories ordered by name, optionally scoped to a
// type and optionally excluding protected system rows.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, categoryType *domain.CategoryType, manageableOnly bool) ([]domain.Category, error) {
	query := fmt.Sprintf("SELECT %s FROM transaction_categories", categoryColumns)
	args := make([]interface{}, 0, 1)
	clauses := make([]string, 0, 2)

	if categoryType != nil {
		args = append(args, string(*categoryType))
		clauses = append(clauses, fmt.Sprintf("cat_type = $%d", len(args)))
	}
	if manageableOnly {
		clauses = append(clauses, "is_system = FALSE")
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY name ASC, category_id ASC"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, mapping.ToDomainCategory(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate category rows", err)
	}
	return categories, nil
}

// UpdateCategory renames or re-scopes a category. The system flag is immutable.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE transaction_categories
		SET name = $2, cat_type = $3, last_updated_at = $4
		WHERE category_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.CategoryID, m.Name, m.CatType, m.LastUpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category %q already exists for type %s", apperrors.ErrDuplicate, m.Name, m.CatType)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to update category %d", category.CategoryID), err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &category, nil
}

// DeleteCategory removes a category. System rows and rows still referenced by
// transactions are protected; the reference check and the delete run inside
// one database transaction so a concurrent insert cannot orphan a reference.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := fmt.Sprintf(`SELECT %s FROM transaction_categories WHERE category_id = $1 FOR UPDATE;`, categoryColumns)
	m, err := scanCategory(tx.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, fmt.Sprintf("failed to lock category %d", categoryID), err)
	}
	if m.IsSystem {
		return fmt.Errorf("%w: category %q is a protected system category", apperrors.ErrConflict, m.Name)
	}

	var refs int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE category_id = $1;`, categoryID).Scan(&refs); err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to count references to category %d", categoryID), err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: category %q is referenced by %d transaction(s)", apperrors.ErrConflict, m.Name, refs)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transaction_categories WHERE category_id = $1;`, categoryID); err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete category %d", categoryID), err)
	}

	return r.Commit(ctx, tx)
}
