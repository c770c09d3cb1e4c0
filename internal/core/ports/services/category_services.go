package services

import (
	"context"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
)

// CategorySvcFacade defines the category registry operations exposed to
// handlers. Protected system categories are excluded from the manageable
// view and cannot be updated or deleted.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error)
	ListCategories(ctx context.Context, categoryType *domain.CategoryType, manageableOnly bool) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID int64, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID int64) error
}
