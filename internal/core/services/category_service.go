package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/realtyfin/realty_ledger_app/internal/apperrors"
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	portsrepo "github.com/realtyfin/realty_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/realtyfin/realty_ledger_app/internal/core/ports/services"
	"github.com/realtyfin/realty_ledger_app/internal/dto"
	"github.com/realtyfin/realty_ledger_app/internal/middleware"
)

// categoryService provides the category registry operations.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category registry service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory registers a new user-managed category.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	category := domain.Category{
		Name:     req.Name,
		Type:     domain.CategoryType(req.Type),
		IsSystem: false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.categoryRepo.SaveCategory(ctx, category)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate category rejected", slog.String("name", req.Name))
		} else {
			logger.Error("Failed to save category", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Category created", slog.Int64("category_id", saved.CategoryID), slog.String("name", saved.Name))
	return saved, nil
}

// GetCategoryByID retrieves a single category.
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID int64) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID)
}

// ListCategories lists categories, optionally restricted to one ledger side.
// The manageable view excludes protected system categories.
func (s *categoryService) ListCategories(ctx context.Context, categoryType *domain.CategoryType, manageableOnly bool) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, categoryType, manageableOnly)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list categories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory renames or re-scopes a user-managed category. System
// categories are protected from mutation.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID int64, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.IsSystem {
		return nil, fmt.Errorf("%w: system category %q cannot be modified", apperrors.ErrConflict, category.Name)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Type != nil {
		category.Type = domain.CategoryType(*req.Type)
	}
	category.LastUpdatedAt = time.Now().UTC()

	updated, err := s.categoryRepo.UpdateCategory(ctx, *category)
	if err != nil {
		logger.Error("Failed to update category", slog.Int64("category_id", categoryID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Category updated", slog.Int64("category_id", categoryID))
	return updated, nil
}

// DeleteCategory removes a user-managed category. A category still
// referenced by transactions, or a protected system category, is a conflict.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Rejected delete of protected or referenced category", slog.Int64("category_id", categoryID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete category", slog.Int64("category_id", categoryID), slog.String("error", err.Error()))
		}
		return err
	}

	logger.Info("Category deleted", slog.Int64("category_id", categoryID))
	return nil
}
