package dto

import (
	"time"

	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
)

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Type string `json:"type" binding:"required,oneof=RECEIVABLE PAYABLE"`
}

// UpdateCategoryRequest defines the payload for renaming/re-scoping a
// user-managed category.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Type *string `json:"type,omitempty" binding:"omitempty,oneof=RECEIVABLE PAYABLE"`
}

// ListCategoriesParams binds the category list query string.
type ListCategoriesParams struct {
	Type           string `form:"type" binding:"omitempty,oneof=RECEIVABLE PAYABLE"`
	ManageableOnly bool   `form:"manageable_only"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID    int64     `json:"categoryID"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	IsSystem      bool      `json:"isSystem"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCategoryResponse converts a domain.Category to its response DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    c.CategoryID,
		Name:          c.Name,
		Type:          string(c.Type),
		IsSystem:      c.IsSystem,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain categories.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}
