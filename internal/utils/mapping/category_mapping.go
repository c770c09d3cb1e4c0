package mapping

import (
	"github.com/realtyfin/realty_ledger_app/internal/core/domain"
	"github.com/realtyfin/realty_ledger_app/internal/models"
)

// ToModelCategory converts a domain category to its database row shape.
func ToModelCategory(c domain.Category) models.Category {
	return models.Category{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		CatType:    string(c.Type),
		IsSystem:   c.IsSystem,
		AuditFields: models.AuditFields{
			CreatedAt:     c.CreatedAt,
			LastUpdatedAt: c.LastUpdatedAt,
		},
	}
}

// ToDomainCategory converts a database row to the domain shape.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Type:       domain.CategoryType(m.CatType),
		IsSystem:   m.IsSystem,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}
