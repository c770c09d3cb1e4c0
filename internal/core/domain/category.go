package domain

// CategoryType scopes a category to one side of the ledger.
type CategoryType string

const (
	CategoryReceivable CategoryType = "RECEIVABLE"
	CategoryPayable    CategoryType = "PAYABLE"
)

// Category is a user-defined label partitioning transactions by purpose.
// System categories (rent, sale, commission, maintenance, tax, other) are
// seeded by migration and excluded from user-facing management.
type Category struct {
	CategoryID int64        `json:"categoryID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	IsSystem   bool         `json:"isSystem"`
	AuditFields
}
