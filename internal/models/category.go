package models

// Category is the database row shape for the transaction_categories table.
type Category struct {
	CategoryID int64  `db:"category_id"`
	Name       string `db:"name"`
	CatType    string `db:"cat_type"`
	IsSystem   bool   `db:"is_system"`
	AuditFields
}
