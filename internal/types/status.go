package types

// Status is a type for the lifecycle status of a row in the database.
// Rows are soft-deleted by flipping this to StatusDeleted; tenant-scoped
// queries exclude deleted rows.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)
