package auditlog

import (
	"time"

	"github.com/tagihin/tagihin/internal/types"
)

// AuditLog records a single significant action against an entity. Entries
// are append only.
type AuditLog struct {
	ID         string         `db:"id" json:"id"`
	CompanyID  string         `db:"company_id" json:"company_id"`
	UserID     string         `db:"user_id" json:"user_id,omitempty"`
	Action     string         `db:"action" json:"action"`
	EntityType string         `db:"entity_type" json:"entity_type"`
	EntityID   string         `db:"entity_id" json:"entity_id"`
	Details    types.Metadata `db:"details" json:"details,omitempty"`
	IPAddress  string         `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent  string         `db:"user_agent" json:"user_agent,omitempty"`
	RequestID  string         `db:"request_id" json:"request_id,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}
