package models

import "time"

// AuditFields mirrors the shared audit columns of the portal tables.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	CreatedBy *string   `db:"created_by"`
	UpdatedAt time.Time `db:"updated_at"`
	UpdatedBy *string   `db:"updated_by"`
}
