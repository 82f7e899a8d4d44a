package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// The By references are nullable because rows seeded by migrations have no actor.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy *string   `json:"createdBy,omitempty"` // UserID reference
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy *string   `json:"updatedBy,omitempty"` // UserID reference
}
