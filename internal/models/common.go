// Package models holds the persistence-layer row representations. Repositories
// convert between these and the core domain types so that database concerns
// (nullable columns, enum storage) never leak into services.
package models

import "time"

// AuditFields mirrors the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time
	CreatedBy     string
	LastUpdatedAt time.Time
	LastUpdatedBy string
}
