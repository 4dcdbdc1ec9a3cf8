package domain

import "time"

// AuditEntry records an authorized action. Entries are append-only and
// written best-effort: losing one never fails the governed operation.
type AuditEntry struct {
	ID           string
	Action       string
	UserID       string
	UserEmail    string
	UserRole     Role
	ResourceType string
	ResourceID   string
	Details      map[string]any
	IPAddress    string
	Timestamp    time.Time
}
