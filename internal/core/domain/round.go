package domain

import "time"

// RoundStatus enumerates certification round lifecycle states.
type RoundStatus string

const (
	RoundStatusDraft  RoundStatus = "draft"
	RoundStatusActive RoundStatus = "active"
	RoundStatusClosed RoundStatus = "closed"
)

// RoundStatusNames lists every defined round status.
func RoundStatusNames() []string {
	return []string{string(RoundStatusDraft), string(RoundStatusActive), string(RoundStatusClosed)}
}

// CertificationRound is the time-boxed window that gates all mutating
// operations system-wide while its status is active.
type CertificationRound struct {
	ID        string
	Name      string
	Status    RoundStatus
	StartDate time.Time
	DueDate   time.Time
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
