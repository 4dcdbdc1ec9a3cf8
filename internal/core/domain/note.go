package domain

import "time"

// NoteStatusActive is the only status assigned to newly created notes.
const NoteStatusActive = "active"

// Note is a free-form record attached to the certification workspace.
type Note struct {
	ID        string
	Title     string
	Content   string
	Status    string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
