package domain

import "time"

// ModuleRecord is a validated module payload ready for persistence.
type ModuleRecord struct {
	TitleEn       string
	DescriptionEn string
	Code          *string
	DurationHours *float64
	Level         *string
}

// CourseRecord is a validated course payload ready for persistence.
type CourseRecord struct {
	TitleEn       string
	DescriptionEn *string
	Code          *string
	ModuleID      *string
}

// RoundRecord is a validated certification-round payload.
type RoundRecord struct {
	Name      string
	Status    RoundStatus
	StartDate time.Time
	DueDate   time.Time
}

// CommentRecord is a validated comment payload.
type CommentRecord struct {
	ResourceType string
	ResourceID   string
	Text         string
}

// UserRecord is a validated user-profile payload.
type UserRecord struct {
	Email       string
	DisplayName string
	Role        Role
	Active      bool
}

// NoteRecord is a validated note payload.
type NoteRecord struct {
	Title   string
	Content string
}
