package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avdeev/module-certification/internal/core/domain"
)

// ErrorResponse represents a generic error payload with a stable machine code
// and trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, code, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		Code:    code,
		TraceID: traceIDStr,
	}
}

// CreatedResponse returns the identifier of a newly created document.
type CreatedResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// NoteView describes a note returned by the API. Field names follow the
// camelCase wire convention of the note payloads.
type NoteView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteListResponse wraps the full notes listing.
type NoteListResponse struct {
	Success bool       `json:"success"`
	Notes   []NoteView `json:"notes"`
	Count   int        `json:"count"`
}

// NoteCreatedResponse wraps a freshly persisted note with a confirmation
// message.
type NoteCreatedResponse struct {
	Success bool     `json:"success"`
	Note    NoteView `json:"note"`
	Message string   `json:"message"`
}

// RoundView describes a certification round returned by the API.
type RoundView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"startDate"`
	DueDate   time.Time `json:"dueDate"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoundResponse wraps a single certification round.
type RoundResponse struct {
	Success bool      `json:"success"`
	Round   RoundView `json:"round"`
}

// MessageResponse represents a simple confirmation payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse describes readiness probe results with dependency checks.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func newNoteView(note domain.Note) NoteView {
	return NoteView{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Status:    note.Status,
		CreatedBy: note.CreatedBy,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func newRoundView(round domain.CertificationRound) RoundView {
	return RoundView{
		ID:        round.ID,
		Name:      round.Name,
		Status:    string(round.Status),
		StartDate: round.StartDate,
		DueDate:   round.DueDate,
		CreatedBy: round.CreatedBy,
		CreatedAt: round.CreatedAt,
	}
}
