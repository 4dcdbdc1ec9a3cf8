package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avdeev/module-certification/internal/transport/http/middleware"
	"github.com/avdeev/module-certification/internal/usecase"
)

// NoteHandler exposes the workspace notes endpoints.
type NoteHandler struct {
	notes *usecase.NoteService
}

// NewNoteHandler builds a new note handler instance.
func NewNoteHandler(notes *usecase.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// RegisterRoutes wires the note endpoints onto the group.
func (h *NoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
}

// List returns all notes, newest first.
func (h *NoteHandler) List(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)

	notes, err := h.notes.ReadNotes(c.Request.Context(), ident)
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}

	views := make([]NoteView, 0, len(notes))
	for _, note := range notes {
		views = append(views, newNoteView(note))
	}

	c.JSON(http.StatusOK, NoteListResponse{Success: true, Notes: views, Count: len(views)})
}

// Create runs a note submission through the governance pipeline.
func (h *NoteHandler) Create(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, CodeInvalidArgument, "invalid request body"))
		return
	}

	note, err := h.notes.CreateNote(c.Request.Context(), middleware.IdentityFromContext(c), raw, usecase.RequestMeta{
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NoteCreatedResponse{
		Success: true,
		Note:    newNoteView(*note),
		Message: "Note created successfully",
	})
}
