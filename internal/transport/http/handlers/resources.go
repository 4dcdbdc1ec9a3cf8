package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avdeev/module-certification/internal/transport/http/middleware"
	"github.com/avdeev/module-certification/internal/usecase"
)

// ResourceHandler exposes the certified-content endpoints: modules, courses,
// certification rounds, comments, and user administration.
type ResourceHandler struct {
	resources *usecase.ResourceService
}

// NewResourceHandler builds a new resource handler instance.
func NewResourceHandler(resources *usecase.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resources}
}

// RegisterRoutes wires the resource endpoints onto the group.
func (h *ResourceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/modules", h.CreateModule)
	rg.PUT("/modules/:id", h.UpdateModule)
	rg.POST("/courses", h.CreateCourse)
	rg.POST("/rounds", h.CreateRound)
	rg.GET("/rounds/active", h.ActiveRound)
	rg.POST("/comments", h.CreateComment)
	rg.PATCH("/users/:id", h.UpdateUser)
}

func bindRaw(c *gin.Context) (map[string]any, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, CodeInvalidArgument, "invalid request body"))
		return nil, false
	}
	return raw, true
}

func requestMeta(c *gin.Context) usecase.RequestMeta {
	return usecase.RequestMeta{IPAddress: c.ClientIP()}
}

// CreateModule creates a module document.
func (h *ResourceHandler) CreateModule(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}

	id, err := h.resources.CreateModule(c.Request.Context(), middleware.IdentityFromContext(c), raw, requestMeta(c))
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{Success: true, ID: id})
}

// UpdateModule rewrites an existing module document.
func (h *ResourceHandler) UpdateModule(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}

	err := h.resources.UpdateModule(c.Request.Context(), middleware.IdentityFromContext(c), c.Param("id"), raw, requestMeta(c))
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "module updated"})
}

// CreateCourse creates a course document.
func (h *ResourceHandler) CreateCourse(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}

	id, err := h.resources.CreateCourse(c.Request.Context(), middleware.IdentityFromContext(c), raw, requestMeta(c))
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{Success: true, ID: id})
}

// CreateRound opens a new certification round.
func (h *ResourceHandler) CreateRound(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}

	round, err := h.resources.CreateRound(c.Request.Context(), middleware.IdentityFromContext(c), raw, requestMeta(c))
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RoundResponse{Success: true, Round: newRoundView(*round)})
}

// ActiveRound returns the currently active certification round. The shared
// round-gate sentinel maps to 404 here: on a read, an absent round is a
// missing resource, not a policy denial.
func (h *ResourceHandler) ActiveRound(c *gin.Context) {
	round, err := h.resources.ActiveRound(c.Request.Context(), middleware.IdentityFromContext(c))
	if err != nil {
		RespondWithMappedError(c, err, ErrorCase{
			Err:     usecase.ErrNoActiveRound,
			Status:  http.StatusNotFound,
			Code:    CodeNotFound,
			Message: "no active certification round",
		})
		return
	}

	c.JSON(http.StatusOK, RoundResponse{Success: true, Round: newRoundView(*round)})
}

// CreateComment attaches a comment to a resource.
func (h *ResourceHandler) CreateComment(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}

	id, err := h.resources.CreateComment(c.Request.Context(), middleware.IdentityFromContext(c), raw, requestMeta(c))
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{Success: true, ID: id})
}

// UpdateUser rewrites a stored user profile.
func (h *ResourceHandler) UpdateUser(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}

	err := h.resources.UpdateUser(c.Request.Context(), middleware.IdentityFromContext(c), c.Param("id"), raw, requestMeta(c))
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "user updated"})
}
