package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avdeev/module-certification/internal/guard"
	"github.com/avdeev/module-certification/internal/usecase"
	"github.com/avdeev/module-certification/internal/validate"
)

// Stable machine-readable error codes carried in every error payload.
const (
	CodeInvalidArgument   = "invalid-argument"
	CodeUnauthenticated   = "unauthenticated"
	CodePermissionDenied  = "permission-denied"
	CodeNotFound          = "not-found"
	CodeResourceExhausted = "resource-exhausted"
	CodeInternal          = "internal"
)

// ErrorCase maps a sentinel error to an HTTP status, code, and message.
// Message left empty means the sentinel's own text is returned.
type ErrorCase struct {
	Err     error
	Status  int
	Code    string
	Message string
}

// defaultCases covers the sentinels shared by every governed operation. The
// sentinel messages are part of the API contract and pass through verbatim.
var defaultCases = []ErrorCase{
	{Err: usecase.ErrNoAuthentication, Status: http.StatusUnauthorized, Code: CodeUnauthenticated},
	{Err: usecase.ErrUserNotFound, Status: http.StatusUnauthorized, Code: CodeUnauthenticated},
	{Err: usecase.ErrUserDeactivated, Status: http.StatusUnauthorized, Code: CodeUnauthenticated},
	{Err: usecase.ErrInvalidRole, Status: http.StatusUnauthorized, Code: CodeUnauthenticated},
	{Err: usecase.ErrForbidden, Status: http.StatusForbidden, Code: CodePermissionDenied},
	{Err: usecase.ErrNoActiveRound, Status: http.StatusForbidden, Code: CodePermissionDenied},
	{Err: usecase.ErrResourceNotFound, Status: http.StatusNotFound, Code: CodeNotFound},
	{Err: guard.ErrRateLimited, Status: http.StatusTooManyRequests, Code: CodeResourceExhausted},
	{Err: guard.ErrDuplicateSubmission, Status: http.StatusTooManyRequests, Code: CodeResourceExhausted},
}

// RespondWithMappedError resolves the error against the handler-specific
// cases, then the shared defaults, then the validation error type, and
// finally falls back to an opaque internal error.
func RespondWithMappedError(c *gin.Context, err error, cases ...ErrorCase) {
	if err == nil {
		c.Status(http.StatusOK)
		return
	}

	for _, set := range [][]ErrorCase{cases, defaultCases} {
		for _, cs := range set {
			if cs.Err == nil || !errors.Is(err, cs.Err) {
				continue
			}
			message := cs.Message
			if message == "" {
				message = cs.Err.Error()
			}
			c.JSON(cs.Status, NewErrorResponse(c, cs.Code, message))
			return
		}
	}

	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, CodeInvalidArgument, verr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError, NewErrorResponse(c, CodeInternal, "internal server error"))
}
