package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avdeev/module-certification/internal/core/domain"
	"github.com/avdeev/module-certification/internal/usecase"
)

const identityKey = "identity"

// Identity extracts the caller identity from the Authorization header and
// attaches it to the request context. A request without the header proceeds
// with no identity: the governance pipeline reports the missing
// authentication itself, with its own wording. A present but unverifiable
// token is rejected here, before any service runs.
func Identity(verifier *usecase.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthenticated(c, "invalid authorization format: expected 'Bearer <token>'")
			return
		}

		token := strings.TrimSpace(parts[1])
		if token == "" {
			abortUnauthenticated(c, "missing access token")
			return
		}

		ident, err := verifier.Verify(token)
		if err != nil {
			abortUnauthenticated(c, "invalid access token")
			return
		}

		c.Set(identityKey, ident)
		c.Set(UserIDKey, ident.UID)

		if reqCtx := GetRequestContext(c); reqCtx != nil {
			reqCtx.UserID = ident.UID
		}

		c.Next()
	}
}

// IdentityFromContext returns the verified caller identity, or nil when the
// request carried no Authorization header.
func IdentityFromContext(c *gin.Context) *domain.Identity {
	if v, exists := c.Get(identityKey); exists {
		if ident, ok := v.(*domain.Identity); ok {
			return ident
		}
	}
	return nil
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    message,
		"code":     "unauthenticated",
		"trace_id": GetTraceID(c),
	})
}
