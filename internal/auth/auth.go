// Package auth carries the upstream-provided sign-in state through a request.
// It does not authenticate anyone itself.
package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

type ctxKey struct{}

// DefaultHeader is the identity header set by the gateway in front of the service.
const DefaultHeader = "X-User-ID"

// WithUser returns ctx marked as belonging to userID. An empty id leaves the
// request anonymous.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, strings.TrimSpace(userID))
}

// UserID returns the signed-in user id, or "".
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Context implements selection.Authenticator by reading the request context.
type Context struct{}

func (Context) IsAuthenticated(ctx context.Context) bool {
	return UserID(ctx) != ""
}

// Middleware copies the identity header into the request context.
func Middleware(header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultHeader
	}
	return func(c *gin.Context) {
		ctx := WithUser(c.Request.Context(), c.GetHeader(header))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
