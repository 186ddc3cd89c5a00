// Package readonly blocks mutating requests when the service runs in
// read-only mode.
package readonly

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const blockedMessage = "This action is disabled in read-only mode"

// ContextKeyReadOnly stores the read-only flag in the gin context.
const ContextKeyReadOnly = "read_only"

// Middleware lets safe methods through and rejects everything else with 403
// while enabled.
type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns the gin middleware.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)
		if !m.enabled || isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     blockedMessage,
			"read_only": true,
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
