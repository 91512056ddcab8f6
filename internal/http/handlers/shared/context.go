package shared

import (
	"github.com/libas-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUint reads a uint value from the request context and writes
// the error reply itself on failure.
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "authentication required", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid identifier", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid identifier", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "unexpected identifier type", nil)
		return 0, false
	}
}
