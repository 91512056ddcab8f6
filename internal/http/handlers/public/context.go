package public

import (
	"strconv"

	handlershared "github.com/libas-next/internal/http/handlers/shared"
	"github.com/libas-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

// optionalUserID returns the authenticated user id when the request
// carried a valid token, nil otherwise.
func optionalUserID(c *gin.Context) *uint {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	if id, ok := value.(uint); ok && id != 0 {
		return &id
	}
	return nil
}

func getSessionID(c *gin.Context) string {
	value, exists := c.Get("session_id")
	if !exists {
		return ""
	}
	if id, ok := value.(string); ok {
		return id
	}
	return ""
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}
