package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/libas-next/internal/http/handlers/shared"
	"github.com/libas-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// mappedHandlerError maps a business error onto an API reply.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
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
