package public

import (
	"errors"

	"github.com/libas-next/internal/http/response"
	"github.com/libas-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha generates an image challenge for login or register.
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		if errors.Is(err, service.ErrCaptchaConfigInvalid) {
			respondError(c, response.CodeBadRequest, "captcha provider not configured for images", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to generate captcha", err)
		return
	}
	response.Success(c, challenge)
}
