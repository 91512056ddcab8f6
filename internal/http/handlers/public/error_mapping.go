package public

import (
	"errors"

	handlershared "github.com/libas-next/internal/http/handlers/shared"
	"github.com/libas-next/internal/http/response"
	"github.com/libas-next/internal/service"

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

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be at least 1"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, msg: "variant not found"},
	{target: service.ErrVariantMismatch, code: response.CodeBadRequest, msg: "variant does not belong to the product"},
	{target: service.ErrProductOutOfStock, code: response.CodeBadRequest, msg: "product is out of stock"},
	{target: service.ErrVariantOutOfStock, code: response.CodeBadRequest, msg: "variant is out of stock"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
	{target: service.ErrSessionRequired, code: response.CodeBadRequest, msg: "session id is required"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderFieldsRequired, code: response.CodeBadRequest, msg: "shipping, billing and payment method are required"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, msg: "a cart product is no longer available"},
	{target: service.ErrVariantNotFound, code: response.CodeBadRequest, msg: "a cart variant is no longer available"},
	{target: service.ErrSessionRequired, code: response.CodeBadRequest, msg: "session id is required"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderAccessDenied, code: response.CodeForbidden, msg: "order belongs to another user"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrUsernameTaken, code: response.CodeBadRequest, msg: "username already taken"},
	{target: service.ErrEmailTaken, code: response.CodeBadRequest, msg: "email already registered"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "invalid email address"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "password does not meet the policy"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid username or password"},
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, msg: "captcha is required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, msg: "captcha verification failed"},
}

var wishlistErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrWishlistItemNotFound, code: response.CodeNotFound, msg: "wishlist item not found"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrInvalidRating, code: response.CodeBadRequest, msg: "rating must be between 1 and 5"},
}
