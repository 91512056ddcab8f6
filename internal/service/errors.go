package service

import "errors"

// Shared business errors. Handlers map these onto response codes.
var (
	// Catalog
	ErrProductNotFound         = errors.New("product not found")
	ErrVariantNotFound         = errors.New("variant not found")
	ErrVariantMismatch         = errors.New("variant does not belong to the product")
	ErrInvalidCategory         = errors.New("unknown product category")
	ErrInvalidCollection       = errors.New("unknown product collection")
	ErrInvalidPrice            = errors.New("price must be positive")
	ErrInvalidSalePrice        = errors.New("sale price must be below the base price")
	ErrSKUTaken                = errors.New("sku already in use")
	ErrVariantCombinationTaken = errors.New("variant combination already exists")
	ErrProductFieldsRequired   = errors.New("product name and price are required")

	// Cart
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrProductOutOfStock   = errors.New("product is out of stock")
	ErrVariantOutOfStock   = errors.New("variant is out of stock")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrSessionRequired     = errors.New("session id is required")

	// Wishlist
	ErrWishlistItemNotFound = errors.New("wishlist item not found")

	// Orders
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderAccessDenied      = errors.New("order belongs to another user")
	ErrOrderFieldsRequired    = errors.New("shipping, billing and payment method are required")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	ErrOrderCreateFailed      = errors.New("order creation failed")

	// Reviews
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// Accounts
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password does not meet the policy")
	ErrUserNotFound       = errors.New("user not found")

	// Captcha
	ErrCaptchaRequired      = errors.New("captcha is required")
	ErrCaptchaInvalid       = errors.New("captcha verification failed")
	ErrCaptchaConfigInvalid = errors.New("captcha provider not configured for images")
)
