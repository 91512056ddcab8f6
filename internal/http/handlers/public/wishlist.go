package public

import (
	"github.com/libas-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddWishlistItemRequest is the save-product payload.
type AddWishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist returns the user's saved products.
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	detail, err := h.WishlistService.GetWishlist(uid)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "failed to fetch wishlist")
		return
	}
	response.Success(c, detail)
}

// AddWishlistItem saves a product. Saving twice is a no-op.
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	detail, err := h.WishlistService.AddItem(uid, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "failed to add wishlist item")
		return
	}
	response.Created(c, detail)
}

// RemoveWishlistItem drops a saved product.
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		return
	}
	detail, err := h.WishlistService.RemoveItem(uid, productID)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "failed to remove wishlist item")
		return
	}
	response.Success(c, detail)
}
