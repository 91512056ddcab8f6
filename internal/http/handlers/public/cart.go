package public

import (
	"github.com/libas-next/internal/http/response"
	"github.com/libas-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest is the add-to-cart payload.
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	VariantID uint `json:"variant_id"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest is the line quantity payload.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart returns the caller's cart.
func (h *Handler) GetCart(c *gin.Context) {
	detail, err := h.CartService.GetCart(getSessionID(c), optionalUserID(c))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to fetch cart")
		return
	}
	response.Success(c, detail)
}

// AddCartItem puts a product into the cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	detail, err := h.CartService.AddItem(getSessionID(c), optionalUserID(c), service.AddItemInput{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to add cart item")
		return
	}
	response.Created(c, detail)
}

// UpdateCartItem replaces a line's quantity.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	detail, err := h.CartService.UpdateItemQuantity(getSessionID(c), optionalUserID(c), itemID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart item")
		return
	}
	response.Success(c, detail)
}

// DeleteCartItem drops a line from the cart.
func (h *Handler) DeleteCartItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.CartService.RemoveItem(getSessionID(c), optionalUserID(c), itemID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to remove cart item")
		return
	}
	response.Success(c, detail)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(c *gin.Context) {
	detail, err := h.CartService.ClearCart(getSessionID(c), optionalUserID(c))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to clear cart")
		return
	}
	response.Success(c, detail)
}
