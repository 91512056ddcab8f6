package public

import (
	"github.com/libas-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateReviewRequest is the review payload.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// GetProductReviews lists a product's reviews, newest first.
func (h *Handler) GetProductReviews(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reviews, err := h.ReviewService.ListByProduct(productID)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "failed to list reviews")
		return
	}
	response.Success(c, gin.H{"reviews": reviews})
}

// CreateProductReview stores a review and refreshes the product rating.
func (h *Handler) CreateProductReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	review, err := h.ReviewService.CreateReview(uid, productID, req.Rating, req.Comment)
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "failed to create review")
		return
	}
	response.Created(c, review)
}
