package public

import (
	"strconv"

	handlershared "github.com/libas-next/internal/http/handlers/shared"
	"github.com/libas-next/internal/http/response"
	"github.com/libas-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	BillingAddress  string `json:"billing_address" binding:"required"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
}

// CreateOrder materializes the caller's cart into an order.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "shipping, billing and payment method are required", err)
		return
	}
	order, err := h.OrderService.CreateOrder(getSessionID(c), optionalUserID(c), service.CreateOrderInput{
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "order creation failed")
		return
	}
	response.Created(c, order)
}

// ListOrders pages the authenticated user's order history.
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersByUser(uid, page, pageSize, c.Query("status"))
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list orders", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetOrder returns one order owned by the authenticated user.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderForUser(orderID, uid)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "failed to fetch order")
		return
	}
	response.Success(c, order)
}
