package admin

import (
	"strconv"

	handlershared "github.com/libas-next/internal/http/handlers/shared"
	"github.com/libas-next/internal/http/response"
	"github.com/libas-next/internal/repository"
	"github.com/libas-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest is the status advance payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrInvalidStatusTransition, code: response.CodeBadRequest, msg: "status transition not allowed"},
}

// AdminListOrders pages all orders.
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListOrdersAdmin(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		OrderNo:  c.Query("order_no"),
	})
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

// AdminGetOrder returns one order.
func (h *Handler) AdminGetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderByID(orderID)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "failed to fetch order")
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderStatus advances an order along the lifecycle.
// Cancelling restores the reserved stock.
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "status is required", err)
		return
	}
	order, err := h.OrderService.AdvanceStatus(orderID, req.Status)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "failed to update order status")
		return
	}
	response.Success(c, order)
}
