package public

import (
	"errors"
	"strconv"

	"github.com/libas-next/internal/http/response"
	"github.com/libas-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts lists the catalog, newest first.
func (h *Handler) GetProducts(c *gin.Context) {
	input := service.ProductListInput{
		Category:   c.Query("category"),
		Collection: c.Query("collection"),
		Search:     c.Query("search"),
		Featured:   parseBoolQuery(c, "featured"),
		BestSeller: parseBoolQuery(c, "best_seller"),
		NewArrival: parseBoolQuery(c, "new_arrival"),
	}
	if flag := parseBoolQuery(c, "in_stock"); flag != nil && *flag {
		input.InStock = true
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil && limit > 0 {
		input.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && offset > 0 {
		input.Offset = offset
	}

	result, err := h.ProductService.ListProducts(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory):
			respondError(c, response.CodeBadRequest, "unknown product category", nil)
		case errors.Is(err, service.ErrInvalidCollection):
			respondError(c, response.CodeBadRequest, "unknown product collection", nil)
		default:
			respondError(c, response.CodeInternal, "failed to list products", err)
		}
		return
	}
	response.Success(c, gin.H{
		"products": result.Products,
		"total":    result.Total,
	})
}

// GetProduct returns one product with images and variants.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetProductDetail(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch product", err)
		return
	}
	response.Success(c, product)
}

// GetProductBySKU returns one product looked up by SKU.
func (h *Handler) GetProductBySKU(c *gin.Context) {
	product, err := h.ProductService.GetProductBySKU(c.Param("sku"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to fetch product", err)
		return
	}
	response.Success(c, product)
}

func parseBoolQuery(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}
