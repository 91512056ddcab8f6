package admin

import (
	"github.com/libas-next/internal/http/response"
	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest is the back-office product payload.
type ProductRequest struct {
	Name           string        `json:"name" binding:"required"`
	Description    string        `json:"description"`
	Price          models.Money  `json:"price" binding:"required"`
	SalePrice      *models.Money `json:"sale_price"`
	Category       string        `json:"category"`
	Collection     string        `json:"collection"`
	SKU            string        `json:"sku"`
	ThumbnailImage string        `json:"thumbnail_image"`
	StockQuantity  int           `json:"stock_quantity"`
	Featured       bool          `json:"featured"`
	BestSeller     bool          `json:"best_seller"`
	NewArrival     bool          `json:"new_arrival"`
}

// VariantRequest is the back-office variant payload.
type VariantRequest struct {
	Color         string        `json:"color"`
	Size          string        `json:"size"`
	StockQuantity int           `json:"stock_quantity"`
	PriceOverride *models.Money `json:"price_override"`
}

// ImageRequest is the back-office gallery payload.
type ImageRequest struct {
	ImageURL  string `json:"image_url" binding:"required"`
	IsPrimary bool   `json:"is_primary"`
}

var productAdminErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductFieldsRequired, code: response.CodeBadRequest, msg: "product name and price are required"},
	{target: service.ErrInvalidPrice, code: response.CodeBadRequest, msg: "price must be positive"},
	{target: service.ErrInvalidSalePrice, code: response.CodeBadRequest, msg: "sale price must be below the base price"},
	{target: service.ErrInvalidCategory, code: response.CodeBadRequest, msg: "unknown product category"},
	{target: service.ErrInvalidCollection, code: response.CodeBadRequest, msg: "unknown product collection"},
	{target: service.ErrSKUTaken, code: response.CodeBadRequest, msg: "sku already in use"},
	{target: service.ErrVariantCombinationTaken, code: response.CodeBadRequest, msg: "variant combination already exists"},
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		SalePrice:      r.SalePrice,
		Category:       r.Category,
		Collection:     r.Collection,
		SKU:            r.SKU,
		ThumbnailImage: r.ThumbnailImage,
		StockQuantity:  r.StockQuantity,
		Featured:       r.Featured,
		BestSeller:     r.BestSeller,
		NewArrival:     r.NewArrival,
	}
}

// CreateProduct adds a catalog entry.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.CreateProduct(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productAdminErrorRules, response.CodeInternal, "failed to create product")
		return
	}
	response.Created(c, product)
}

// UpdateProduct replaces a catalog entry.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	product, err := h.ProductService.UpdateProduct(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productAdminErrorRules, response.CodeInternal, "failed to update product")
		return
	}
	response.Success(c, product)
}

// DeleteProduct removes a catalog entry.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.DeleteProduct(id); err != nil {
		respondWithMappedError(c, err, productAdminErrorRules, response.CodeInternal, "failed to delete product")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CreateVariant registers a new color and size combination.
func (h *Handler) CreateVariant(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	variant, err := h.ProductService.AddVariant(productID, service.VariantInput{
		Color:         req.Color,
		Size:          req.Size,
		StockQuantity: req.StockQuantity,
		PriceOverride: req.PriceOverride,
	})
	if err != nil {
		respondWithMappedError(c, err, productAdminErrorRules, response.CodeInternal, "failed to create variant")
		return
	}
	response.Created(c, variant)
}

// ListVariants returns a product's combinations.
func (h *Handler) ListVariants(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	variants, err := h.ProductService.ListVariants(productID)
	if err != nil {
		respondWithMappedError(c, err, productAdminErrorRules, response.CodeInternal, "failed to list variants")
		return
	}
	response.Success(c, gin.H{"variants": variants})
}

// CreateImage attaches a gallery image.
func (h *Handler) CreateImage(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	image, err := h.ProductService.AddImage(productID, req.ImageURL, req.IsPrimary)
	if err != nil {
		respondWithMappedError(c, err, productAdminErrorRules, response.CodeInternal, "failed to create image")
		return
	}
	response.Created(c, image)
}
