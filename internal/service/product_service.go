package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/libas-next/internal/cache"
	"github.com/libas-next/internal/constants"
	"github.com/libas-next/internal/logger"
	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/repository"

	"github.com/shopspring/decimal"
)

const productDetailCacheTTL = 5 * time.Minute

// ProductService owns the catalog read and admin surfaces.
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates the catalog service.
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductListInput filters the public catalog listing.
type ProductListInput struct {
	Limit      int
	Offset     int
	Category   string
	Collection string
	Featured   *bool
	BestSeller *bool
	NewArrival *bool
	Search     string
	InStock    bool
}

// ProductListResult is one catalog page.
type ProductListResult struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

// ProductInput carries catalog writes from the back office.
type ProductInput struct {
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Price          models.Money  `json:"price"`
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

// VariantInput carries a new color and size combination.
type VariantInput struct {
	Color         string        `json:"color"`
	Size          string        `json:"size"`
	StockQuantity int           `json:"stock_quantity"`
	PriceOverride *models.Money `json:"price_override"`
}

// ListProducts returns a filtered catalog page, newest first.
func (s *ProductService) ListProducts(input ProductListInput) (*ProductListResult, error) {
	if input.Category != "" && !isKnownCategory(input.Category) {
		return nil, ErrInvalidCategory
	}
	if input.Collection != "" && !isKnownCollection(input.Collection) {
		return nil, ErrInvalidCollection
	}

	products, total, err := s.productRepo.List(repository.ProductListFilter{
		Limit:       input.Limit,
		Offset:      input.Offset,
		Category:    input.Category,
		Collection:  input.Collection,
		Featured:    input.Featured,
		BestSeller:  input.BestSeller,
		NewArrival:  input.NewArrival,
		Search:      strings.TrimSpace(input.Search),
		InStockOnly: input.InStock,
	})
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products, Total: total}, nil
}

// GetProductDetail returns one product with its images and variants.
// Reads go through the cache when it is up.
func (s *ProductService) GetProductDetail(id uint) (*models.Product, error) {
	if cache.Enabled() {
		var cached models.Product
		hit, err := cache.GetJSON(context.Background(), productDetailCacheKey(id), &cached)
		if err != nil {
			logger.Warnw("product_detail_cache_read_failed", "product_id", id, "error", err)
		}
		if hit {
			return &cached, nil
		}
	}

	product, err := s.productRepo.GetDetailByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if cache.Enabled() {
		if err := cache.SetJSON(context.Background(), productDetailCacheKey(id), product, productDetailCacheTTL); err != nil {
			logger.Warnw("product_detail_cache_write_failed", "product_id", id, "error", err)
		}
	}
	return product, nil
}

// GetProductBySKU returns one product with its images and variants,
// looked up by the public stock keeping unit.
func (s *ProductService) GetProductBySKU(sku string) (*models.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetDetailBySKU(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct adds a catalog entry.
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	if input.SKU != "" {
		count, err := s.productRepo.CountBySKU(input.SKU, nil)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSKUTaken
		}
	}

	product := &models.Product{
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		Price:          input.Price,
		SalePrice:      input.SalePrice,
		Category:       input.Category,
		Collection:     input.Collection,
		SKU:            strings.TrimSpace(input.SKU),
		ThumbnailImage: input.ThumbnailImage,
		StockQuantity:  input.StockQuantity,
		InStock:        input.StockQuantity > 0,
		Featured:       input.Featured,
		BestSeller:     input.BestSeller,
		NewArrival:     input.NewArrival,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces a catalog entry's editable fields.
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	if input.SKU != "" {
		count, err := s.productRepo.CountBySKU(input.SKU, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSKUTaken
		}
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.Price = input.Price
	product.SalePrice = input.SalePrice
	product.Category = input.Category
	product.Collection = input.Collection
	product.SKU = strings.TrimSpace(input.SKU)
	product.ThumbnailImage = input.ThumbnailImage
	product.StockQuantity = input.StockQuantity
	product.InStock = input.StockQuantity > 0
	product.Featured = input.Featured
	product.BestSeller = input.BestSeller
	product.NewArrival = input.NewArrival
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	invalidateProductDetail(id)
	return product, nil
}

// DeleteProduct removes a catalog entry.
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	invalidateProductDetail(id)
	return nil
}

// AddVariant registers a new color and size combination for a product.
func (s *ProductService) AddVariant(productID uint, input VariantInput) (*models.ProductVariant, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	color := strings.TrimSpace(input.Color)
	size := strings.TrimSpace(input.Size)
	count, err := s.productRepo.CountVariantCombination(productID, color, size, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrVariantCombinationTaken
	}

	variant := &models.ProductVariant{
		ProductID:     productID,
		Color:         color,
		Size:          size,
		StockQuantity: input.StockQuantity,
		InStock:       input.StockQuantity > 0,
		PriceOverride: input.PriceOverride,
	}
	if err := s.productRepo.CreateVariant(variant); err != nil {
		return nil, err
	}
	invalidateProductDetail(productID)
	return variant, nil
}

// AddImage attaches a gallery image to a product.
func (s *ProductService) AddImage(productID uint, imageURL string, isPrimary bool) (*models.ProductImage, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	image := &models.ProductImage{
		ProductID: productID,
		ImageURL:  strings.TrimSpace(imageURL),
		IsPrimary: isPrimary,
	}
	if err := s.productRepo.CreateImage(image); err != nil {
		return nil, err
	}
	invalidateProductDetail(productID)
	return image, nil
}

// ListVariants returns a product's combinations.
func (s *ProductService) ListVariants(productID uint) ([]models.ProductVariant, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.productRepo.ListVariants(productID)
}

// invalidateProductDetail drops the cached detail. Every write that
// changes what the detail endpoint serves calls it, including the
// review and stock paths in the sibling services.
func invalidateProductDetail(productID uint) {
	if !cache.Enabled() {
		return
	}
	if err := cache.Del(context.Background(), productDetailCacheKey(productID)); err != nil {
		logger.Warnw("product_detail_cache_del_failed", "product_id", productID, "error", err)
	}
}

func productDetailCacheKey(productID uint) string {
	return fmt.Sprintf("catalog:product:%d", productID)
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrProductFieldsRequired
	}
	if !input.Price.Decimal.GreaterThan(decimal.Zero) {
		return ErrInvalidPrice
	}
	if input.SalePrice != nil && !input.SalePrice.Decimal.LessThan(input.Price.Decimal) {
		return ErrInvalidSalePrice
	}
	if input.Category != "" && !isKnownCategory(input.Category) {
		return ErrInvalidCategory
	}
	if input.Collection != "" && !isKnownCollection(input.Collection) {
		return ErrInvalidCollection
	}
	return nil
}

func isKnownCategory(category string) bool {
	for _, c := range constants.ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}

func isKnownCollection(collection string) bool {
	for _, c := range constants.ProductCollections {
		if c == collection {
			return true
		}
	}
	return false
}
