package repository

import (
	"errors"
	"strings"

	"github.com/libas-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository is the catalog data access interface.
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetDetailByID(id uint) (*models.Product, error)
	GetDetailBySKU(sku string) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySKU(sku string, excludeID *uint) (int64, error)
	UpdateRatingStats(productID uint, averageRating float64, reviewCount int) error
	DecrementStock(productID uint, quantity int) (int64, error)
	RestoreStock(productID uint, quantity int) error
	GetVariant(variantID uint) (*models.ProductVariant, error)
	ListVariants(productID uint) ([]models.ProductVariant, error)
	CreateVariant(variant *models.ProductVariant) error
	CountVariantCombination(productID uint, color, size string, excludeID *uint) (int64, error)
	DecrementVariantStock(variantID uint, quantity int) (int64, error)
	RestoreVariantStock(variantID uint, quantity int) error
	CreateImage(image *models.ProductImage) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository is the GORM implementation.
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates the catalog repository.
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction runs fn inside a transaction.
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List returns bare product rows, newest first. Images and variants are not
// attached to list results; callers use the thumbnail column.
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Collection != "" {
		query = query.Where("collection = ?", filter.Collection)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.BestSeller != nil {
		query = query.Where("best_seller = ?", *filter.BestSeller)
	}
	if filter.NewArrival != nil {
		query = query.Where("new_arrival = ?", *filter.NewArrival)
	}
	if filter.InStockOnly {
		query = query.Where("in_stock = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildSearchCondition(r.db, []string{"name", "description"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyLimitOffset(query, filter.Limit, filter.Offset)

	if err := query.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID fetches a bare product row.
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetDetailByID fetches a product with images and variants attached.
func (r *GormProductRepository) GetDetailByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Images").Preload("Variants").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetDetailBySKU fetches a product with images and variants by SKU.
func (r *GormProductRepository) GetDetailBySKU(sku string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Images").Preload("Variants").Where("sku = ?", sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs fetches products in bulk.
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a product.
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update saves a product.
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete soft-deletes a product.
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// CountBySKU counts SKU occurrences for uniqueness checks.
func (r *GormProductRepository) CountBySKU(sku string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("sku = ?", sku)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateRatingStats writes the derived review columns.
func (r *GormProductRepository) UpdateRatingStats(productID uint, averageRating float64, reviewCount int) error {
	return r.db.Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
		"average_rating": averageRating,
		"review_count":   reviewCount,
	}).Error
}

// DecrementStock atomically takes quantity units off a product. The
// conditional WHERE rejects the write when it would drive stock negative;
// callers check RowsAffected. Stock hitting zero flips the in-stock flag.
func (r *GormProductRepository) DecrementStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"in_stock":       gorm.Expr("stock_quantity - ? > 0", quantity),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RestoreStock puts quantity units back on a product.
func (r *GormProductRepository) RestoreStock(productID uint, quantity int) error {
	if productID == 0 || quantity <= 0 {
		return errors.New("invalid stock restore params")
	}
	return r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity + ?", quantity),
			"in_stock":       true,
		}).Error
}

// GetVariant fetches a variant by id.
func (r *GormProductRepository) GetVariant(variantID uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.First(&variant, variantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// ListVariants fetches all variants of a product.
func (r *GormProductRepository) ListVariants(productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// CreateVariant inserts a variant.
func (r *GormProductRepository) CreateVariant(variant *models.ProductVariant) error {
	return r.db.Create(variant).Error
}

// CountVariantCombination counts rows with the same (product, color, size)
// combination for uniqueness checks.
func (r *GormProductRepository) CountVariantCombination(productID uint, color, size string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.ProductVariant{}).
		Where("product_id = ? AND color = ? AND size = ?", productID, color, size)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementVariantStock atomically takes quantity units off a variant.
func (r *GormProductRepository) DecrementVariantStock(variantID uint, quantity int) (int64, error) {
	if variantID == 0 || quantity <= 0 {
		return 0, errors.New("invalid variant stock decrement params")
	}
	result := r.db.Model(&models.ProductVariant{}).
		Where("id = ? AND stock_quantity >= ?", variantID, quantity).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"in_stock":       gorm.Expr("stock_quantity - ? > 0", quantity),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RestoreVariantStock puts quantity units back on a variant.
func (r *GormProductRepository) RestoreVariantStock(variantID uint, quantity int) error {
	if variantID == 0 || quantity <= 0 {
		return errors.New("invalid variant stock restore params")
	}
	return r.db.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity + ?", quantity),
			"in_stock":       true,
		}).Error
}

// CreateImage inserts a gallery image.
func (r *GormProductRepository) CreateImage(image *models.ProductImage) error {
	return r.db.Create(image).Error
}
