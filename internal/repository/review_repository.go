package repository

import (
	"github.com/libas-next/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository is the review data access interface.
type ReviewRepository interface {
	Create(review *models.Review) error
	ListByProduct(productID uint) ([]models.Review, error)
	ListByUser(userID uint) ([]models.Review, error)
	RatingStats(productID uint) (float64, int64, error)
	WithTx(tx *gorm.DB) *GormReviewRepository
}

// GormReviewRepository is the GORM implementation.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates the review repository.
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormReviewRepository) WithTx(tx *gorm.DB) *GormReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// Create inserts a review.
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// ListByProduct returns a product's reviews, newest first.
func (r *GormReviewRepository) ListByProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListByUser returns a user's reviews.
func (r *GormReviewRepository) ListByUser(userID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// RatingStats recomputes the full average and count over all reviews of a
// product.
func (r *GormReviewRepository) RatingStats(productID uint) (float64, int64, error) {
	var row struct {
		Average float64
		Count   int64
	}
	if err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Take(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Average, row.Count, nil
}
