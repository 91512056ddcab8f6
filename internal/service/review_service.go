package service

import (
	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/repository"

	"gorm.io/gorm"
)

// ReviewService owns product reviews and the derived rating columns.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService creates the review service.
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// CreateReview stores a review and recomputes the product's average
// rating over all of its reviews in the same transaction.
func (s *ReviewService) CreateReview(userID, productID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		reviewRepo := s.reviewRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		if err := reviewRepo.Create(review); err != nil {
			return err
		}
		average, count, err := reviewRepo.RatingStats(productID)
		if err != nil {
			return err
		}
		return productRepo.UpdateRatingStats(productID, average, int(count))
	})
	if err != nil {
		return nil, err
	}
	invalidateProductDetail(productID)
	return review, nil
}

// ListByProduct returns a product's reviews, newest first.
func (s *ReviewService) ListByProduct(productID uint) ([]models.Review, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.reviewRepo.ListByProduct(productID)
}

// ListByUser returns reviews written by a user, newest first.
func (s *ReviewService) ListByUser(userID uint) ([]models.Review, error) {
	return s.reviewRepo.ListByUser(userID)
}
