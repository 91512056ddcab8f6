package service

import (
	"errors"
	"testing"

	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/repository"
)

func newReviewServiceTest(t *testing.T) *ReviewService {
	t.Helper()
	setupServiceTest(t)
	return NewReviewService(
		repository.NewReviewRepository(models.DB),
		repository.NewProductRepository(models.DB),
	)
}

func TestCreateReviewRecomputesRatingStats(t *testing.T) {
	svc := newReviewServiceTest(t)
	product := createTestProduct(t, "REV-TEST-01", 3000, 10)

	if _, err := svc.CreateReview(1, product.ID, 4, "Fabric quality is great"); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := svc.CreateReview(2, product.ID, 5, ""); err != nil {
		t.Fatalf("second review failed: %v", err)
	}

	var reloaded models.Product
	if err := models.DB.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.ReviewCount != 2 {
		t.Fatalf("want review count 2, got %d", reloaded.ReviewCount)
	}
	if reloaded.AverageRating != 4.5 {
		t.Fatalf("want average 4.5, got %v", reloaded.AverageRating)
	}
}

func TestCreateReviewValidation(t *testing.T) {
	svc := newReviewServiceTest(t)
	product := createTestProduct(t, "REV-TEST-02", 3000, 10)

	if _, err := svc.CreateReview(1, product.ID, 0, ""); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("want ErrInvalidRating for 0, got %v", err)
	}
	if _, err := svc.CreateReview(1, product.ID, 6, ""); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("want ErrInvalidRating for 6, got %v", err)
	}
	if _, err := svc.CreateReview(1, 9999, 4, ""); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestListReviewsByProduct(t *testing.T) {
	svc := newReviewServiceTest(t)
	product := createTestProduct(t, "REV-TEST-03", 3000, 10)
	other := createTestProduct(t, "REV-TEST-04", 3000, 10)

	if _, err := svc.CreateReview(1, product.ID, 3, "Color slightly different"); err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if _, err := svc.CreateReview(1, other.ID, 5, ""); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	reviews, err := svc.ListByProduct(product.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Rating != 3 {
		t.Fatalf("unexpected reviews: %+v", reviews)
	}

	if _, err := svc.ListByProduct(9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}

	mine, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("want 2 reviews by user, got %d", len(mine))
	}
}
