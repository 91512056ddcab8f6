package service

import (
	"strconv"
	"testing"

	"github.com/libas-next/internal/cache"
	"github.com/libas-next/internal/config"
	"github.com/libas-next/internal/constants"
	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/repository"

	"github.com/alicebob/miniredis/v2"
)

// setupCacheTest points the cache package at an in-process redis and
// restores the disabled state afterwards.
func setupCacheTest(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("bad miniredis port: %v", err)
	}
	if err := cache.InitRedis(&config.RedisConfig{
		Enabled: true,
		Host:    mr.Host(),
		Port:    port,
		Prefix:  "libas_test",
	}); err != nil {
		t.Fatalf("init redis failed: %v", err)
	}
	t.Cleanup(func() {
		_ = cache.InitRedis(&config.RedisConfig{Enabled: false})
	})
	return mr
}

func cachedDetailKey(productID uint) string {
	return "libas_test:" + productDetailCacheKey(productID)
}

func TestProductDetailCacheDroppedOnReview(t *testing.T) {
	setupServiceTest(t)
	mr := setupCacheTest(t)
	productRepo := repository.NewProductRepository(models.DB)
	productSvc := NewProductService(productRepo)
	reviewSvc := NewReviewService(repository.NewReviewRepository(models.DB), productRepo)
	product := createTestProduct(t, "CCH-REV-01", 3000, 5)

	if _, err := productSvc.GetProductDetail(product.ID); err != nil {
		t.Fatalf("warm detail failed: %v", err)
	}
	if !mr.Exists(cachedDetailKey(product.ID)) {
		t.Fatal("expected warmed detail cache entry")
	}

	if _, err := reviewSvc.CreateReview(1, product.ID, 5, "lovely fabric"); err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	if mr.Exists(cachedDetailKey(product.ID)) {
		t.Fatal("review left a stale detail cache entry")
	}

	detail, err := productSvc.GetProductDetail(product.ID)
	if err != nil {
		t.Fatalf("reload detail failed: %v", err)
	}
	if detail.ReviewCount != 1 || detail.AverageRating != 5 {
		t.Fatalf("want fresh rating stats, got count=%d average=%v", detail.ReviewCount, detail.AverageRating)
	}
}

func TestProductDetailCacheDroppedOnCheckout(t *testing.T) {
	orderSvc, cartSvc := newOrderServiceTest(t, constants.PricingPolicyFrozen)
	mr := setupCacheTest(t)
	productSvc := NewProductService(repository.NewProductRepository(models.DB))
	product := createTestProduct(t, "CCH-ORD-01", 4000, 10)

	if _, err := cartSvc.AddItem("sess-cch1", nil, AddItemInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := productSvc.GetProductDetail(product.ID); err != nil {
		t.Fatalf("warm detail failed: %v", err)
	}
	if !mr.Exists(cachedDetailKey(product.ID)) {
		t.Fatal("expected warmed detail cache entry")
	}

	order, err := orderSvc.CreateOrder("sess-cch1", nil, checkoutInput)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if mr.Exists(cachedDetailKey(product.ID)) {
		t.Fatal("checkout left a stale detail cache entry")
	}
	detail, err := productSvc.GetProductDetail(product.ID)
	if err != nil {
		t.Fatalf("reload detail failed: %v", err)
	}
	if detail.StockQuantity != 8 {
		t.Fatalf("want drained stock 8, got %d", detail.StockQuantity)
	}

	// Cancelling restores stock and must drop the re-warmed entry too.
	if _, err := orderSvc.AdvanceStatus(order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if mr.Exists(cachedDetailKey(product.ID)) {
		t.Fatal("cancel left a stale detail cache entry")
	}
	detail, err = productSvc.GetProductDetail(product.ID)
	if err != nil {
		t.Fatalf("reload detail failed: %v", err)
	}
	if detail.StockQuantity != 10 {
		t.Fatalf("want restored stock 10, got %d", detail.StockQuantity)
	}
}
