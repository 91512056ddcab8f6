package service

import (
	"errors"
	"testing"

	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/repository"
)

func newWishlistServiceTest(t *testing.T) *WishlistService {
	t.Helper()
	setupServiceTest(t)
	return NewWishlistService(
		repository.NewWishlistRepository(models.DB),
		repository.NewProductRepository(models.DB),
	)
}

func TestWishlistAddItemIdempotent(t *testing.T) {
	svc := newWishlistServiceTest(t)
	product := createTestProduct(t, "WSH-TEST-01", 3000, 10)

	detail, err := svc.AddItem(1, product.ID)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("want 1 item, got %d", len(detail.Items))
	}

	detail, err = svc.AddItem(1, product.ID)
	if err != nil {
		t.Fatalf("repeat add failed: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("repeat add duplicated item: %d", len(detail.Items))
	}
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	svc := newWishlistServiceTest(t)

	if _, err := svc.AddItem(1, 9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestWishlistRemoveItem(t *testing.T) {
	svc := newWishlistServiceTest(t)
	product := createTestProduct(t, "WSH-TEST-02", 3000, 10)

	if _, err := svc.AddItem(2, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	detail, err := svc.RemoveItem(2, product.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("item not removed")
	}

	if _, err := svc.RemoveItem(2, product.ID); !errors.Is(err, ErrWishlistItemNotFound) {
		t.Fatalf("want ErrWishlistItemNotFound, got %v", err)
	}
}

func TestWishlistsAreIsolatedPerUser(t *testing.T) {
	svc := newWishlistServiceTest(t)
	a := createTestProduct(t, "WSH-TEST-03", 3000, 10)
	b := createTestProduct(t, "WSH-TEST-04", 4000, 10)

	if _, err := svc.AddItem(3, a.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddItem(4, b.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	detail, err := svc.GetWishlist(3)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(detail.Items) != 1 || detail.Items[0].ProductID != a.ID {
		t.Fatalf("unexpected wishlist for user 3: %+v", detail.Items)
	}
}
