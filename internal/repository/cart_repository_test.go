package repository

import (
	"testing"

	"github.com/libas-next/internal/models"

	"github.com/shopspring/decimal"
)

func TestUpsertLineMergesQuantity(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewCartRepository(db)

	cart := &models.Cart{SessionID: "sess-r1"}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	price := models.NewMoneyFromDecimal(decimal.NewFromInt(4500))
	line := &models.CartItem{CartID: cart.ID, ProductID: 1, Quantity: 2, UnitPrice: price}
	if err := repo.UpsertLine(line); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := repo.UpsertLine(&models.CartItem{CartID: cart.ID, ProductID: 1, Quantity: 3, UnitPrice: price}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("want 1 line, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("want quantity 5, got %d", items[0].Quantity)
	}
}

func TestUpsertLineKeepsVariantsApart(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewCartRepository(db)

	cart := &models.Cart{SessionID: "sess-r2"}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	price := models.NewMoneyFromDecimal(decimal.NewFromInt(4500))
	if err := repo.UpsertLine(&models.CartItem{CartID: cart.ID, ProductID: 1, VariantID: 0, Quantity: 1, UnitPrice: price}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.UpsertLine(&models.CartItem{CartID: cart.ID, ProductID: 1, VariantID: 9, Quantity: 1, UnitPrice: price}); err != nil {
		t.Fatalf("variant upsert failed: %v", err)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("variant lines merged, got %d", len(items))
	}
}

func TestDeleteItemAllowsReAdd(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewCartRepository(db)

	cart := &models.Cart{SessionID: "sess-r3"}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	price := models.NewMoneyFromDecimal(decimal.NewFromInt(2000))
	line := &models.CartItem{CartID: cart.ID, ProductID: 2, Quantity: 1, UnitPrice: price}
	if err := repo.UpsertLine(line); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := repo.DeleteItem(line.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// The pair must be insertable again; lines are removed for real, not
	// soft-deleted under the uniqueness index.
	if err := repo.UpsertLine(&models.CartItem{CartID: cart.ID, ProductID: 2, Quantity: 4, UnitPrice: price}); err != nil {
		t.Fatalf("re-add failed: %v", err)
	}
	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 4 {
		t.Fatalf("re-add wrong: %+v", items)
	}
}

func TestCartDeleteRemovesLines(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewCartRepository(db)

	cart := &models.Cart{SessionID: "sess-r4"}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	price := models.NewMoneyFromDecimal(decimal.NewFromInt(2000))
	if err := repo.UpsertLine(&models.CartItem{CartID: cart.ID, ProductID: 3, Quantity: 1, UnitPrice: price}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := repo.Delete(cart.ID); err != nil {
		t.Fatalf("delete cart failed: %v", err)
	}

	gone, err := repo.GetByID(cart.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if gone != nil {
		t.Fatalf("cart header survived delete")
	}
	var count int64
	if err := db.Unscoped().Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error; err != nil {
		t.Fatalf("count lines failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("cart lines survived delete: %d", count)
	}
}
