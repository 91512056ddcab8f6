package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/libas-next/internal/constants"
	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	models.DB = db
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
}

func newCartServiceTest(t *testing.T) *CartService {
	t.Helper()
	setupServiceTest(t)
	return NewCartService(
		repository.NewCartRepository(models.DB),
		repository.NewProductRepository(models.DB),
	)
}

func createTestProduct(t *testing.T, sku string, price int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          "Test Suit " + sku,
		SKU:           sku,
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Category:      constants.CategoryLawnSuits,
		InStock:       stock > 0,
		StockQuantity: stock,
	}
	if err := models.DB.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createTestVariant(t *testing.T, productID uint, color, size string, stock int, priceOverride *int64) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		ProductID:     productID,
		Color:         color,
		Size:          size,
		InStock:       stock > 0,
		StockQuantity: stock,
	}
	if priceOverride != nil {
		m := models.NewMoneyFromDecimal(decimal.NewFromInt(*priceOverride))
		variant.PriceOverride = &m
	}
	if err := models.DB.Create(variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	return variant
}

func TestResolveCartCreatesSessionCart(t *testing.T) {
	svc := newCartServiceTest(t)

	cart, err := svc.ResolveCart("sess-1", nil)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cart.ID == 0 || cart.SessionID != "sess-1" {
		t.Fatalf("unexpected cart: %+v", cart)
	}

	again, err := svc.ResolveCart("sess-1", nil)
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if again.ID != cart.ID {
		t.Fatalf("want same cart %d, got %d", cart.ID, again.ID)
	}
}

func TestResolveCartRequiresSession(t *testing.T) {
	svc := newCartServiceTest(t)

	if _, err := svc.ResolveCart("", nil); !errors.Is(err, ErrSessionRequired) {
		t.Fatalf("want ErrSessionRequired, got %v", err)
	}
}

func TestResolveCartClaimsSessionCartForUser(t *testing.T) {
	svc := newCartServiceTest(t)

	guest, err := svc.ResolveCart("sess-2", nil)
	if err != nil {
		t.Fatalf("guest resolve failed: %v", err)
	}

	userID := uint(7)
	claimed, err := svc.ResolveCart("sess-2", &userID)
	if err != nil {
		t.Fatalf("user resolve failed: %v", err)
	}
	if claimed.ID != guest.ID {
		t.Fatalf("want claimed cart %d, got %d", guest.ID, claimed.ID)
	}
	if claimed.UserID == nil || *claimed.UserID != userID {
		t.Fatalf("cart not claimed: %+v", claimed)
	}
}

func TestResolveCartShieldsClaimedCartFromOtherUsers(t *testing.T) {
	svc := newCartServiceTest(t)
	product := createTestProduct(t, "LWN-SHLD-01", 4500, 50)

	ownerID := uint(7)
	owned, err := svc.ResolveCart("sess-shared", &ownerID)
	if err != nil {
		t.Fatalf("owner resolve failed: %v", err)
	}
	if _, err := svc.AddItem("sess-shared", &ownerID, AddItemInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("owner add failed: %v", err)
	}

	// A second account replaying the same session header gets a cart of
	// its own, never the owner's.
	otherID := uint(8)
	other, err := svc.ResolveCart("sess-shared", &otherID)
	if err != nil {
		t.Fatalf("other resolve failed: %v", err)
	}
	if other.ID == owned.ID {
		t.Fatal("claimed cart handed to a different user")
	}
	if other.UserID == nil || *other.UserID != otherID {
		t.Fatalf("fresh cart not owned by caller: %+v", other)
	}

	detail, err := svc.GetCart("sess-shared", &otherID)
	if err != nil {
		t.Fatalf("other get cart failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("other user sees %d foreign lines", len(detail.Items))
	}

	ownerDetail, err := svc.GetCart("sess-shared", &ownerID)
	if err != nil {
		t.Fatalf("owner get cart failed: %v", err)
	}
	if len(ownerDetail.Items) != 1 {
		t.Fatalf("owner cart disturbed: %d lines", len(ownerDetail.Items))
	}
}

func TestAddItemMergesSameLine(t *testing.T) {
	svc := newCartServiceTest(t)
	product := createTestProduct(t, "LWN-TEST-01", 4500, 50)

	if _, err := svc.AddItem("sess-3", nil, AddItemInput{ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	detail, err := svc.AddItem("sess-3", nil, AddItemInput{ProductID: product.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(detail.Items) != 1 {
		t.Fatalf("want 1 line, got %d", len(detail.Items))
	}
	if detail.Items[0].Quantity != 5 {
		t.Fatalf("want quantity 5, got %d", detail.Items[0].Quantity)
	}
	if detail.ItemCount != 5 {
		t.Fatalf("want item count 5, got %d", detail.ItemCount)
	}
	if got := detail.Subtotal.Decimal.StringFixed(2); got != "22500.00" {
		t.Fatalf("want subtotal 22500.00, got %s", got)
	}
}

func TestAddItemFreezesUnitPrice(t *testing.T) {
	svc := newCartServiceTest(t)
	product := createTestProduct(t, "LWN-TEST-02", 4000, 10)

	if _, err := svc.AddItem("sess-4", nil, AddItemInput{ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := models.DB.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", "6000").Error; err != nil {
		t.Fatalf("price update failed: %v", err)
	}

	detail, err := svc.GetCart("sess-4", nil)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if got := detail.Items[0].UnitPrice.Decimal.StringFixed(2); got != "4000.00" {
		t.Fatalf("want frozen price 4000.00, got %s", got)
	}
}

func TestAddItemUsesSalePriceAndVariantOverride(t *testing.T) {
	svc := newCartServiceTest(t)
	product := createTestProduct(t, "LWN-TEST-03", 5000, 10)
	sale := models.NewMoneyFromDecimal(decimal.NewFromInt(4200))
	if err := models.DB.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("sale_price", sale).Error; err != nil {
		t.Fatalf("sale price update failed: %v", err)
	}

	detail, err := svc.AddItem("sess-5", nil, AddItemInput{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if got := detail.Items[0].UnitPrice.Decimal.StringFixed(2); got != "4200.00" {
		t.Fatalf("want sale price 4200.00, got %s", got)
	}

	override := int64(4800)
	variant := createTestVariant(t, product.ID, "Coral", "M", 5, &override)
	detail, err = svc.AddItem("sess-5", nil, AddItemInput{ProductID: product.ID, VariantID: variant.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("variant add failed: %v", err)
	}
	if len(detail.Items) != 2 {
		t.Fatalf("want 2 lines, got %d", len(detail.Items))
	}
	if got := detail.Items[1].UnitPrice.Decimal.StringFixed(2); got != "4800.00" {
		t.Fatalf("want override price 4800.00, got %s", got)
	}
}

func TestAddItemRejectsBadInput(t *testing.T) {
	svc := newCartServiceTest(t)
	product := createTestProduct(t, "LWN-TEST-04", 3000, 10)
	other := createTestProduct(t, "LWN-TEST-05", 3000, 10)
	variant := createTestVariant(t, other.ID, "Ivory", "S", 5, nil)

	if _, err := svc.AddItem("sess-6", nil, AddItemInput{ProductID: product.ID, Quantity: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("want ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.AddItem("sess-6", nil, AddItemInput{ProductID: 9999, Quantity: 1}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
	if _, err := svc.AddItem("sess-6", nil, AddItemInput{ProductID: product.ID, VariantID: variant.ID, Quantity: 1}); !errors.Is(err, ErrVariantMismatch) {
		t.Fatalf("want ErrVariantMismatch, got %v", err)
	}

	out := createTestProduct(t, "LWN-TEST-06", 3000, 0)
	if _, err := svc.AddItem("sess-6", nil, AddItemInput{ProductID: out.ID, Quantity: 1}); !errors.Is(err, ErrProductOutOfStock) {
		t.Fatalf("want ErrProductOutOfStock, got %v", err)
	}
}

func TestUpdateItemQuantityEnforcesOwnership(t *testing.T) {
	svc := newCartServiceTest(t)
	product := createTestProduct(t, "LWN-TEST-07", 2500, 10)

	detail, err := svc.AddItem("sess-7", nil, AddItemInput{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	itemID := detail.Items[0].ID

	if _, err := svc.UpdateItemQuantity("sess-other", nil, itemID, 4); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("want ErrCartItemNotFound, got %v", err)
	}

	detail, err = svc.UpdateItemQuantity("sess-7", nil, itemID, 4)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if detail.Items[0].Quantity != 4 {
		t.Fatalf("want quantity 4, got %d", detail.Items[0].Quantity)
	}
}

func TestRemoveItemMissingLineSucceeds(t *testing.T) {
	svc := newCartServiceTest(t)
	product := createTestProduct(t, "LWN-TEST-08", 2500, 10)

	detail, err := svc.AddItem("sess-8", nil, AddItemInput{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	itemID := detail.Items[0].ID

	if _, err := svc.RemoveItem("sess-8", nil, itemID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	detail, err = svc.RemoveItem("sess-8", nil, itemID)
	if err != nil {
		t.Fatalf("repeat remove failed: %v", err)
	}
	if len(detail.Items) != 0 {
		t.Fatalf("want empty cart, got %d lines", len(detail.Items))
	}
}

func TestClearCart(t *testing.T) {
	svc := newCartServiceTest(t)
	a := createTestProduct(t, "LWN-TEST-09", 2500, 10)
	b := createTestProduct(t, "LWN-TEST-10", 3500, 10)

	if _, err := svc.AddItem("sess-9", nil, AddItemInput{ProductID: a.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddItem("sess-9", nil, AddItemInput{ProductID: b.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	detail, err := svc.ClearCart("sess-9", nil)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(detail.Items) != 0 || detail.ItemCount != 0 {
		t.Fatalf("cart not cleared: %+v", detail)
	}
	if got := detail.Subtotal.Decimal.StringFixed(2); got != "0.00" {
		t.Fatalf("want subtotal 0.00, got %s", got)
	}
}

func TestMergeCartLines(t *testing.T) {
	price := func(v int64) models.Money {
		return models.NewMoneyFromDecimal(decimal.NewFromInt(v))
	}
	guest := []models.CartItem{
		{ProductID: 2, VariantID: 0, Quantity: 1, UnitPrice: price(900)},
		{ProductID: 1, VariantID: 5, Quantity: 2, UnitPrice: price(1000)},
	}
	user := []models.CartItem{
		{ProductID: 1, VariantID: 5, Quantity: 3, UnitPrice: price(1200)},
		{ProductID: 3, VariantID: 0, Quantity: 1, UnitPrice: price(500)},
	}

	merged := MergeCartLines(guest, user)
	if len(merged) != 3 {
		t.Fatalf("want 3 lines, got %d", len(merged))
	}

	// Ordered by product then variant.
	if merged[0].ProductID != 1 || merged[1].ProductID != 2 || merged[2].ProductID != 3 {
		t.Fatalf("unexpected order: %+v", merged)
	}
	// Colliding line sums quantities and keeps the guest price.
	if merged[0].Quantity != 5 {
		t.Fatalf("want merged quantity 5, got %d", merged[0].Quantity)
	}
	if got := merged[0].UnitPrice.Decimal.StringFixed(2); got != "1000.00" {
		t.Fatalf("want guest price 1000.00, got %s", got)
	}

	// Inputs untouched.
	if guest[1].Quantity != 2 || user[0].Quantity != 3 {
		t.Fatalf("inputs mutated: guest=%+v user=%+v", guest, user)
	}
}

func TestMergeCartLinesEmptySides(t *testing.T) {
	price := models.NewMoneyFromDecimal(decimal.NewFromInt(100))
	lines := []models.CartItem{{ProductID: 1, Quantity: 2, UnitPrice: price}}

	if got := MergeCartLines(nil, nil); len(got) != 0 {
		t.Fatalf("want empty merge, got %d", len(got))
	}
	if got := MergeCartLines(lines, nil); len(got) != 1 || got[0].Quantity != 2 {
		t.Fatalf("guest-only merge wrong: %+v", got)
	}
	if got := MergeCartLines(nil, lines); len(got) != 1 || got[0].Quantity != 2 {
		t.Fatalf("user-only merge wrong: %+v", got)
	}
}
