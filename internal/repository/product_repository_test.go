package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/libas-next/internal/constants"
	"github.com/libas-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{}, &models.ProductImage{}, &models.ProductVariant{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func createProduct(t *testing.T, repo *GormProductRepository, sku, name, category string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          name,
		SKU:           sku,
		Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
		Category:      category,
		InStock:       stock > 0,
		StockQuantity: stock,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductListFiltersAndOrder(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewProductRepository(db)

	first := createProduct(t, repo, "RP-01", "Gulbahar Lawn 3-Piece", constants.CategoryLawnSuits, 10)
	second := createProduct(t, repo, "RP-02", "Nargis Chiffon Ensemble", constants.CategoryChiffonSuits, 0)
	third := createProduct(t, repo, "RP-03", "Saba Cotton Kurta Set", constants.CategoryCottonSuits, 5)

	// Force distinct creation times so the newest-first order is stable.
	base := time.Now().Add(-time.Hour)
	for i, id := range []uint{first.ID, second.ID, third.ID} {
		if err := db.Model(&models.Product{}).Where("id = ?", id).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error; err != nil {
			t.Fatalf("backdate failed: %v", err)
		}
	}

	products, total, err := repo.List(ProductListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(products) != 3 {
		t.Fatalf("want 3 products, got total=%d len=%d", total, len(products))
	}
	if products[0].ID != third.ID || products[2].ID != first.ID {
		t.Fatalf("not newest first: %v %v %v", products[0].ID, products[1].ID, products[2].ID)
	}

	products, total, err = repo.List(ProductListFilter{Category: constants.CategoryChiffonSuits})
	if err != nil {
		t.Fatalf("category filter failed: %v", err)
	}
	if total != 1 || products[0].ID != second.ID {
		t.Fatalf("category filter wrong: total=%d", total)
	}

	products, total, err = repo.List(ProductListFilter{InStockOnly: true})
	if err != nil {
		t.Fatalf("in-stock filter failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("want 2 in stock, got %d", total)
	}
	for _, p := range products {
		if !p.InStock {
			t.Fatalf("out-of-stock row leaked: %+v", p)
		}
	}

	_, total, err = repo.List(ProductListFilter{Search: "chiffon"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("want 1 search hit, got %d", total)
	}

	// Total counts all matches even when the page is smaller.
	products, total, err = repo.List(ProductListFilter{Limit: 2})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if total != 3 || len(products) != 2 {
		t.Fatalf("want total=3 page=2, got total=%d len=%d", total, len(products))
	}
}

func TestDecrementStockGuard(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewProductRepository(db)
	product := createProduct(t, repo, "RP-04", "Khas Embroidered Khaddar", constants.CategoryEmbroideredSuits, 5)

	affected, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("want 1 row affected, got %d", affected)
	}

	// Asking for more than remains must not write.
	affected, err = repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("guarded decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("guard did not hold, affected=%d", affected)
	}
	reloaded, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.StockQuantity != 2 || !reloaded.InStock {
		t.Fatalf("unexpected state: qty=%d in_stock=%v", reloaded.StockQuantity, reloaded.InStock)
	}

	// Draining the last units flips the in-stock flag.
	if _, err := repo.DecrementStock(product.ID, 2); err != nil {
		t.Fatalf("final decrement failed: %v", err)
	}
	reloaded, err = repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.StockQuantity != 0 || reloaded.InStock {
		t.Fatalf("in-stock flag not cleared: qty=%d in_stock=%v", reloaded.StockQuantity, reloaded.InStock)
	}

	if err := repo.RestoreStock(product.ID, 2); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	reloaded, err = repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.StockQuantity != 2 || !reloaded.InStock {
		t.Fatalf("restore wrong: qty=%d in_stock=%v", reloaded.StockQuantity, reloaded.InStock)
	}
}

func TestVariantStockAndCombination(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewProductRepository(db)
	product := createProduct(t, repo, "RP-05", "Mehr Chiffon 3-Piece", constants.CategoryChiffonSuits, 20)

	variant := &models.ProductVariant{
		ProductID:     product.ID,
		Color:         "Champagne",
		Size:          "M",
		InStock:       true,
		StockQuantity: 2,
	}
	if err := repo.CreateVariant(variant); err != nil {
		t.Fatalf("create variant failed: %v", err)
	}

	count, err := repo.CountVariantCombination(product.ID, "Champagne", "M", nil)
	if err != nil {
		t.Fatalf("count combination failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("want 1 combination, got %d", count)
	}
	count, err = repo.CountVariantCombination(product.ID, "Champagne", "M", &variant.ID)
	if err != nil {
		t.Fatalf("count excluding self failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("exclusion ignored, got %d", count)
	}
	count, err = repo.CountVariantCombination(product.ID, "Champagne", "L", nil)
	if err != nil {
		t.Fatalf("count other size failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("distinct combination collided")
	}

	affected, err := repo.DecrementVariantStock(variant.ID, 2)
	if err != nil {
		t.Fatalf("variant decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("want 1 row affected, got %d", affected)
	}
	reloaded, err := repo.GetVariant(variant.ID)
	if err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if reloaded.StockQuantity != 0 || reloaded.InStock {
		t.Fatalf("variant flag not cleared: qty=%d in_stock=%v", reloaded.StockQuantity, reloaded.InStock)
	}

	affected, err = repo.DecrementVariantStock(variant.ID, 1)
	if err != nil {
		t.Fatalf("guarded variant decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("variant guard did not hold")
	}
}

func TestCountBySKU(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewProductRepository(db)
	product := createProduct(t, repo, "RP-06", "Bagh Printed Lawn", constants.CategoryPrintedSuits, 10)

	count, err := repo.CountBySKU("RP-06", nil)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("want 1, got %d", count)
	}
	count, err = repo.CountBySKU("RP-06", &product.ID)
	if err != nil {
		t.Fatalf("count excluding self failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("want 0 excluding self, got %d", count)
	}
}
