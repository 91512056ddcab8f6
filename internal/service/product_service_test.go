package service

import (
	"errors"
	"testing"

	"github.com/libas-next/internal/constants"
	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/repository"

	"github.com/shopspring/decimal"
)

func newProductServiceTest(t *testing.T) *ProductService {
	t.Helper()
	setupServiceTest(t)
	return NewProductService(repository.NewProductRepository(models.DB))
}

func money(v int64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromInt(v))
}

func moneyPtr(v int64) *models.Money {
	m := money(v)
	return &m
}

func validProductInput(sku string) ProductInput {
	return ProductInput{
		Name:          "Zarreen Embroidered Lawn",
		Price:         money(7950),
		Category:      constants.CategoryEmbroideredSuits,
		Collection:    constants.CollectionSummer,
		SKU:           sku,
		StockQuantity: 20,
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := newProductServiceTest(t)

	bad := validProductInput("PRD-TEST-01")
	bad.Name = "  "
	if _, err := svc.CreateProduct(bad); !errors.Is(err, ErrProductFieldsRequired) {
		t.Fatalf("want ErrProductFieldsRequired, got %v", err)
	}

	bad = validProductInput("PRD-TEST-01")
	bad.Price = money(0)
	if _, err := svc.CreateProduct(bad); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("want ErrInvalidPrice, got %v", err)
	}

	bad = validProductInput("PRD-TEST-01")
	bad.SalePrice = moneyPtr(9000)
	if _, err := svc.CreateProduct(bad); !errors.Is(err, ErrInvalidSalePrice) {
		t.Fatalf("want ErrInvalidSalePrice, got %v", err)
	}

	bad = validProductInput("PRD-TEST-01")
	bad.Category = "stitched_suits"
	if _, err := svc.CreateProduct(bad); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("want ErrInvalidCategory, got %v", err)
	}

	bad = validProductInput("PRD-TEST-01")
	bad.Collection = "monsoon"
	if _, err := svc.CreateProduct(bad); !errors.Is(err, ErrInvalidCollection) {
		t.Fatalf("want ErrInvalidCollection, got %v", err)
	}
}

func TestCreateProductUniqueSKU(t *testing.T) {
	svc := newProductServiceTest(t)

	product, err := svc.CreateProduct(validProductInput("PRD-TEST-02"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !product.InStock {
		t.Fatalf("want in stock for positive quantity")
	}

	if _, err := svc.CreateProduct(validProductInput("PRD-TEST-02")); !errors.Is(err, ErrSKUTaken) {
		t.Fatalf("want ErrSKUTaken, got %v", err)
	}
}

func TestUpdateProductRecomputesInStock(t *testing.T) {
	svc := newProductServiceTest(t)

	product, err := svc.CreateProduct(validProductInput("PRD-TEST-03"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := validProductInput("PRD-TEST-03")
	input.StockQuantity = 0
	updated, err := svc.UpdateProduct(product.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.InStock {
		t.Fatalf("want out of stock after zero quantity")
	}

	if _, err := svc.UpdateProduct(9999, input); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestAddVariantCombinationUnique(t *testing.T) {
	svc := newProductServiceTest(t)

	product, err := svc.CreateProduct(validProductInput("PRD-TEST-04"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.AddVariant(product.ID, VariantInput{Color: "Sage", Size: "M", StockQuantity: 5}); err != nil {
		t.Fatalf("add variant failed: %v", err)
	}
	if _, err := svc.AddVariant(product.ID, VariantInput{Color: " Sage ", Size: "M", StockQuantity: 3}); !errors.Is(err, ErrVariantCombinationTaken) {
		t.Fatalf("want ErrVariantCombinationTaken, got %v", err)
	}
	// A different size on the same color is a new combination.
	if _, err := svc.AddVariant(product.ID, VariantInput{Color: "Sage", Size: "L", StockQuantity: 3}); err != nil {
		t.Fatalf("add second size failed: %v", err)
	}

	variants, err := svc.ListVariants(product.ID)
	if err != nil {
		t.Fatalf("list variants failed: %v", err)
	}
	if len(variants) != 2 {
		t.Fatalf("want 2 variants, got %d", len(variants))
	}
}

func TestListProductsFilters(t *testing.T) {
	svc := newProductServiceTest(t)

	lawn := validProductInput("PRD-TEST-05")
	lawn.Category = constants.CategoryLawnSuits
	lawn.Name = "Gulbahar Lawn 3-Piece"
	if _, err := svc.CreateProduct(lawn); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	bridal := validProductInput("PRD-TEST-06")
	bridal.Category = constants.CategoryBridalCollection
	bridal.Collection = constants.CollectionWedding
	bridal.Name = "Shahbano Bridal Lehnga"
	if _, err := svc.CreateProduct(bridal); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	result, err := svc.ListProducts(ProductListInput{Category: constants.CategoryBridalCollection})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 1 || result.Products[0].Name != "Shahbano Bridal Lehnga" {
		t.Fatalf("unexpected category filter result: %+v", result)
	}

	result, err = svc.ListProducts(ProductListInput{Search: "gulbahar"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if result.Total != 1 || result.Products[0].Name != "Gulbahar Lawn 3-Piece" {
		t.Fatalf("unexpected search result: %+v", result)
	}

	if _, err := svc.ListProducts(ProductListInput{Category: "stitched_suits"}); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("want ErrInvalidCategory, got %v", err)
	}
}

func TestGetProductDetail(t *testing.T) {
	svc := newProductServiceTest(t)

	product, err := svc.CreateProduct(validProductInput("PRD-TEST-07"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.AddVariant(product.ID, VariantInput{Color: "Powder Pink", Size: "S", StockQuantity: 4}); err != nil {
		t.Fatalf("add variant failed: %v", err)
	}
	if _, err := svc.AddImage(product.ID, "/images/products/prd-test-07/front.jpg", true); err != nil {
		t.Fatalf("add image failed: %v", err)
	}

	detail, err := svc.GetProductDetail(product.ID)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if len(detail.Variants) != 1 || len(detail.Images) != 1 {
		t.Fatalf("detail missing relations: variants=%d images=%d", len(detail.Variants), len(detail.Images))
	}
	if !detail.Images[0].IsPrimary {
		t.Fatalf("want primary image")
	}

	if _, err := svc.GetProductDetail(9999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	svc := newProductServiceTest(t)

	product, err := svc.CreateProduct(validProductInput("PRD-TEST-08"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.DeleteProduct(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.DeleteProduct(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound after delete, got %v", err)
	}
}
