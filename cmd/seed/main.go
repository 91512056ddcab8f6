// Command seed loads a starter catalog into the database. It is safe to run
// repeatedly: products are keyed by SKU and existing rows are left alone.
package main

import (
	"errors"
	"fmt"

	"github.com/libas-next/internal/config"
	"github.com/libas-next/internal/constants"
	"github.com/libas-next/internal/logger"
	"github.com/libas-next/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedVariant struct {
	Color string
	Size  string
	Stock int
}

type seedProduct struct {
	SKU        string
	Name       string
	Desc       string
	Price      string
	SalePrice  string
	Category   string
	Collection string
	Stock      int
	Featured   bool
	BestSeller bool
	NewArrival bool
	Thumbnail  string
	Images     []string
	Variants   []seedVariant
}

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.Server.Mode, logger.Options{
		Dir:      cfg.Log.Dir,
		Filename: "seed.log",
	})
	defer func() { _ = log.Sync() }()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{}); err != nil {
		logger.S().Fatalw("database init failed", "error", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.S().Fatalw("database migration failed", "error", err)
	}

	created, skipped := 0, 0
	for _, sp := range catalog() {
		ok, err := seedOne(sp)
		if err != nil {
			logger.S().Fatalw("seed failed", "sku", sp.SKU, "error", err)
		}
		if ok {
			created++
		} else {
			skipped++
		}
	}
	logger.S().Infow("seed finished", "created", created, "skipped", skipped)
}

func seedOne(sp seedProduct) (bool, error) {
	var existing models.Product
	err := models.DB.Where("sku = ?", sp.SKU).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	price, err := decimal.NewFromString(sp.Price)
	if err != nil {
		return false, fmt.Errorf("price for %s: %w", sp.SKU, err)
	}
	product := models.Product{
		SKU:            sp.SKU,
		Name:           sp.Name,
		Description:    sp.Desc,
		Price:          models.NewMoneyFromDecimal(price),
		Category:       sp.Category,
		Collection:     sp.Collection,
		InStock:        sp.Stock > 0,
		StockQuantity:  sp.Stock,
		Featured:       sp.Featured,
		BestSeller:     sp.BestSeller,
		NewArrival:     sp.NewArrival,
		ThumbnailImage: sp.Thumbnail,
	}
	if sp.SalePrice != "" {
		sale, err := decimal.NewFromString(sp.SalePrice)
		if err != nil {
			return false, fmt.Errorf("sale price for %s: %w", sp.SKU, err)
		}
		m := models.NewMoneyFromDecimal(sale)
		product.SalePrice = &m
	}

	return true, models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		for i, url := range sp.Images {
			img := models.ProductImage{
				ProductID: product.ID,
				ImageURL:  url,
				IsPrimary: i == 0,
			}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}
		for _, sv := range sp.Variants {
			v := models.ProductVariant{
				ProductID:     product.ID,
				Color:         sv.Color,
				Size:          sv.Size,
				InStock:       sv.Stock > 0,
				StockQuantity: sv.Stock,
			}
			if err := tx.Create(&v).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func sizes(colors []string, stockPerVariant int) []seedVariant {
	var out []seedVariant
	for _, c := range colors {
		for _, s := range []string{"S", "M", "L", "XL"} {
			out = append(out, seedVariant{Color: c, Size: s, Stock: stockPerVariant})
		}
	}
	return out
}

func catalog() []seedProduct {
	return []seedProduct{
		{
			SKU:        "LWN-GUL-001",
			Name:       "Gulbahar Lawn 3-Piece",
			Desc:       "Unstitched 3-piece lawn suit with printed shirt, dyed trouser and chiffon dupatta.",
			Price:      "4850.00",
			SalePrice:  "3950.00",
			Category:   constants.CategoryLawnSuits,
			Collection: constants.CollectionSummer,
			Stock:      120,
			BestSeller: true,
			Thumbnail:  "/images/products/lwn-gul-001/thumb.jpg",
			Images: []string{
				"/images/products/lwn-gul-001/front.jpg",
				"/images/products/lwn-gul-001/back.jpg",
			},
			Variants: sizes([]string{"Mint Green", "Coral"}, 15),
		},
		{
			SKU:        "LWN-ZEB-002",
			Name:       "Zebunnisa Lawn 2-Piece",
			Desc:       "Digital printed lawn shirt with matching trouser, light summer wear.",
			Price:      "3250.00",
			Category:   constants.CategoryLawnSuits,
			Collection: constants.CollectionCasual,
			Stock:      80,
			NewArrival: true,
			Thumbnail:  "/images/products/lwn-zeb-002/thumb.jpg",
			Images:     []string{"/images/products/lwn-zeb-002/front.jpg"},
			Variants:   sizes([]string{"Ivory", "Sky Blue"}, 10),
		},
		{
			SKU:        "CHF-NRG-001",
			Name:       "Nargis Chiffon Ensemble",
			Desc:       "Embellished chiffon shirt with grip trouser and heavy dupatta, formal evening wear.",
			Price:      "12500.00",
			Category:   constants.CategoryChiffonSuits,
			Collection: constants.CollectionFestive,
			Stock:      40,
			Featured:   true,
			Thumbnail:  "/images/products/chf-nrg-001/thumb.jpg",
			Images: []string{
				"/images/products/chf-nrg-001/front.jpg",
				"/images/products/chf-nrg-001/detail.jpg",
			},
			Variants: sizes([]string{"Emerald", "Maroon"}, 5),
		},
		{
			SKU:        "CHF-MHR-002",
			Name:       "Mehr Chiffon 3-Piece",
			Desc:       "Sequinned chiffon suit with organza dupatta for festive occasions.",
			Price:      "14800.00",
			SalePrice:  "11900.00",
			Category:   constants.CategoryChiffonSuits,
			Collection: constants.CollectionPremium,
			Stock:      25,
			Thumbnail:  "/images/products/chf-mhr-002/thumb.jpg",
			Images:     []string{"/images/products/chf-mhr-002/front.jpg"},
			Variants:   sizes([]string{"Champagne"}, 6),
		},
		{
			SKU:        "CTN-SBA-001",
			Name:       "Saba Cotton Kurta Set",
			Desc:       "Everyday cotton kurta and trouser, pre-shrunk fabric.",
			Price:      "2850.00",
			Category:   constants.CategoryCottonSuits,
			Collection: constants.CollectionCasual,
			Stock:      150,
			BestSeller: true,
			Thumbnail:  "/images/products/ctn-sba-001/thumb.jpg",
			Images:     []string{"/images/products/ctn-sba-001/front.jpg"},
			Variants:   sizes([]string{"White", "Beige", "Black"}, 12),
		},
		{
			SKU:        "CTN-RHA-002",
			Name:       "Raahat Winter Cotton 3-Piece",
			Desc:       "Brushed cotton suit with shawl dupatta for the winter season.",
			Price:      "5450.00",
			Category:   constants.CategoryCottonSuits,
			Collection: constants.CollectionNewArrivals,
			Stock:      60,
			NewArrival: true,
			Thumbnail:  "/images/products/ctn-rha-002/thumb.jpg",
			Images:     []string{"/images/products/ctn-rha-002/front.jpg"},
			Variants:   sizes([]string{"Rust", "Deep Teal"}, 8),
		},
		{
			SKU:        "EMB-ZRR-001",
			Name:       "Zarreen Embroidered Lawn",
			Desc:       "Schiffli embroidered shirt front with embroidered borders and printed dupatta.",
			Price:      "7950.00",
			SalePrice:  "6750.00",
			Category:   constants.CategoryEmbroideredSuits,
			Collection: constants.CollectionSummer,
			Stock:      70,
			Featured:   true,
			Thumbnail:  "/images/products/emb-zrr-001/thumb.jpg",
			Images: []string{
				"/images/products/emb-zrr-001/front.jpg",
				"/images/products/emb-zrr-001/dupatta.jpg",
			},
			Variants: sizes([]string{"Powder Pink", "Sage"}, 9),
		},
		{
			SKU:        "EMB-KHS-002",
			Name:       "Khas Embroidered Khaddar",
			Desc:       "Heavy embroidered khaddar suit with woven shawl.",
			Price:      "8900.00",
			Category:   constants.CategoryEmbroideredSuits,
			Collection: constants.CollectionBestsellers,
			Stock:      45,
			BestSeller: true,
			Thumbnail:  "/images/products/emb-khs-002/thumb.jpg",
			Images:     []string{"/images/products/emb-khs-002/front.jpg"},
			Variants:   sizes([]string{"Mustard", "Navy"}, 7),
		},
		{
			SKU:        "PRT-BGH-001",
			Name:       "Bagh Printed Lawn 2-Piece",
			Desc:       "Block-print inspired digital lawn shirt with cambric trouser.",
			Price:      "2950.00",
			Category:   constants.CategoryPrintedSuits,
			Collection: constants.CollectionCasual,
			Stock:      200,
			Thumbnail:  "/images/products/prt-bgh-001/thumb.jpg",
			Images:     []string{"/images/products/prt-bgh-001/front.jpg"},
			Variants:   sizes([]string{"Indigo", "Terracotta"}, 18),
		},
		{
			SKU:        "PRT-GLD-002",
			Name:       "Guldasta Printed Silk",
			Desc:       "Floral printed raw silk suit with plain trouser, semi-formal.",
			Price:      "9800.00",
			Category:   constants.CategoryPrintedSuits,
			Collection: constants.CollectionFestive,
			Stock:      30,
			NewArrival: true,
			Thumbnail:  "/images/products/prt-gld-002/thumb.jpg",
			Images:     []string{"/images/products/prt-gld-002/front.jpg"},
			Variants:   sizes([]string{"Onyx"}, 6),
		},
		{
			SKU:        "BRD-SHB-001",
			Name:       "Shahbano Bridal Lehnga",
			Desc:       "Hand-embellished bridal lehnga with zardozi work, blouse and net dupatta.",
			Price:      "185000.00",
			Category:   constants.CategoryBridalCollection,
			Collection: constants.CollectionWedding,
			Stock:      8,
			Featured:   true,
			Thumbnail:  "/images/products/brd-shb-001/thumb.jpg",
			Images: []string{
				"/images/products/brd-shb-001/front.jpg",
				"/images/products/brd-shb-001/detail.jpg",
				"/images/products/brd-shb-001/back.jpg",
			},
			Variants: []seedVariant{
				{Color: "Deep Red", Size: "S", Stock: 2},
				{Color: "Deep Red", Size: "M", Stock: 3},
				{Color: "Rose Gold", Size: "M", Stock: 3},
			},
		},
		{
			SKU:        "BRD-MHN-002",
			Name:       "Mehndi Gharara Set",
			Desc:       "Gota work gharara with short kurti and heavy dupatta for mehndi functions.",
			Price:      "46500.00",
			SalePrice:  "39900.00",
			Category:   constants.CategoryBridalCollection,
			Collection: constants.CollectionWedding,
			Stock:      12,
			Thumbnail:  "/images/products/brd-mhn-002/thumb.jpg",
			Images:     []string{"/images/products/brd-mhn-002/front.jpg"},
			Variants: []seedVariant{
				{Color: "Parrot Green", Size: "S", Stock: 4},
				{Color: "Parrot Green", Size: "M", Stock: 4},
				{Color: "Shocking Pink", Size: "M", Stock: 4},
			},
		},
	}
}
