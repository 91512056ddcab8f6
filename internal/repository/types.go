package repository

import "time"

// ProductListFilter filters the catalog listing.
type ProductListFilter struct {
	Limit       int
	Offset      int
	Category    string
	Collection  string
	Featured    *bool
	BestSeller  *bool
	NewArrival  *bool
	Search      string
	InStockOnly bool
}

// OrderListFilter filters order listings.
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
