package service

import (
	"time"

	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/repository"
)

// WishlistService owns per-user saved products.
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService creates the wishlist service.
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// WishlistDetail is the wishlist payload returned to clients.
type WishlistDetail struct {
	Wishlist *models.Wishlist      `json:"wishlist"`
	Items    []models.WishlistItem `json:"items"`
}

// ResolveWishlist returns the user's wishlist, creating it on first
// touch.
func (s *WishlistService) ResolveWishlist(userID uint) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if wishlist != nil {
		return wishlist, nil
	}
	wishlist = &models.Wishlist{UserID: userID}
	if err := s.wishlistRepo.Create(wishlist); err != nil {
		existing, findErr := s.wishlistRepo.GetByUserID(userID)
		if findErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return wishlist, nil
}

// GetWishlist returns the wishlist with saved products, most recently
// saved first.
func (s *WishlistService) GetWishlist(userID uint) (*WishlistDetail, error) {
	wishlist, err := s.ResolveWishlist(userID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(wishlist)
}

// AddItem saves a product. Saving one that is already on the list
// succeeds without a duplicate row.
func (s *WishlistService) AddItem(userID, productID uint) (*WishlistDetail, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	wishlist, err := s.ResolveWishlist(userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.wishlistRepo.FindItem(wishlist.ID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		item := &models.WishlistItem{
			WishlistID: wishlist.ID,
			ProductID:  productID,
			AddedAt:    time.Now(),
		}
		if err := s.wishlistRepo.AddItem(item); err != nil {
			// Lost an insert race; the unique pair index kept the list
			// duplicate free.
			if recheck, findErr := s.wishlistRepo.FindItem(wishlist.ID, productID); findErr != nil || recheck == nil {
				return nil, err
			}
		}
	}
	return s.buildDetail(wishlist)
}

// RemoveItem drops a saved product from the list.
func (s *WishlistService) RemoveItem(userID, productID uint) (*WishlistDetail, error) {
	wishlist, err := s.ResolveWishlist(userID)
	if err != nil {
		return nil, err
	}
	affected, err := s.wishlistRepo.RemoveItem(wishlist.ID, productID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrWishlistItemNotFound
	}
	return s.buildDetail(wishlist)
}

func (s *WishlistService) buildDetail(wishlist *models.Wishlist) (*WishlistDetail, error) {
	items, err := s.wishlistRepo.ListItems(wishlist.ID)
	if err != nil {
		return nil, err
	}
	return &WishlistDetail{Wishlist: wishlist, Items: items}, nil
}
