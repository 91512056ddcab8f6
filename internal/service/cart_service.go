package service

import (
	"sort"

	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService owns session and user carts.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates the cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// CartDetail is the cart payload returned to clients.
type CartDetail struct {
	Cart      *models.Cart      `json:"cart"`
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Subtotal  models.Money      `json:"subtotal"`
}

// AddItemInput is the add-to-cart request.
type AddItemInput struct {
	ProductID uint `json:"product_id"`
	VariantID uint `json:"variant_id"`
	Quantity  int  `json:"quantity"`
}

// ResolveCart returns the caller's cart, creating it on first touch.
// Authenticated callers get their user cart; everyone else gets the
// session cart.
func (s *CartService) ResolveCart(sessionID string, userID *uint) (*models.Cart, error) {
	if userID != nil {
		cart, err := s.cartRepo.GetByUserID(*userID)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
	}
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	cart, err := s.cartRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		if userID == nil || (cart.UserID != nil && *cart.UserID == *userID) {
			return cart, nil
		}
		if cart.UserID == nil {
			if err := s.cartRepo.AssignUser(cart.ID, *userID); err != nil {
				return nil, err
			}
			cart.UserID = userID
			return cart, nil
		}
		// The session cart was already claimed by another account. Mint
		// the caller a cart of their own instead of handing that one over;
		// session ids are unique per cart, so it gets a fresh one.
		cart = &models.Cart{
			SessionID: uuid.NewString(),
			UserID:    userID,
		}
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, err
		}
		return cart, nil
	}
	cart = &models.Cart{
		SessionID: sessionID,
		UserID:    userID,
	}
	if err := s.cartRepo.Create(cart); err != nil {
		// Lost a create race with a concurrent request for the same session.
		existing, findErr := s.cartRepo.GetBySessionID(sessionID)
		if findErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return cart, nil
}

// GetCart returns the cart with line detail.
func (s *CartService) GetCart(sessionID string, userID *uint) (*CartDetail, error) {
	cart, err := s.ResolveCart(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(cart)
}

// AddItem puts a product line into the cart. Re-adding the same
// (product, variant) pair merges quantities into the existing line. The
// unit price is captured at add-time and does not move with later
// catalog edits.
func (s *CartService) AddItem(sessionID string, userID *uint, input AddItemInput) (*CartDetail, error) {
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.InStock {
		return nil, ErrProductOutOfStock
	}

	unitPrice := product.EffectivePrice()
	if input.VariantID != 0 {
		variant, err := s.productRepo.GetVariant(input.VariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, ErrVariantNotFound
		}
		if variant.ProductID != product.ID {
			return nil, ErrVariantMismatch
		}
		if !variant.InStock {
			return nil, ErrVariantOutOfStock
		}
		if variant.PriceOverride != nil {
			unitPrice = *variant.PriceOverride
		}
	}

	cart, err := s.ResolveCart(sessionID, userID)
	if err != nil {
		return nil, err
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: input.ProductID,
		VariantID: input.VariantID,
		Quantity:  input.Quantity,
		UnitPrice: unitPrice,
	}
	if err := s.cartRepo.UpsertLine(item); err != nil {
		return nil, err
	}
	return s.buildDetail(cart)
}

// UpdateItemQuantity replaces a line's quantity.
func (s *CartService) UpdateItemQuantity(sessionID string, userID *uint, itemID uint, quantity int) (*CartDetail, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	cart, item, err := s.resolveOwnedItem(sessionID, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.buildDetail(cart)
}

// RemoveItem drops a line from the cart. Removing a line that is already
// gone succeeds.
func (s *CartService) RemoveItem(sessionID string, userID *uint, itemID uint) (*CartDetail, error) {
	cart, err := s.ResolveCart(sessionID, userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item != nil && item.CartID == cart.ID {
		if err := s.cartRepo.DeleteItem(item.ID); err != nil {
			return nil, err
		}
	}
	return s.buildDetail(cart)
}

// ClearCart drops every line from the cart.
func (s *CartService) ClearCart(sessionID string, userID *uint) (*CartDetail, error) {
	cart, err := s.ResolveCart(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		return nil, err
	}
	return s.buildDetail(cart)
}

func (s *CartService) resolveOwnedItem(sessionID string, userID *uint, itemID uint) (*models.Cart, *models.CartItem, error) {
	cart, err := s.ResolveCart(sessionID, userID)
	if err != nil {
		return nil, nil, err
	}
	item, err := s.cartRepo.GetItem(itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil || item.CartID != cart.ID {
		return nil, nil, ErrCartItemNotFound
	}
	return cart, item, nil
}

func (s *CartService) buildDetail(cart *models.Cart) (*CartDetail, error) {
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	detail := &CartDetail{
		Cart:     cart,
		Items:    items,
		Subtotal: models.NewMoneyFromDecimal(decimal.Zero),
	}
	subtotal := decimal.Zero
	for _, item := range items {
		detail.ItemCount += item.Quantity
		subtotal = subtotal.Add(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	detail.Subtotal = models.NewMoneyFromDecimal(subtotal)
	return detail, nil
}

// MergeCartLines unions two cart line sets keyed by (product, variant).
// Quantities of colliding lines are summed and the guest line's frozen
// unit price wins. Both inputs are left untouched; the result is ordered
// by product then variant so merges are reproducible.
func MergeCartLines(guestLines, userLines []models.CartItem) []models.CartItem {
	type lineKey struct {
		productID uint
		variantID uint
	}

	merged := make(map[lineKey]models.CartItem, len(guestLines)+len(userLines))
	for _, line := range userLines {
		key := lineKey{productID: line.ProductID, variantID: line.VariantID}
		merged[key] = models.CartItem{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}
	for _, line := range guestLines {
		key := lineKey{productID: line.ProductID, variantID: line.VariantID}
		if existing, ok := merged[key]; ok {
			existing.Quantity += line.Quantity
			existing.UnitPrice = line.UnitPrice
			merged[key] = existing
			continue
		}
		merged[key] = models.CartItem{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	result := make([]models.CartItem, 0, len(merged))
	for _, line := range merged {
		result = append(result, line)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ProductID != result[j].ProductID {
			return result[i].ProductID < result[j].ProductID
		}
		return result[i].VariantID < result[j].VariantID
	})
	return result
}
