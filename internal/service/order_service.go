package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/libas-next/internal/config"
	"github.com/libas-next/internal/constants"
	"github.com/libas-next/internal/logger"
	"github.com/libas-next/internal/models"
	"github.com/libas-next/internal/queue"
	"github.com/libas-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService materializes carts into orders and drives the order
// lifecycle.
type OrderService struct {
	cfg         *config.Config
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	queueClient *queue.Client
}

// NewOrderService creates the order service.
func NewOrderService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		cfg:         cfg,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		queueClient: queueClient,
	}
}

// CreateOrderInput is the checkout request.
type CreateOrderInput struct {
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
	PaymentMethod   string `json:"payment_method"`
}

// allowedTransitions guards every status move.
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
}

func isTransitionAllowed(from, to string) bool {
	nexts, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return nexts[to]
}

// CreateOrder turns the caller's cart into an order. Line prices, stock
// decrements, order rows and the cart wipe all commit in one
// transaction; any stock shortfall rolls back the whole checkout.
func (s *OrderService) CreateOrder(sessionID string, userID *uint, input CreateOrderInput) (*models.Order, error) {
	if strings.TrimSpace(input.ShippingAddress) == "" ||
		strings.TrimSpace(input.BillingAddress) == "" ||
		strings.TrimSpace(input.PaymentMethod) == "" {
		return nil, ErrOrderFieldsRequired
	}

	cart, err := s.resolveCart(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartEmpty
	}
	lines, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:         generateOrderNo(),
		UserID:          userID,
		SessionID:       sessionID,
		Status:          constants.OrderStatusPending,
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		BillingAddress:  strings.TrimSpace(input.BillingAddress),
		PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			unitPrice, err := s.resolveUnitPrice(productRepo, line)
			if err != nil {
				return err
			}

			if line.VariantID != 0 {
				affected, err := productRepo.DecrementVariantStock(line.VariantID, line.Quantity)
				if err != nil {
					return err
				}
				if affected == 0 {
					return ErrInsufficientStock
				}
			}
			affected, err := productRepo.DecrementStock(line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientStock
			}

			total = total.Add(unitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				VariantID: line.VariantID,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
			})
		}

		order.Total = models.NewMoneyFromDecimal(total)
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		return cartRepo.ClearItems(cart.ID)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) ||
			errors.Is(err, ErrProductNotFound) ||
			errors.Is(err, ErrVariantNotFound) {
			return nil, err
		}
		logger.Errorw("order_create_tx_failed",
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil, ErrOrderCreateFailed
	}

	invalidateProductDetails(lines)
	s.enqueueTimeoutCancel(order)

	full, err := s.orderRepo.GetByID(order.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return order, nil
}

// resolveUnitPrice picks the billed unit price for a cart line. The
// frozen policy copies the add-time cart price; the live policy re-reads
// the catalog at checkout.
func (s *OrderService) resolveUnitPrice(productRepo repository.ProductRepository, line models.CartItem) (models.Money, error) {
	if s.pricingPolicy() == constants.PricingPolicyFrozen {
		return line.UnitPrice, nil
	}

	product, err := productRepo.GetByID(line.ProductID)
	if err != nil {
		return models.Money{}, err
	}
	if product == nil {
		return models.Money{}, ErrProductNotFound
	}
	price := product.EffectivePrice()
	if line.VariantID != 0 {
		variant, err := productRepo.GetVariant(line.VariantID)
		if err != nil {
			return models.Money{}, err
		}
		if variant == nil {
			return models.Money{}, ErrVariantNotFound
		}
		if variant.PriceOverride != nil {
			price = *variant.PriceOverride
		}
	}
	return price, nil
}

func (s *OrderService) pricingPolicy() string {
	if s.cfg != nil && s.cfg.Order.PricingPolicy == constants.PricingPolicyLive {
		return constants.PricingPolicyLive
	}
	return constants.PricingPolicyFrozen
}

func (s *OrderService) resolveExpireMinutes() int {
	if s.cfg != nil && s.cfg.Order.PendingExpireMinutes > 0 {
		return s.cfg.Order.PendingExpireMinutes
	}
	return 60
}

func (s *OrderService) enqueueTimeoutCancel(order *models.Order) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	delay := time.Duration(s.resolveExpireMinutes()) * time.Minute
	if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{
		OrderID: order.ID,
	}, delay); err != nil {
		logger.Warnw("order_enqueue_timeout_cancel_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
}

func (s *OrderService) resolveCart(sessionID string, userID *uint) (*models.Cart, error) {
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
	// A session cart claimed by an account is only drainable by that
	// account.
	if cart != nil && cart.UserID != nil && (userID == nil || *cart.UserID != *userID) {
		return nil, nil
	}
	return cart, nil
}

// GetOrderForUser fetches one order and enforces ownership.
func (s *OrderService) GetOrderForUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

// ListOrdersByUser pages through a user's order history, newest first.
func (s *OrderService) ListOrdersByUser(userID uint, page, pageSize int, status string) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   status,
	})
}

// ListOrdersAdmin pages through all orders for the back office.
func (s *OrderService) ListOrdersAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderByID fetches one order without an ownership check.
func (s *OrderService) GetOrderByID(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// AdvanceStatus moves an order along the lifecycle. Moves to cancelled
// put the reserved stock back.
func (s *OrderService) AdvanceStatus(orderID uint, toStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isTransitionAllowed(order.Status, toStatus) {
		return nil, ErrInvalidStatusTransition
	}

	if toStatus == constants.OrderStatusCancelled {
		if err := s.cancelOrder(order); err != nil {
			return nil, err
		}
		return s.orderRepo.GetByID(order.ID)
	}

	affected, err := s.orderRepo.UpdateStatusFrom(order.ID, order.Status, toStatus, nil)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Lost the guard race; re-read to report the current state.
		return nil, ErrInvalidStatusTransition
	}
	return s.orderRepo.GetByID(order.ID)
}

// CancelExpiredOrder cancels a pending order whose payment window has
// passed and restores its stock. Orders that already moved on are left
// alone.
func (s *OrderService) CancelExpiredOrder(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPending {
		return order, nil
	}
	if err := s.cancelOrder(order); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// cancelOrder flips the order to cancelled and restores item stock in
// one transaction. The conditional status update makes concurrent
// cancels idempotent.
func (s *OrderService) cancelOrder(order *models.Order) error {
	now := time.Now()
	restored := make(map[uint]bool)
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		affected, err := orderRepo.UpdateStatusFrom(order.ID, order.Status, constants.OrderStatusCancelled, map[string]interface{}{
			"cancelled_at": now,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}

		items := order.Items
		if len(items) == 0 {
			items, err = orderRepo.ListItems(order.ID)
			if err != nil {
				return err
			}
		}
		for _, item := range items {
			if err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
			if item.VariantID != 0 {
				if err := productRepo.RestoreVariantStock(item.VariantID, item.Quantity); err != nil {
					return err
				}
			}
			restored[item.ProductID] = true
		}
		return nil
	})
	if err != nil {
		return err
	}
	for productID := range restored {
		invalidateProductDetail(productID)
	}
	return nil
}

// invalidateProductDetails drops the cached detail for every distinct
// product in a checkout's lines.
func invalidateProductDetails(lines []models.CartItem) {
	seen := make(map[uint]bool, len(lines))
	for _, line := range lines {
		if seen[line.ProductID] {
			continue
		}
		seen[line.ProductID] = true
		invalidateProductDetail(line.ProductID)
	}
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("LB%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
