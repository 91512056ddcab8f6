package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/libas-next/internal/constants"
	"github.com/libas-next/internal/models"

	"github.com/shopspring/decimal"
)

func createOrder(t *testing.T, repo *GormOrderRepository, orderNo string, userID *uint, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:         orderNo,
		UserID:          userID,
		SessionID:       "sess-" + orderNo,
		Status:          status,
		Total:           models.NewMoneyFromDecimal(decimal.NewFromInt(9000)),
		ShippingAddress: "DHA Phase 5, Karachi",
		BillingAddress:  "DHA Phase 5, Karachi",
		PaymentMethod:   "cod",
	}
	items := []models.OrderItem{
		{ProductID: 1, Quantity: 2, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(4500))},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestUpdateStatusFromGuard(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewOrderRepository(db)
	order := createOrder(t, repo, "LB-R-01", nil, constants.OrderStatusPending)

	affected, err := repo.UpdateStatusFrom(order.ID, constants.OrderStatusPending, constants.OrderStatusProcessing, nil)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("want 1 row affected, got %d", affected)
	}

	// A second mover with the stale from-status must lose.
	affected, err = repo.UpdateStatusFrom(order.ID, constants.OrderStatusPending, constants.OrderStatusCancelled, nil)
	if err != nil {
		t.Fatalf("stale update failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("stale from-status won, affected=%d", affected)
	}

	reloaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusProcessing {
		t.Fatalf("want processing, got %s", reloaded.Status)
	}
}

func TestUpdateStatusFromExtraColumns(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewOrderRepository(db)
	order := createOrder(t, repo, "LB-R-02", nil, constants.OrderStatusPending)

	now := time.Now()
	affected, err := repo.UpdateStatusFrom(order.ID, constants.OrderStatusPending, constants.OrderStatusCancelled, map[string]interface{}{
		"cancelled_at": now,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("want 1 row affected, got %d", affected)
	}
	reloaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.CancelledAt == nil {
		t.Fatalf("cancelled_at not written")
	}
}

func TestListByUserFiltersAndPages(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewOrderRepository(db)

	owner := uint(5)
	stranger := uint(6)
	for i := 0; i < 3; i++ {
		createOrder(t, repo, fmt.Sprintf("LB-R-1%d", i), &owner, constants.OrderStatusPending)
	}
	createOrder(t, repo, "LB-R-20", &owner, constants.OrderStatusDelivered)
	createOrder(t, repo, "LB-R-21", &stranger, constants.OrderStatusPending)

	orders, total, err := repo.ListByUser(OrderListFilter{UserID: owner, Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 4 || len(orders) != 2 {
		t.Fatalf("want total=4 page=2, got total=%d len=%d", total, len(orders))
	}
	for _, o := range orders {
		if o.UserID == nil || *o.UserID != owner {
			t.Fatalf("foreign order leaked: %+v", o)
		}
	}
	if len(orders[0].Items) != 1 {
		t.Fatalf("items not preloaded")
	}

	_, total, err = repo.ListByUser(OrderListFilter{UserID: owner, Status: constants.OrderStatusDelivered})
	if err != nil {
		t.Fatalf("status filter failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("want 1 delivered, got %d", total)
	}
}

func TestListAdminFilters(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewOrderRepository(db)

	owner := uint(7)
	createOrder(t, repo, "LB-R-30", &owner, constants.OrderStatusPending)
	createOrder(t, repo, "LB-R-31", nil, constants.OrderStatusPending)

	_, total, err := repo.ListAdmin(OrderListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("want 2 orders, got %d", total)
	}

	orders, total, err := repo.ListAdmin(OrderListFilter{OrderNo: "LB-R-31"})
	if err != nil {
		t.Fatalf("order-no filter failed: %v", err)
	}
	if total != 1 || orders[0].UserID != nil {
		t.Fatalf("order-no filter wrong: total=%d", total)
	}
}
