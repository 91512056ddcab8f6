package repository

import (
	"errors"
	"time"

	"github.com/libas-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	ListItems(orderID uint) ([]models.OrderItem, error)
	UpdateStatusFrom(id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withDetail(query *gorm.DB) *gorm.DB {
	return query.Preload("Items").Preload("Items.Product").Preload("Items.Variant")
}

// Create inserts the order header and its line snapshots.
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches an order with line detail.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withDetail(r.db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo fetches an order by its public number.
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.withDetail(r.db).Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser returns a user's orders, newest first.
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no LIKE ?", "%"+filter.OrderNo+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := r.withDetail(query).Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAdmin returns orders across all owners.
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := r.withDetail(query).Order("id DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListItems returns the line snapshots of an order.
func (r *GormOrderRepository) ListItems(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.Preload("Product").Preload("Variant").
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatusFrom advances the status only when the row still carries
// fromStatus; the affected-row count tells the caller whether the
// transition won.
func (r *GormOrderRepository) UpdateStatusFrom(id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = toStatus
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
