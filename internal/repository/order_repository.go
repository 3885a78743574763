package repository

import (
	"errors"
	"time"

	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id uint, userID uint) (*models.Order, error)
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	ListExpiredPending(before time.Time, limit int) ([]models.Order, error)
	TransitionStatus(id uint, from string, updates map[string]interface{}) (bool, error)
	AppendHistory(entry *models.OrderStatusHistory) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withDetail(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") })
}

// Create 创建订单（订单项与首条状态记录随关联一并写入）
func (r *GormOrderRepository) Create(order *models.Order) error {
	if order == nil {
		return nil
	}
	return r.db.Create(order).Error
}

// GetByID 根据 ID 获取订单
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

// GetByIDAndUser 获取用户自己的订单
func (r *GormOrderRepository) GetByIDAndUser(id uint, userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.withDetail(r.db).Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNumber 根据订单编号获取订单
func (r *GormOrderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	}).Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser 获取用户订单列表
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNumber != "" {
		condition, args := anyColumnLike(r.db, filter.OrderNumber, "order_number")
		query = query.Where(condition, args...)
	}
	return r.list(query, filter)
}

// ListAdmin 管理端订单列表
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNumber != "" {
		query = query.Where("order_number = ?", filter.OrderNumber)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return r.list(query, filter)
}

func (r *GormOrderRepository) list(query *gorm.DB, filter OrderListFilter) ([]models.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := query.Preload("Items").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListExpiredPending 获取超时未支付的待处理订单
func (r *GormOrderRepository) ListExpiredPending(before time.Time, limit int) ([]models.Order, error) {
	query := r.db.Model(&models.Order{}).
		Where("status = ? AND created_at < ?", constants.OrderStatusPending, before).
		Where("payment_status <> ?", constants.PaymentStatusCompleted).
		Order("id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// TransitionStatus 条件更新订单状态，仅当当前状态等于 from 时生效
// 返回 false 表示状态已被其他请求修改
func (r *GormOrderRepository) TransitionStatus(id uint, from string, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["version"] = gorm.Expr("version + 1")
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Order{}).Where("id = ? AND status = ?", id, from).Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AppendHistory 追加状态时间线
func (r *GormOrderRepository) AppendHistory(entry *models.OrderStatusHistory) error {
	if entry == nil {
		return nil
	}
	return r.db.Create(entry).Error
}
