package repository

import (
	"errors"
	"time"

	"github.com/b2b-bazaar/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	Create(cart *models.Cart) error
	Save(cart *models.Cart, expectedVersion int) error
	ClearByUser(userID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser 获取用户购物车（含购物车项，按加入顺序）
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	}).Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建空购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	if cart == nil {
		return nil
	}
	return r.db.Omit("Items").Create(cart).Error
}

// Save 以乐观锁方式整体写回购物车项与汇总
// 版本不匹配时返回 ErrVersionConflict，不做任何修改
func (r *GormCartRepository) Save(cart *models.Cart, expectedVersion int) error {
	if cart == nil {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Cart{}).
			Where("id = ? AND version = ?", cart.ID, expectedVersion).
			Updates(map[string]interface{}{
				"total_items": cart.TotalItems,
				"total_price": cart.TotalPrice,
				"version":     gorm.Expr("version + 1"),
				"updated_at":  time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range cart.Items {
			cart.Items[i].ID = 0
			cart.Items[i].CartID = cart.ID
		}
		if len(cart.Items) > 0 {
			if err := tx.Create(&cart.Items).Error; err != nil {
				return err
			}
		}
		cart.Version = expectedVersion + 1
		return nil
	})
}

// ClearByUser 清空用户购物车（保留购物车本身）
func (r *GormCartRepository) ClearByUser(userID uint) error {
	var cart models.Cart
	result := r.db.Where("user_id = ?", userID).Limit(1).Find(&cart)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return nil
	}
	if err := r.db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.db.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
		"total_items": 0,
		"total_price": models.Money{},
		"version":     gorm.Expr("version + 1"),
		"updated_at":  time.Now(),
	}).Error
}
