package repository

import (
	"time"

	"github.com/b2b-bazaar/internal/models"

	"gorm.io/gorm"
)

// CounterRepository 原子计数器接口
type CounterRepository interface {
	Next(name string) (int64, error)
	WithTx(tx *gorm.DB) *GormCounterRepository
}

// GormCounterRepository GORM 实现
type GormCounterRepository struct {
	db *gorm.DB
}

// NewCounterRepository 创建计数器仓库
func NewCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCounterRepository) WithTx(tx *gorm.DB) *GormCounterRepository {
	if tx == nil {
		return r
	}
	return &GormCounterRepository{db: tx}
}

// Next 自增并返回新值
// 先执行 UPDATE 获取行锁，再在同一连接上读取，调用方应在事务内使用
func (r *GormCounterRepository) Next(name string) (int64, error) {
	result := r.db.Model(&models.Counter{}).
		Where("name = ?", name).
		Updates(map[string]interface{}{
			"value":      gorm.Expr("value + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		counter := models.Counter{Name: name, Value: 1}
		if err := r.db.Create(&counter).Error; err != nil {
			return 0, err
		}
		return counter.Value, nil
	}

	var counter models.Counter
	if err := r.db.Where("name = ?", name).First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.Value, nil
}
