package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/models"

	"gorm.io/gorm"
)

// SupplierRepository 供应商数据访问接口
type SupplierRepository interface {
	Create(supplier *models.Supplier) error
	GetByID(id uint) (*models.Supplier, error)
	FindOpenByEmail(email string) (*models.Supplier, error)
	List(filter SupplierListFilter) ([]models.Supplier, int64, error)
	TransitionStatus(id uint, from string, updates map[string]interface{}) (bool, error)
	WithTx(tx *gorm.DB) *GormSupplierRepository
}

// GormSupplierRepository GORM 实现
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository 创建供应商仓库
func NewSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSupplierRepository) WithTx(tx *gorm.DB) *GormSupplierRepository {
	if tx == nil {
		return r
	}
	return &GormSupplierRepository{db: tx}
}

// Create 创建入驻申请
func (r *GormSupplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

// GetByID 根据 ID 获取供应商
func (r *GormSupplierRepository) GetByID(id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

// FindOpenByEmail 查找该邮箱待审核或已通过的申请
func (r *GormSupplierRepository) FindOpenByEmail(email string) (*models.Supplier, error) {
	var supplier models.Supplier
	result := r.db.Where("email = ? AND status IN ?", strings.ToLower(strings.TrimSpace(email)), []string{
		constants.SupplierStatusPending,
		constants.SupplierStatusApproved,
	}).Limit(1).Find(&supplier)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &supplier, nil
}

// List 供应商列表
func (r *GormSupplierRepository) List(filter SupplierListFilter) ([]models.Supplier, int64, error) {
	query := r.db.Model(&models.Supplier{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, args := anyColumnLike(r.db, search, "company_name", "email", "contact_name")
		query = query.Where(condition, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var suppliers []models.Supplier
	if err := query.Order("id desc").Find(&suppliers).Error; err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}

// TransitionStatus 条件更新审核状态
func (r *GormSupplierRepository) TransitionStatus(id uint, from string, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Supplier{}).Where("id = ? AND status = ?", id, from).Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
