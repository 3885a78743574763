package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/b2b-bazaar/internal/models"

	"gorm.io/gorm"
)

// EnquiryRepository 询盘数据访问接口
type EnquiryRepository interface {
	Create(enquiry *models.Enquiry) error
	GetByID(id uint) (*models.Enquiry, error)
	List(filter EnquiryListFilter) ([]models.Enquiry, int64, error)
	TransitionStatus(id uint, from []string, updates map[string]interface{}) (bool, error)
}

// GormEnquiryRepository GORM 实现
type GormEnquiryRepository struct {
	db *gorm.DB
}

// NewEnquiryRepository 创建询盘仓库
func NewEnquiryRepository(db *gorm.DB) *GormEnquiryRepository {
	return &GormEnquiryRepository{db: db}
}

// Create 创建询盘
func (r *GormEnquiryRepository) Create(enquiry *models.Enquiry) error {
	return r.db.Create(enquiry).Error
}

// GetByID 根据 ID 获取询盘
func (r *GormEnquiryRepository) GetByID(id uint) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	if err := r.db.Preload("Product").First(&enquiry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &enquiry, nil
}

// List 询盘列表，UserID 非零时只返回该用户的询盘
func (r *GormEnquiryRepository) List(filter EnquiryListFilter) ([]models.Enquiry, int64, error) {
	query := r.db.Model(&models.Enquiry{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, args := anyColumnLike(r.db, search, "subject", "email", "company")
		query = query.Where(condition, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var enquiries []models.Enquiry
	if err := query.Order("id desc").Find(&enquiries).Error; err != nil {
		return nil, 0, err
	}
	return enquiries, total, nil
}

// TransitionStatus 条件更新询盘状态，当前状态需在 from 中
func (r *GormEnquiryRepository) TransitionStatus(id uint, from []string, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Enquiry{}).Where("id = ? AND status IN ?", id, from).Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
