package repository

import (
	"errors"

	"github.com/b2b-bazaar/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	EnsureMirror(user *models.User) (*models.User, error)
	UpdateRole(id uint, role string) error
	WithTx(tx *gorm.DB) *GormUserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) *GormUserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdateRole 更新用户角色
func (r *GormUserRepository) UpdateRole(id uint, role string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("role", role).Error
}

// EnsureMirror 按 ID 写入用户镜像，已存在时返回现有记录
func (r *GormUserRepository) EnsureMirror(user *models.User) (*models.User, error) {
	if user == nil || user.ID == 0 {
		return nil, nil
	}
	var existing models.User
	err := r.db.Where(models.User{ID: user.ID}).Attrs(models.User{
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		Status: user.Status,
	}).FirstOrCreate(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}
