package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/b2b-bazaar/internal/cache"
	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/repository"

	"gorm.io/gorm"
)

// SupplierApplyInput 供应商入驻申请
type SupplierApplyInput struct {
	CompanyName  string
	ContactName  string
	Email        string
	Phone        string
	BusinessType string
	GSTNumber    string
	Address      string
	Description  string
}

// SupplierDecisionInput 审核输入
type SupplierDecisionInput struct {
	Comment string
	UserID  uint // 仅审核通过时使用，可选
}

// SupplierService 供应商入驻服务
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	userRepo     repository.UserRepository
}

// NewSupplierService 创建供应商服务
func NewSupplierService(supplierRepo repository.SupplierRepository, userRepo repository.UserRepository) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		userRepo:     userRepo,
	}
}

// Apply 提交入驻申请，同一邮箱存在未拒绝申请时拒绝重复提交
func (s *SupplierService) Apply(input SupplierApplyInput) (*models.Supplier, error) {
	email, ok := normalizeEmail(input.Email)
	if !ok {
		return nil, fmt.Errorf("%w: email", ErrSupplierInvalid)
	}
	company, ok := limitText(input.CompanyName, 255)
	if !ok || company == "" {
		return nil, fmt.Errorf("%w: company_name", ErrSupplierInvalid)
	}
	contact, ok := limitText(input.ContactName, 120)
	if !ok || contact == "" {
		return nil, fmt.Errorf("%w: contact_name", ErrSupplierInvalid)
	}
	phone, ok := limitText(input.Phone, 32)
	if !ok || phone == "" {
		return nil, fmt.Errorf("%w: phone", ErrSupplierInvalid)
	}

	existing, err := s.supplierRepo.FindOpenByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSupplierDuplicate
	}

	supplier := &models.Supplier{
		CompanyName:  company,
		ContactName:  contact,
		Email:        email,
		Phone:        phone,
		BusinessType: strings.TrimSpace(input.BusinessType),
		GSTNumber:    strings.ToUpper(strings.TrimSpace(input.GSTNumber)),
		Address:      strings.TrimSpace(input.Address),
		Description:  strings.TrimSpace(input.Description),
		Status:       constants.SupplierStatusPending,
	}
	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	logger.Infow("supplier_applied", "supplier_id", supplier.ID, "email", email)
	return supplier, nil
}

// ListForAdmin 管理端申请列表
func (s *SupplierService) ListForAdmin(filter repository.SupplierListFilter) ([]models.Supplier, int64, error) {
	return s.supplierRepo.List(filter)
}

// Approve 审核通过，可选关联平台账号并授予供应商角色
// 已关联的账号不会被清除或替换
func (s *SupplierService) Approve(adminID, supplierID uint, input SupplierDecisionInput) (*models.Supplier, error) {
	return s.decide(adminID, supplierID, constants.SupplierStatusApproved, input)
}

// Reject 审核拒绝
func (s *SupplierService) Reject(adminID, supplierID uint, comment string) (*models.Supplier, error) {
	return s.decide(adminID, supplierID, constants.SupplierStatusRejected, SupplierDecisionInput{Comment: comment})
}

func (s *SupplierService) decide(adminID, supplierID uint, target string, input SupplierDecisionInput) (*models.Supplier, error) {
	comment, ok := limitText(input.Comment, 1000)
	if !ok {
		return nil, fmt.Errorf("%w: comment", ErrSupplierInvalid)
	}
	supplier, err := s.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, ErrSupplierNotFound
	}
	if supplier.Status != constants.SupplierStatusPending {
		return nil, ErrSupplierStatusInvalid
	}

	now := time.Now()
	decidedBy := adminID
	updates := map[string]interface{}{
		"status":              target,
		"decision_comment":    comment,
		"decision_decided_by": &decidedBy,
		"decision_decided_at": now,
		"updated_at":          now,
	}

	linkUserID := uint(0)
	if target == constants.SupplierStatusApproved {
		if supplier.UserID != nil {
			linkUserID = *supplier.UserID
		} else if input.UserID != 0 {
			linkUserID = input.UserID
			updates["user_id"] = &linkUserID
		}
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		var user *models.User
		if linkUserID != 0 {
			found, err := userRepo.GetByID(linkUserID)
			if err != nil {
				return err
			}
			if found == nil {
				return ErrUserNotFound
			}
			user = found
		}
		applied, err := s.supplierRepo.WithTx(tx).TransitionStatus(supplier.ID, constants.SupplierStatusPending, updates)
		if err != nil {
			return err
		}
		if !applied {
			return ErrSupplierStatusInvalid
		}
		if user != nil && user.Role == constants.UserRoleBuyer {
			return userRepo.UpdateRole(user.ID, constants.UserRoleSupplier)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if linkUserID != 0 {
		if err := cache.DelUserAuthState(context.Background(), linkUserID); err != nil {
			logger.Warnw("user_auth_state_cache_invalidate_failed", "user_id", linkUserID, "error", err)
		}
	}
	logger.Infow("supplier_decided",
		"supplier_id", supplier.ID,
		"status", target,
		"admin_id", adminID,
		"user_id", linkUserID,
	)
	return s.supplierRepo.GetByID(supplier.ID)
}
