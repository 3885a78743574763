package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/repository"
)

// CreateEnquiryInput 创建询盘输入
type CreateEnquiryInput struct {
	UserID    uint
	ProductID uint
	Name      string
	Email     string
	Company   string
	Phone     string
	Subject   string
	Message   string
	Quantity  int
}

// EnquiryService 询盘服务
type EnquiryService struct {
	enquiryRepo repository.EnquiryRepository
	productRepo repository.ProductRepository
}

// NewEnquiryService 创建询盘服务
func NewEnquiryService(enquiryRepo repository.EnquiryRepository, productRepo repository.ProductRepository) *EnquiryService {
	return &EnquiryService{
		enquiryRepo: enquiryRepo,
		productRepo: productRepo,
	}
}

// Create 提交询盘
func (s *EnquiryService) Create(input CreateEnquiryInput) (*models.Enquiry, error) {
	email, ok := normalizeEmail(input.Email)
	if !ok {
		return nil, fmt.Errorf("%w: email", ErrEnquiryInvalid)
	}
	name, ok := limitText(input.Name, 120)
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: name", ErrEnquiryInvalid)
	}
	subject, ok := limitText(input.Subject, 255)
	if !ok || subject == "" {
		return nil, fmt.Errorf("%w: subject", ErrEnquiryInvalid)
	}
	message, ok := limitText(input.Message, 5000)
	if !ok || message == "" {
		return nil, fmt.Errorf("%w: message", ErrEnquiryInvalid)
	}
	if input.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	enquiry := &models.Enquiry{
		Name:     name,
		Email:    email,
		Company:  strings.TrimSpace(input.Company),
		Phone:    strings.TrimSpace(input.Phone),
		Subject:  subject,
		Message:  message,
		Quantity: input.Quantity,
		Status:   constants.EnquiryStatusNew,
	}
	if input.UserID != 0 {
		userID := input.UserID
		enquiry.UserID = &userID
	}
	if input.ProductID != 0 {
		product, err := s.productRepo.GetByID(input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		productID := product.ID
		enquiry.ProductID = &productID
	}
	if err := s.enquiryRepo.Create(enquiry); err != nil {
		return nil, err
	}
	logger.Infow("enquiry_created", "enquiry_id", enquiry.ID, "user_id", input.UserID, "product_id", input.ProductID)
	return enquiry, nil
}

// ListMine 用户自己的询盘
func (s *EnquiryService) ListMine(userID uint, page, pageSize int) ([]models.Enquiry, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidRequest
	}
	return s.enquiryRepo.List(repository.EnquiryListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

// ListForAdmin 管理端询盘列表
func (s *EnquiryService) ListForAdmin(filter repository.EnquiryListFilter) ([]models.Enquiry, int64, error) {
	return s.enquiryRepo.List(filter)
}

// Respond 管理员回复询盘，new → responded
func (s *EnquiryService) Respond(adminID, enquiryID uint, message string) (*models.Enquiry, error) {
	message, ok := limitText(message, 5000)
	if !ok || message == "" {
		return nil, fmt.Errorf("%w: response message", ErrEnquiryInvalid)
	}
	now := time.Now()
	responder := adminID
	return s.transition(enquiryID, []string{constants.EnquiryStatusNew}, map[string]interface{}{
		"status":                constants.EnquiryStatusResponded,
		"response_message":      message,
		"response_responded_by": &responder,
		"response_responded_at": now,
		"updated_at":            now,
	})
}

// Close 关闭询盘，new/responded → closed
func (s *EnquiryService) Close(adminID, enquiryID uint) (*models.Enquiry, error) {
	now := time.Now()
	enquiry, err := s.transition(enquiryID, []string{constants.EnquiryStatusNew, constants.EnquiryStatusResponded}, map[string]interface{}{
		"status":     constants.EnquiryStatusClosed,
		"closed_at":  now,
		"updated_at": now,
	})
	if err == nil {
		logger.Infow("enquiry_closed", "enquiry_id", enquiryID, "admin_id", adminID)
	}
	return enquiry, err
}

func (s *EnquiryService) transition(enquiryID uint, from []string, updates map[string]interface{}) (*models.Enquiry, error) {
	existing, err := s.enquiryRepo.GetByID(enquiryID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrEnquiryNotFound
	}
	ok, err := s.enquiryRepo.TransitionStatus(enquiryID, from, updates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEnquiryStatusInvalid
	}
	return s.enquiryRepo.GetByID(enquiryID)
}
