package service

import (
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/repository"
)

// CatalogService 商品目录只读服务
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// GetProduct 按 slug 或 ID 获取上架商品
func (s *CatalogService) GetProduct(key string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlugOrID(key)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListProducts 上架商品列表
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.OnlyActive = true
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

// ListCategories 启用的分类
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.ListActive()
}
