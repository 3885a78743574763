package service

import (
	"errors"
	"fmt"

	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/repository"
)

const cartMaxRetries = 3

// errCartUnchanged 变更函数未修改购物车，跳过持久化
var errCartUnchanged = errors.New("cart unchanged")

// CartSyncItem 游客购物车合并项
type CartSyncItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	moq         MOQPolicy
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, moq MOQPolicy) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		moq:         moq,
	}
}

// GetOrCreate 获取用户购物车，不存在时创建空购物车
// 读取时清理已删除或已下架的商品行
func (s *CartService) GetOrCreate(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrInvalidRequest
	}
	return s.mutate(userID, func(cart *models.Cart) error {
		pruned, err := s.prune(cart)
		if err != nil {
			return err
		}
		if !pruned {
			return errCartUnchanged
		}
		return nil
	})
}

// Add 加入商品，已存在的行数量累加
// 起订量只校验本次加入的数量
func (s *CartService) Add(userID, productID uint, quantity int) (*models.Cart, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrInvalidRequest
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.loadSellableProduct(productID)
	if err != nil {
		return nil, err
	}
	if err := s.moq.Check(product, quantity); err != nil {
		return nil, err
	}
	return s.mutate(userID, func(cart *models.Cart) error {
		if idx := cart.FindItem(productID); idx >= 0 {
			cart.Items[idx].Quantity += quantity
			return nil
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.UnitPrice(),
			Snapshot:  models.NewProductSnapshot(product),
		})
		return nil
	})
}

// Update 修改数量，数量为 0 时删除该行
// 先确认购物车中存在该行，再校验商品与起订量
func (s *CartService) Update(userID, productID uint, quantity int) (*models.Cart, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrInvalidRequest
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.Remove(userID, productID)
	}
	return s.mutate(userID, func(cart *models.Cart) error {
		idx := cart.FindItem(productID)
		if idx < 0 {
			return ErrCartItemNotFound
		}
		product, err := s.loadSellableProduct(productID)
		if err != nil {
			return err
		}
		if err := s.moq.Check(product, quantity); err != nil {
			return err
		}
		if cart.Items[idx].Quantity == quantity {
			return errCartUnchanged
		}
		cart.Items[idx].Quantity = quantity
		return nil
	})
}

// Remove 删除商品行，不存在时视为成功
func (s *CartService) Remove(userID, productID uint) (*models.Cart, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrInvalidRequest
	}
	return s.mutate(userID, func(cart *models.Cart) error {
		idx := cart.FindItem(productID)
		if idx < 0 {
			return errCartUnchanged
		}
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		return nil
	})
}

// Clear 清空购物车，空购物车时视为成功
func (s *CartService) Clear(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrInvalidRequest
	}
	return s.mutate(userID, func(cart *models.Cart) error {
		if len(cart.Items) == 0 {
			return errCartUnchanged
		}
		cart.Items = nil
		return nil
	})
}

// Sync 合并游客购物车，只累加不覆盖
// 不存在、已下架商品与非正数量静默跳过，不做起订量校验
func (s *CartService) Sync(userID uint, items []CartSyncItem) (*models.Cart, error) {
	if userID == 0 {
		return nil, ErrInvalidRequest
	}
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if item.ProductID != 0 && item.Quantity > 0 {
			ids = append(ids, item.ProductID)
		}
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	sellable := make(map[uint]*models.Product, len(products))
	for i := range products {
		if products[i].IsActive {
			sellable[products[i].ID] = &products[i]
		}
	}

	return s.mutate(userID, func(cart *models.Cart) error {
		changed := false
		for _, item := range items {
			if item.Quantity <= 0 {
				continue
			}
			product, ok := sellable[item.ProductID]
			if !ok {
				continue
			}
			if idx := cart.FindItem(product.ID); idx >= 0 {
				cart.Items[idx].Quantity += item.Quantity
			} else {
				cart.Items = append(cart.Items, models.CartItem{
					ProductID: product.ID,
					Quantity:  item.Quantity,
					Price:     product.UnitPrice(),
					Snapshot:  models.NewProductSnapshot(product),
				})
			}
			changed = true
		}
		if !changed {
			return errCartUnchanged
		}
		return nil
	})
}

// mutate 读取-修改-条件写入，版本冲突时重试
func (s *CartService) mutate(userID uint, fn func(cart *models.Cart) error) (*models.Cart, error) {
	for attempt := 0; attempt < cartMaxRetries; attempt++ {
		cart, err := s.loadOrCreate(userID)
		if err != nil {
			return nil, err
		}
		expectedVersion := cart.Version
		if err := fn(cart); err != nil {
			if errors.Is(err, errCartUnchanged) {
				return cart, nil
			}
			return nil, err
		}
		applyCartTotals(cart)
		err = s.cartRepo.Save(cart, expectedVersion)
		if errors.Is(err, repository.ErrVersionConflict) {
			logger.Debugw("cart_version_conflict_retry", "user_id", userID, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, err)
		}
		return cart, nil
	}
	logger.Warnw("cart_version_conflict_exhausted", "user_id", userID, "retries", cartMaxRetries)
	return nil, ErrCartConflict
}

func (s *CartService) loadOrCreate(userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{UserID: userID, TotalPrice: models.NewMoneyFromInt(0)}
	if createErr := s.cartRepo.Create(cart); createErr != nil {
		// 并发创建时唯一索引冲突，回读已存在的购物车
		existing, err := s.cartRepo.GetByUser(userID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("%w: %v", ErrCartUpdateFailed, createErr)
		}
		return existing, nil
	}
	return cart, nil
}

func (s *CartService) prune(cart *models.Cart) (bool, error) {
	if len(cart.Items) == 0 {
		return false, nil
	}
	ids := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return false, err
	}
	active := make(map[uint]bool, len(products))
	for _, product := range products {
		active[product.ID] = product.IsActive
	}
	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if active[item.ProductID] {
			kept = append(kept, item)
		}
	}
	pruned := len(kept) != len(cart.Items)
	cart.Items = kept
	return pruned, nil
}

func (s *CartService) loadSellableProduct(productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductUnavailable
	}
	return product, nil
}
