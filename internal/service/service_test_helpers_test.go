package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/payment/razorpay"
	"github.com/b2b-bazaar/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testRazorpaySecret = "rzp_test_secret"

type fakeGateway struct {
	mu       sync.Mutex
	err      error
	calls    []razorpay.CreateOrderInput
	nextID   int
	onCreate func()
}

func (g *fakeGateway) KeyID() string {
	return "rzp_test_key"
}

func (g *fakeGateway) CreateOrder(_ context.Context, input razorpay.CreateOrderInput) (*razorpay.CreateOrderResult, error) {
	if g.onCreate != nil {
		g.onCreate()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, input)
	if g.err != nil {
		return nil, g.err
	}
	g.nextID++
	return &razorpay.CreateOrderResult{
		ID:       fmt.Sprintf("order_test_%d", g.nextID),
		Amount:   input.AmountMinor,
		Currency: input.Currency,
		Receipt:  input.Receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

var errGatewayDown = errors.New("gateway down")

type serviceTestEnv struct {
	db       *gorm.DB
	gateway  *fakeGateway
	verifier *razorpay.Verifier
	carts    *CartService
	orders   *OrderService
	payments *PaymentService
	category *models.Category
}

func setupServiceTest(t *testing.T) *serviceTestEnv {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db

	category := &models.Category{Name: "Fasteners", Slug: "fasteners", IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	gateway := &fakeGateway{}
	verifier := razorpay.NewVerifier(testRazorpaySecret)
	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)

	carts := NewCartService(cartRepo, productRepo, NewMOQPolicy(constants.MOQModeMax))
	orders := NewOrderService(OrderServiceOptions{
		OrderRepo:   orderRepo,
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		CounterRepo: repository.NewCounterRepository(db),
		Gateway:     gateway,
		Rules:       DefaultPricingRules(),
		PendingTTL:  30 * time.Minute,
		Currency:    "INR",
	})
	payments := NewPaymentService(orderRepo, cartRepo, verifier, orders)

	return &serviceTestEnv{
		db:       db,
		gateway:  gateway,
		verifier: verifier,
		carts:    carts,
		orders:   orders,
		payments: payments,
		category: category,
	}
}

func (e *serviceTestEnv) createProduct(t *testing.T, slug string, price string, moq int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:  e.category.ID,
		Name:        strings.ToUpper(slug[:1]) + slug[1:],
		Slug:        slug,
		Description: "Industrial grade " + slug,
		Images:      models.StringArray{"https://cdn.example.com/" + slug + ".jpg"},
		PriceMin:    models.MustMoney(price),
		PriceMax:    models.MustMoney(price),
		Currency:    "INR",
		MOQQuantity: moq,
		MOQUnit:     "pieces",
		IsActive:    true,
	}
	if err := e.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if !active {
		e.deactivate(t, product.ID)
		product.IsActive = false
	}
	return product
}

func (e *serviceTestEnv) deactivate(t *testing.T, productID uint) {
	t.Helper()
	if err := e.db.Model(&models.Product{}).Where("id = ?", productID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
}

func (e *serviceTestEnv) countOrders(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	return count
}

func (e *serviceTestEnv) loadOrder(t *testing.T, orderID uint) *models.Order {
	t.Helper()
	order, err := repository.NewOrderRepository(e.db).GetByID(orderID)
	if err != nil || order == nil {
		t.Fatalf("load order failed: %v", err)
	}
	return order
}

func (e *serviceTestEnv) setOrderState(t *testing.T, orderID uint, updates map[string]interface{}) {
	t.Helper()
	if err := e.db.Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error; err != nil {
		t.Fatalf("update order failed: %v", err)
	}
}

func testShippingAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:     "Asha Rao",
		Phone:        "+91 98450 00000",
		AddressLine1: "12 Industrial Estate",
		City:         "Bengaluru",
		State:        "Karnataka",
		PostalCode:   "560058",
		Country:      "India",
	}
}

// checkoutWithItems 加购并结算，返回结算结果
func (e *serviceTestEnv) checkoutWithItems(t *testing.T, userID uint, product *models.Product, quantity int) *CheckoutResult {
	t.Helper()
	if _, err := e.carts.Add(userID, product.ID, quantity); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	result, err := e.orders.Checkout(context.Background(), userID, CheckoutInput{
		ShippingAddress: testShippingAddress(),
		PaymentMethod:   constants.PaymentMethodRazorpay,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	return result
}
