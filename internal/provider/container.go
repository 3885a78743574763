package provider

import (
	"github.com/b2b-bazaar/internal/authz"
	"github.com/b2b-bazaar/internal/cache"
	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/payment/razorpay"
	"github.com/b2b-bazaar/internal/queue"
	"github.com/b2b-bazaar/internal/repository"
	"github.com/b2b-bazaar/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo     repository.UserRepository
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository
	CounterRepo  repository.CounterRepository
	EnquiryRepo  repository.EnquiryRepository
	SupplierRepo repository.SupplierRepository

	// Services
	AuthzService    *authz.Service
	UserAuthService *service.UserAuthService
	CaptchaService  *service.CaptchaService
	CatalogService  *service.CatalogService
	CartService     *service.CartService
	OrderService    *service.OrderService
	PaymentService  *service.PaymentService
	EnquiryService  *service.EnquiryService
	SupplierService *service.SupplierService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CounterRepo = repository.NewCounterRepository(db)
	c.EnquiryRepo = repository.NewEnquiryRepository(db)
	c.SupplierRepo = repository.NewSupplierRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	rules, err := service.ParsePricingRules(c.Config.Order)
	if err != nil {
		logger.Errorw("provider_parse_pricing_rules_failed", "error", err)
		panic(err)
	}
	if c.Config.Razorpay.KeyID == "" || c.Config.Razorpay.KeySecret == "" {
		logger.Warnw("provider_razorpay_not_configured", "hint", "online payment checkout will be rejected")
	}

	c.UserAuthService = service.NewUserAuthService(c.Config.JWT, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, service.NewMOQPolicy(c.Config.Order.MOQMode))
	c.OrderService = service.NewOrderService(service.OrderServiceOptions{
		OrderRepo:   c.OrderRepo,
		CartRepo:    c.CartRepo,
		ProductRepo: c.ProductRepo,
		CounterRepo: c.CounterRepo,
		Gateway:     service.NewRazorpayGateway(c.Config.Razorpay),
		QueueClient: c.QueueClient,
		Rules:       rules,
		PendingTTL:  c.Config.Order.PendingTTL(),
		Currency:    c.Config.Razorpay.Currency,
	})
	c.PaymentService = service.NewPaymentService(c.OrderRepo, c.CartRepo, razorpay.NewVerifier(c.Config.Razorpay.KeySecret), c.OrderService)
	c.EnquiryService = service.NewEnquiryService(c.EnquiryRepo, c.ProductRepo)
	c.SupplierService = service.NewSupplierService(c.SupplierRepo, c.UserRepo)
}
