package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/b2b-bazaar/internal/authz"
	"github.com/b2b-bazaar/internal/cache"
	"github.com/b2b-bazaar/internal/config"
	adminhandlers "github.com/b2b-bazaar/internal/http/handlers/admin"
	publichandlers "github.com/b2b-bazaar/internal/http/handlers/public"
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bz"
	}
	redisClient := cache.Client()
	rateKey := func(name string) string {
		return fmt.Sprintf("%s:rate:%s", redisPrefix, name)
	}
	checkoutRule := RuleFromConfig(rateKey("checkout"), cfg.RateLimit.Checkout)
	paymentVerifyRule := RuleFromConfig(rateKey("payment_verify"), cfg.RateLimit.PaymentVerify)
	orderTrackRule := RuleFromConfig(rateKey("order_track"), cfg.RateLimit.OrderTrack)
	publicFormRule := RuleFromConfig(rateKey("public_form"), cfg.RateLimit.PublicForm)

	userAuth := UserJWTAuthMiddleware(c.UserAuthService, cfg.JWT.SecretKey)
	optionalAuth := OptionalUserJWTMiddleware(c.UserAuthService, cfg.JWT.SecretKey)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:key", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/captcha", publicHandler.GetImageCaptcha)
			public.GET("/orders/track/:order_number", RateLimitMiddleware(redisClient, orderTrackRule, KeyByIP), publicHandler.TrackOrder)
			public.POST("/enquiries", optionalAuth, RateLimitMiddleware(redisClient, publicFormRule, KeyByIPAndJSONField("email")), publicHandler.CreatePublicEnquiry)
			public.POST("/suppliers/apply", RateLimitMiddleware(redisClient, publicFormRule, KeyByIPAndJSONField("email")), publicHandler.ApplySupplier)
		}

		// 买家接口
		buyer := apiV1.Group("")
		buyer.Use(userAuth)
		{
			buyer.GET("/cart", publicHandler.GetCart)
			buyer.POST("/cart/items", publicHandler.AddCartItem)
			buyer.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			buyer.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			buyer.DELETE("/cart", publicHandler.ClearCart)
			buyer.POST("/cart/sync", publicHandler.SyncCart)

			buyer.POST("/orders/checkout", RateLimitMiddleware(redisClient, checkoutRule, KeyByUser), publicHandler.Checkout)
			buyer.GET("/orders", publicHandler.GetOrders)
			buyer.GET("/orders/:id", publicHandler.GetOrder)
			buyer.POST("/orders/:id/cancel", publicHandler.CancelOrder)

			buyer.POST("/payments/verify", RateLimitMiddleware(redisClient, paymentVerifyRule, KeyByUser), publicHandler.VerifyPayment)

			buyer.GET("/enquiries", publicHandler.GetMyEnquiries)
			buyer.POST("/enquiries", publicHandler.CreateMyEnquiry)
		}

		// 管理端接口：admin 角色 + casbin 路由级授权
		admin := apiV1.Group("/admin")
		admin.Use(userAuth, AdminRoleMiddleware())
		{
			admin.GET("/authz/me", adminHandler.GetAuthzMe)

			authorized := admin.Group("")
			authorized.Use(AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)
				authorized.POST("/orders/:id/cancel", adminHandler.AdminCancelOrder)

				authorized.GET("/enquiries", adminHandler.AdminListEnquiries)
				authorized.POST("/enquiries/:id/respond", adminHandler.AdminRespondEnquiry)
				authorized.POST("/enquiries/:id/close", adminHandler.AdminCloseEnquiry)

				authorized.GET("/suppliers", adminHandler.AdminListSuppliers)
				authorized.POST("/suppliers/:id/approve", adminHandler.AdminApproveSupplier)
				authorized.POST("/suppliers/:id/reject", adminHandler.AdminRejectSupplier)

				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
