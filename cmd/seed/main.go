package main

import (
	"fmt"

	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/repository"
	"github.com/b2b-bazaar/internal/service"

	"github.com/shopspring/decimal"
)

type productSeed struct {
	CategorySlug string
	Name         string
	Slug         string
	Description  string
	PriceMin     string
	PriceMax     string
	MOQ          int
	MOQUnit      string
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Fasteners", Slug: "fasteners", SortOrder: 30},
		{Name: "Packaging", Slug: "packaging", SortOrder: 20},
		{Name: "Textiles", Slug: "textiles", SortOrder: 10},
	}
	categoryIDs := map[string]uint{}
	for _, cat := range categories {
		var existing models.Category
		result := models.DB.Where("slug = ?", cat.Slug).Limit(1).Find(&existing)
		if result.Error != nil {
			stdLog.Fatalf("Failed to query category %s: %v", cat.Slug, result.Error)
		}
		if result.RowsAffected > 0 {
			stdLog.Printf("Category already exists: %s", cat.Slug)
			categoryIDs[cat.Slug] = existing.ID
			continue
		}
		if err := models.DB.Create(&cat).Error; err != nil {
			stdLog.Fatalf("Failed to create category %s: %v", cat.Slug, err)
		}
		stdLog.Printf("Created category: %s", cat.Slug)
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品
	products := []productSeed{
		{
			CategorySlug: "fasteners",
			Name:         "Stainless Steel Hex Bolt M8",
			Slug:         "ss-hex-bolt-m8",
			Description:  "Grade 304 hex bolts, bulk packed.",
			PriceMin:     "12.50",
			PriceMax:     "15.00",
			MOQ:          500,
			MOQUnit:      "pieces",
		},
		{
			CategorySlug: "packaging",
			Name:         "Corrugated Shipping Box 5-Ply",
			Slug:         "corrugated-box-5ply",
			Description:  "Heavy duty export cartons.",
			PriceMin:     "38.00",
			PriceMax:     "45.00",
			MOQ:          100,
			MOQUnit:      "boxes",
		},
		{
			CategorySlug: "textiles",
			Name:         "Cotton Canvas Roll 10oz",
			Slug:         "cotton-canvas-10oz",
			Description:  "Unbleached canvas sold per metre.",
			PriceMin:     "210.00",
			PriceMax:     "260.00",
			MOQ:          0,
			MOQUnit:      "metres",
		},
	}
	for _, item := range products {
		var count int64
		if err := models.DB.Model(&models.Product{}).Where("slug = ?", item.Slug).Count(&count).Error; err != nil {
			stdLog.Fatalf("Failed to query product %s: %v", item.Slug, err)
		}
		if count > 0 {
			stdLog.Printf("Product already exists: %s", item.Slug)
			continue
		}
		product := models.Product{
			CategoryID:  categoryIDs[item.CategorySlug],
			Name:        item.Name,
			Slug:        item.Slug,
			Description: item.Description,
			Images:      models.StringArray{},
			PriceMin:    models.NewMoneyFromDecimal(decimal.RequireFromString(item.PriceMin)),
			PriceMax:    models.NewMoneyFromDecimal(decimal.RequireFromString(item.PriceMax)),
			Currency:    "INR",
			MOQQuantity: item.MOQ,
			MOQUnit:     item.MOQUnit,
			IsActive:    true,
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Fatalf("Failed to create product %s: %v", item.Slug, err)
		}
		stdLog.Printf("Created product: %s", item.Slug)
	}

	// 添加用户镜像并打印开发令牌
	userRepo := repository.NewUserRepository(models.DB)
	userAuth := service.NewUserAuthService(cfg.JWT, userRepo)
	users := []models.User{
		{ID: 1001, Email: "buyer@example.com", Name: "Demo Buyer", Role: constants.UserRoleBuyer, Status: constants.UserStatusActive},
		{ID: 1002, Email: "admin@example.com", Name: "Demo Admin", Role: constants.UserRoleAdmin, Status: constants.UserStatusActive},
	}
	for _, item := range users {
		user, err := userRepo.EnsureMirror(&item)
		if err != nil {
			stdLog.Fatalf("Failed to ensure user %s: %v", item.Email, err)
		}
		token, expiresAt, err := userAuth.GenerateUserJWT(user, 24*7)
		if err != nil {
			stdLog.Fatalf("Failed to sign token for %s: %v", user.Email, err)
		}
		fmt.Printf("%s (%s) expires %s\n  Bearer %s\n", user.Email, user.Role, expiresAt.Format("2006-01-02 15:04"), token)
	}

	stdLog.Printf("Seed completed")
}
