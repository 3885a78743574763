package repository

import (
	"strconv"
	"testing"

	"github.com/b2b-bazaar/internal/models"

	"gorm.io/gorm"
)

func createRepositoryTestProduct(t *testing.T, db *gorm.DB, categoryID uint, slug, name string) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:  categoryID,
		Name:        name,
		Slug:        slug,
		Description: name + " for wholesale buyers",
		PriceMin:    models.MustMoney("100"),
		PriceMax:    models.MustMoney("120"),
		Currency:    "INR",
		MOQQuantity: 50,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductRepositoryGetBySlugOrID(t *testing.T) {
	db := openRepositoryTestDB(t)
	category := &models.Category{Name: "Fasteners", Slug: "fasteners"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	repo := NewProductRepository(db)
	product := createRepositoryTestProduct(t, db, category.ID, "hex-bolt", "Hex Bolt")

	bySlug, err := repo.GetBySlugOrID("hex-bolt")
	if err != nil || bySlug == nil {
		t.Fatalf("get by slug failed: product=%v err=%v", bySlug, err)
	}
	if bySlug.CategoryName() != "Fasteners" {
		t.Fatalf("category should be preloaded, got %q", bySlug.CategoryName())
	}

	byID, err := repo.GetBySlugOrID(strconv.FormatUint(uint64(product.ID), 10))
	if err != nil || byID == nil || byID.ID != product.ID {
		t.Fatalf("get by id failed: product=%v err=%v", byID, err)
	}

	missing, err := repo.GetBySlugOrID("no-such-product")
	if err != nil {
		t.Fatalf("missing lookup error: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing product should return nil")
	}
}

func TestProductRepositoryListFilters(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewProductRepository(db)
	fasteners := &models.Category{Name: "Fasteners", Slug: "fasteners"}
	packaging := &models.Category{Name: "Packaging", Slug: "packaging"}
	if err := db.Create(fasteners).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if err := db.Create(packaging).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	createRepositoryTestProduct(t, db, fasteners.ID, "hex-bolt", "Hex Bolt")
	createRepositoryTestProduct(t, db, fasteners.ID, "carriage-bolt", "Carriage Bolt")
	hidden := createRepositoryTestProduct(t, db, packaging.ID, "shipping-box", "Shipping Box")
	if err := db.Model(&models.Product{}).Where("id = ?", hidden.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	rows, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, OnlyActive: true})
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("active list want 2 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "carriage"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || rows[0].Slug != "carriage-bolt" {
		t.Fatalf("search want carriage-bolt got total=%d rows=%v", total, rows)
	}

	rows, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, CategoryID: packaging.ID})
	if err != nil {
		t.Fatalf("category filter failed: %v", err)
	}
	if total != 1 || rows[0].ID != hidden.ID {
		t.Fatalf("category filter want hidden product got total=%d", total)
	}

	rows, total, err = repo.List(ProductListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if total != 3 || len(rows) != 1 {
		t.Fatalf("page 2 want 1 row of 3 got total=%d len=%d", total, len(rows))
	}
}

func TestCategoryRepositoryListActiveOrdering(t *testing.T) {
	db := openRepositoryTestDB(t)
	categories := []models.Category{
		{Name: "Textiles", Slug: "textiles", SortOrder: 1},
		{Name: "Fasteners", Slug: "fasteners", SortOrder: 9},
		{Name: "Archived", Slug: "archived", SortOrder: 5},
	}
	if err := db.Create(&categories).Error; err != nil {
		t.Fatalf("create categories failed: %v", err)
	}
	if err := db.Model(&models.Category{}).Where("slug = ?", "archived").Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate category failed: %v", err)
	}

	rows, err := NewCategoryRepository(db).ListActive()
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(rows) != 2 || rows[0].Slug != "fasteners" || rows[1].Slug != "textiles" {
		t.Fatalf("unexpected category order: %+v", rows)
	}
}
