package repository

import (
	"errors"
	"testing"

	"github.com/b2b-bazaar/internal/models"
)

func TestCartRepositorySaveBumpsVersion(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)

	cart := &models.Cart{UserID: 7}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	cart.Items = []models.CartItem{
		{ProductID: 1, Quantity: 2, Price: models.MustMoney("50")},
		{ProductID: 2, Quantity: 1, Price: models.MustMoney("10")},
	}
	cart.TotalItems = 3
	cart.TotalPrice = models.MustMoney("110")
	if err := repo.Save(cart, 0); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}
	if cart.Version != 1 {
		t.Fatalf("expected version 1, got %d", cart.Version)
	}

	loaded, err := repo.GetByUser(7)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if loaded == nil || len(loaded.Items) != 2 {
		t.Fatalf("unexpected cart: %+v", loaded)
	}
	if loaded.Items[0].ProductID != 1 || loaded.Items[1].ProductID != 2 {
		t.Fatalf("expected insertion order to be kept, got %+v", loaded.Items)
	}
	if loaded.TotalItems != 3 || loaded.TotalPrice.String() != "110.00" {
		t.Fatalf("unexpected totals: %d %s", loaded.TotalItems, loaded.TotalPrice)
	}
}

func TestCartRepositorySaveRejectsStaleVersion(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)

	cart := &models.Cart{UserID: 8}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if err := repo.Save(cart, 0); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	stale := &models.Cart{ID: cart.ID, UserID: 8, Items: []models.CartItem{{ProductID: 3, Quantity: 1}}}
	if err := repo.Save(stale, 0); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	loaded, err := repo.GetByUser(8)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(loaded.Items) != 0 {
		t.Fatalf("stale write should not change items, got %+v", loaded.Items)
	}
}

func TestCartRepositoryClearByUserKeepsCart(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)

	cart := &models.Cart{UserID: 9}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	cart.Items = []models.CartItem{{ProductID: 1, Quantity: 4, Price: models.MustMoney("5")}}
	cart.TotalItems = 4
	cart.TotalPrice = models.MustMoney("20")
	if err := repo.Save(cart, 0); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}

	if err := repo.ClearByUser(9); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	if err := repo.ClearByUser(404); err != nil {
		t.Fatalf("clear missing cart should be a no-op: %v", err)
	}

	loaded, err := repo.GetByUser(9)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if loaded == nil {
		t.Fatalf("cart should still exist after clear")
	}
	if len(loaded.Items) != 0 || loaded.TotalItems != 0 || !loaded.TotalPrice.IsZero() {
		t.Fatalf("expected empty cart, got %+v", loaded)
	}
}
