package repository

import (
	"testing"
	"time"

	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/models"
)

func createRepositoryTestOrder(t *testing.T, repo *GormOrderRepository, number string, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNumber: number,
		UserID:      1,
		Status:      status,
		Currency:    "INR",
		Subtotal:    models.MustMoney("1000"),
		Tax:         models.MustMoney("180"),
		Total:       models.MustMoney("1280"),
		Payment: models.OrderPayment{
			Method: constants.PaymentMethodRazorpay,
			Status: constants.PaymentStatusPending,
		},
		Items: []models.OrderItem{
			{ProductID: 1, ProductName: "Steel Bolt", Quantity: 10, UnitPrice: models.MustMoney("100"), Subtotal: models.MustMoney("1000")},
		},
		StatusHistory: []models.OrderStatusHistory{
			{Status: status, ChangedBy: "user:1"},
		},
	}
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderRepositoryCreateWithItemsAndHistory(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	order := createRepositoryTestOrder(t, repo, "ORD-2601-00001", constants.OrderStatusPending)

	loaded, err := repo.GetByIDAndUser(order.ID, 1)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if loaded == nil || len(loaded.Items) != 1 || len(loaded.StatusHistory) != 1 {
		t.Fatalf("unexpected order detail: %+v", loaded)
	}

	other, err := repo.GetByIDAndUser(order.ID, 2)
	if err != nil {
		t.Fatalf("get order for other user failed: %v", err)
	}
	if other != nil {
		t.Fatalf("order should not be visible to other user")
	}
}

func TestOrderRepositoryTransitionStatusIsConditional(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	order := createRepositoryTestOrder(t, repo, "ORD-2601-00002", constants.OrderStatusPending)

	ok, err := repo.TransitionStatus(order.ID, constants.OrderStatusPending, map[string]interface{}{
		"status": constants.OrderStatusConfirmed,
	})
	if err != nil || !ok {
		t.Fatalf("first transition should succeed, ok=%v err=%v", ok, err)
	}

	ok, err = repo.TransitionStatus(order.ID, constants.OrderStatusPending, map[string]interface{}{
		"status": constants.OrderStatusCancelled,
	})
	if err != nil {
		t.Fatalf("second transition error: %v", err)
	}
	if ok {
		t.Fatalf("second transition should not apply once status changed")
	}

	loaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if loaded.Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", loaded.Status)
	}
	if loaded.Version != 1 {
		t.Fatalf("expected version 1, got %d", loaded.Version)
	}
}

func TestOrderRepositoryListExpiredPending(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	old := createRepositoryTestOrder(t, repo, "ORD-2601-00003", constants.OrderStatusPending)
	fresh := createRepositoryTestOrder(t, repo, "ORD-2601-00004", constants.OrderStatusPending)
	confirmed := createRepositoryTestOrder(t, repo, "ORD-2601-00005", constants.OrderStatusConfirmed)

	past := time.Now().Add(-2 * time.Hour)
	if err := db.Model(&models.Order{}).Where("id IN ?", []uint{old.ID, confirmed.ID}).Update("created_at", past).Error; err != nil {
		t.Fatalf("backdate orders failed: %v", err)
	}

	expired, err := repo.ListExpiredPending(time.Now().Add(-time.Hour), 10)
	if err != nil {
		t.Fatalf("list expired failed: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != old.ID {
		t.Fatalf("expected only the old pending order, got %+v (fresh=%d)", expired, fresh.ID)
	}
}
