package service

import (
	"errors"
	"testing"

	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/repository"
)

func newTestSupplierService(env *serviceTestEnv) *SupplierService {
	return NewSupplierService(repository.NewSupplierRepository(env.db), repository.NewUserRepository(env.db))
}

func validSupplierInput() SupplierApplyInput {
	return SupplierApplyInput{
		CompanyName:  "Shakti Forgings Pvt Ltd",
		ContactName:  "Meera Shah",
		Email:        "meera@shakti.example",
		Phone:        "+91 22 4000 1000",
		BusinessType: "manufacturer",
		GSTNumber:    "27abcde1234f1z5",
	}
}

func TestSupplierApplyRejectsDuplicates(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTestSupplierService(env)

	supplier, err := svc.Apply(validSupplierInput())
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if supplier.Status != constants.SupplierStatusPending || supplier.GSTNumber != "27ABCDE1234F1Z5" {
		t.Fatalf("unexpected supplier: %+v", supplier)
	}
	if _, err := svc.Apply(validSupplierInput()); !errors.Is(err, ErrSupplierDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	invalid := validSupplierInput()
	invalid.Email = "nope"
	if _, err := svc.Apply(invalid); !errors.Is(err, ErrSupplierInvalid) {
		t.Fatalf("expected invalid supplier, got %v", err)
	}

	if _, err := svc.Reject(1, supplier.ID, "Incomplete documents"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := svc.Apply(validSupplierInput()); err != nil {
		t.Fatalf("re-apply after rejection should succeed: %v", err)
	}
}

func TestSupplierApproveLinksUserAndGrantsRole(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTestSupplierService(env)
	user := &models.User{ID: 42, Email: "meera@shakti.example", Role: constants.UserRoleBuyer, Status: constants.UserStatusActive}
	if err := env.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	supplier, err := svc.Apply(validSupplierInput())
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if _, err := svc.Approve(1, supplier.ID, SupplierDecisionInput{UserID: 999}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
	reloaded, err := repository.NewSupplierRepository(env.db).GetByID(supplier.ID)
	if err != nil || reloaded.Status != constants.SupplierStatusPending {
		t.Fatalf("failed approval must leave supplier pending: %+v err=%v", reloaded, err)
	}

	approved, err := svc.Approve(1, supplier.ID, SupplierDecisionInput{UserID: 42, Comment: "Verified GST"})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != constants.SupplierStatusApproved || approved.UserID == nil || *approved.UserID != 42 {
		t.Fatalf("unexpected approved supplier: %+v", approved)
	}
	if approved.Decision.Comment != "Verified GST" || approved.Decision.DecidedAt == nil {
		t.Fatalf("decision not recorded: %+v", approved.Decision)
	}
	linked, err := repository.NewUserRepository(env.db).GetByID(42)
	if err != nil || linked.Role != constants.UserRoleSupplier {
		t.Fatalf("expected supplier role, got %+v err=%v", linked, err)
	}

	if _, err := svc.Reject(1, supplier.ID, ""); !errors.Is(err, ErrSupplierStatusInvalid) {
		t.Fatalf("deciding twice should fail, got %v", err)
	}
	if _, err := svc.Approve(1, 9999, SupplierDecisionInput{}); !errors.Is(err, ErrSupplierNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSupplierApproveKeepsAdminRole(t *testing.T) {
	env := setupServiceTest(t)
	svc := newTestSupplierService(env)
	admin := &models.User{ID: 5, Email: "ops@bazaar.example", Role: constants.UserRoleAdmin, Status: constants.UserStatusActive}
	if err := env.db.Create(admin).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	supplier, err := svc.Apply(validSupplierInput())
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := svc.Approve(1, supplier.ID, SupplierDecisionInput{UserID: 5}); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	user, err := repository.NewUserRepository(env.db).GetByID(5)
	if err != nil || user.Role != constants.UserRoleAdmin {
		t.Fatalf("admin role must not be downgraded, got %+v err=%v", user, err)
	}
}
