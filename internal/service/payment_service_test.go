package service

import (
	"context"
	"errors"
	"testing"

	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/payment/razorpay"
	"github.com/b2b-bazaar/internal/repository"
)

func (e *serviceTestEnv) loadCart(t *testing.T, userID uint) *models.Cart {
	t.Helper()
	var cart models.Cart
	if err := e.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	return &cart
}

func (e *serviceTestEnv) validPayment(result *CheckoutResult, paymentID string) VerifyPaymentInput {
	return VerifyPaymentInput{
		OrderID:           result.OrderID,
		RazorpayOrderID:   result.RazorpayOrderID,
		RazorpayPaymentID: paymentID,
		RazorpaySignature: e.verifier.Sign(result.RazorpayOrderID, paymentID),
	}
}

func TestVerifyPaymentConfirmsOrderAndClearsCart(t *testing.T) {
	env := setupServiceTest(t)
	product := env.createProduct(t, "bolt", "1000", 0, true)
	result := env.checkoutWithItems(t, 1, product, 2)

	order, err := env.payments.VerifyPayment(context.Background(), 1, env.validPayment(result, "pay_001"))
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if order.Status != constants.OrderStatusConfirmed || order.Payment.Status != constants.PaymentStatusCompleted {
		t.Fatalf("unexpected order state: %s / %s", order.Status, order.Payment.Status)
	}
	if order.Payment.RazorpayPaymentID != "pay_001" || order.Payment.PaidAt == nil || order.ConfirmedAt == nil {
		t.Fatalf("payment fields not recorded: %+v", order.Payment)
	}
	if len(order.StatusHistory) != 2 || order.StatusHistory[1].Status != constants.OrderStatusConfirmed {
		t.Fatalf("unexpected history: %+v", order.StatusHistory)
	}
	cart := env.loadCart(t, 1)
	if len(cart.Items) != 0 || cart.TotalItems != 0 {
		t.Fatalf("cart should be cleared after payment")
	}
}

func TestVerifyPaymentIsIdempotent(t *testing.T) {
	env := setupServiceTest(t)
	product := env.createProduct(t, "bolt", "1000", 0, true)
	result := env.checkoutWithItems(t, 1, product, 2)
	input := env.validPayment(result, "pay_001")
	ctx := context.Background()

	if _, err := env.payments.VerifyPayment(ctx, 1, input); err != nil {
		t.Fatalf("first verify failed: %v", err)
	}
	versionAfterFirst := env.loadCart(t, 1).Version

	// 清空后重新加购，重复校验不能再次清空
	if _, err := env.carts.Add(1, product.ID, 1); err != nil {
		t.Fatalf("re-add failed: %v", err)
	}
	order, err := env.payments.VerifyPayment(ctx, 1, input)
	if err != nil {
		t.Fatalf("second verify should succeed, got %v", err)
	}
	if order.Status != constants.OrderStatusConfirmed || len(order.StatusHistory) != 2 {
		t.Fatalf("duplicate verify must not append history: %d entries", len(order.StatusHistory))
	}
	cart := env.loadCart(t, 1)
	if len(cart.Items) != 1 || cart.Version != versionAfterFirst+1 {
		t.Fatalf("duplicate verify must not clear the cart again: items=%d version=%d", len(cart.Items), cart.Version)
	}

	other := input
	other.RazorpayPaymentID = "pay_other"
	other.RazorpaySignature = env.verifier.Sign(result.RazorpayOrderID, "pay_other")
	if _, err := env.payments.VerifyPayment(ctx, 1, other); !errors.Is(err, ErrPaymentVerificationFailed) {
		t.Fatalf("a different payment for a confirmed order should fail, got %v", err)
	}
}

func TestVerifyPaymentTamperedSignatureCancels(t *testing.T) {
	env := setupServiceTest(t)
	product := env.createProduct(t, "bolt", "1000", 0, true)
	result := env.checkoutWithItems(t, 1, product, 2)
	input := env.validPayment(result, "pay_001")
	input.RazorpaySignature = env.verifier.Sign(result.RazorpayOrderID, "pay_forged")

	_, err := env.payments.VerifyPayment(context.Background(), 1, input)
	if !errors.Is(err, ErrPaymentVerificationFailed) {
		t.Fatalf("expected verification failure, got %v", err)
	}
	order := env.loadOrder(t, result.OrderID)
	if order.Status != constants.OrderStatusCancelled || order.Payment.Status != constants.PaymentStatusFailed {
		t.Fatalf("unexpected order state: %s / %s", order.Status, order.Payment.Status)
	}
	if order.Payment.FailureReason != signatureFailureReason {
		t.Fatalf("unexpected failure reason: %s", order.Payment.FailureReason)
	}
	if order.Cancellation == nil || order.Cancellation.CancelledBy != constants.CancelledBySystem {
		t.Fatalf("unexpected cancellation: %+v", order.Cancellation)
	}
	if len(env.loadCart(t, 1).Items) != 1 {
		t.Fatalf("failed payment must keep the cart")
	}
}

func TestVerifyPaymentTamperedSignatureAfterConfirmLeavesOrder(t *testing.T) {
	env := setupServiceTest(t)
	product := env.createProduct(t, "bolt", "1000", 0, true)
	result := env.checkoutWithItems(t, 1, product, 2)
	ctx := context.Background()
	if _, err := env.payments.VerifyPayment(ctx, 1, env.validPayment(result, "pay_001")); err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	forged := env.validPayment(result, "pay_001")
	forged.RazorpaySignature = "deadbeef"
	if _, err := env.payments.VerifyPayment(ctx, 1, forged); !errors.Is(err, ErrPaymentVerificationFailed) {
		t.Fatalf("expected verification failure, got %v", err)
	}
	order := env.loadOrder(t, result.OrderID)
	if order.Status != constants.OrderStatusConfirmed || order.Payment.Status != constants.PaymentStatusCompleted {
		t.Fatalf("confirmed order must stay confirmed: %s / %s", order.Status, order.Payment.Status)
	}
	if len(order.StatusHistory) != 2 {
		t.Fatalf("unexpected history length: %d", len(order.StatusHistory))
	}
}

func TestVerifyPaymentRejectsMismatchedGatewayOrder(t *testing.T) {
	env := setupServiceTest(t)
	product := env.createProduct(t, "bolt", "1000", 0, true)
	result := env.checkoutWithItems(t, 1, product, 2)

	input := VerifyPaymentInput{
		OrderID:           result.OrderID,
		RazorpayOrderID:   "order_someone_else",
		RazorpayPaymentID: "pay_001",
		RazorpaySignature: env.verifier.Sign("order_someone_else", "pay_001"),
	}
	if _, err := env.payments.VerifyPayment(context.Background(), 1, input); !errors.Is(err, ErrPaymentVerificationFailed) {
		t.Fatalf("expected verification failure, got %v", err)
	}
	if env.loadOrder(t, result.OrderID).Status != constants.OrderStatusPending {
		t.Fatalf("mismatched gateway order must not touch the order")
	}
}

func TestVerifyPaymentInputChecks(t *testing.T) {
	env := setupServiceTest(t)
	product := env.createProduct(t, "bolt", "1000", 0, true)
	result := env.checkoutWithItems(t, 1, product, 1)
	ctx := context.Background()

	input := env.validPayment(result, "pay_001")
	input.RazorpaySignature = " "
	if _, err := env.payments.VerifyPayment(ctx, 1, input); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if _, err := env.payments.VerifyPayment(ctx, 2, env.validPayment(result, "pay_001")); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}

	unconfigured := NewPaymentService(
		repository.NewOrderRepository(env.db),
		repository.NewCartRepository(env.db),
		razorpay.NewVerifier(""),
		env.orders,
	)
	if _, err := unconfigured.VerifyPayment(ctx, 1, env.validPayment(result, "pay_001")); !errors.Is(err, ErrPaymentConfigInvalid) {
		t.Fatalf("expected config error, got %v", err)
	}
}
