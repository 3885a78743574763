package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/payment/razorpay"
	"github.com/b2b-bazaar/internal/repository"

	"gorm.io/gorm"
)

const signatureFailureReason = "Signature verification failed"

// VerifyPaymentInput 支付回传校验输入
type VerifyPaymentInput struct {
	OrderID           uint
	RazorpayOrderID   string
	RazorpayPaymentID string
	RazorpaySignature string
}

// PaymentService 支付校验服务
type PaymentService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	verifier  *razorpay.Verifier
	orders    *OrderService
}

// NewPaymentService 创建支付校验服务
func NewPaymentService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, verifier *razorpay.Verifier, orders *OrderService) *PaymentService {
	return &PaymentService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		verifier:  verifier,
		orders:    orders,
	}
}

// VerifyPayment 校验网关签名并确认订单
// 签名通过：pending → confirmed，记录支付信息并清空购物车
// 签名不符：pending → cancelled，支付记为失败
// 同一支付重复提交时直接返回订单，不产生副作用
func (s *PaymentService) VerifyPayment(ctx context.Context, userID uint, input VerifyPaymentInput) (*models.Order, error) {
	razorpayOrderID := strings.TrimSpace(input.RazorpayOrderID)
	paymentID := strings.TrimSpace(input.RazorpayPaymentID)
	signature := strings.TrimSpace(input.RazorpaySignature)
	if userID == 0 || input.OrderID == 0 || razorpayOrderID == "" || paymentID == "" || signature == "" {
		return nil, ErrInvalidRequest
	}
	if !s.verifier.Configured() {
		return nil, ErrPaymentConfigInvalid
	}

	order, err := s.orderRepo.GetByIDAndUser(input.OrderID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Payment.Method != constants.PaymentMethodRazorpay || order.Payment.RazorpayOrderID != razorpayOrderID {
		logger.Warnw("payment_verify_order_mismatch", "order_id", order.ID, "user_id", userID)
		return nil, ErrPaymentVerificationFailed
	}

	valid := s.verifier.Verify(razorpayOrderID, paymentID, signature)

	if order.Status != constants.OrderStatusPending {
		if valid && order.Status != constants.OrderStatusCancelled && order.Payment.RazorpayPaymentID == paymentID {
			return order, nil
		}
		return nil, ErrPaymentVerificationFailed
	}

	if !valid {
		return nil, s.rejectPayment(ctx, order, paymentID)
	}

	now := time.Now()
	applied, err := applyOrderTransition(s.orderRepo, orderTransition{
		OrderID: order.ID,
		From:    constants.OrderStatusPending,
		To:      constants.OrderStatusConfirmed,
		Updates: map[string]interface{}{
			"confirmed_at":                now,
			"payment_status":              constants.PaymentStatusCompleted,
			"payment_razorpay_payment_id": paymentID,
			"payment_razorpay_signature":  signature,
			"payment_paid_at":             now,
			"payment_failure_reason":      "",
		},
		Note:      "Payment verified",
		ChangedBy: constants.ActorSystem,
		After: func(tx *gorm.DB) error {
			return s.cartRepo.WithTx(tx).ClearByUser(order.UserID)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderUpdateFailed, err)
	}
	if !applied {
		// 并发请求已完成迁移，按当前状态判定
		current, err := s.orderRepo.GetByIDAndUser(order.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
		}
		if current != nil && current.Status == constants.OrderStatusConfirmed && current.Payment.RazorpayPaymentID == paymentID {
			return current, nil
		}
		return nil, ErrPaymentVerificationFailed
	}

	logger.Infow("payment_verified",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"razorpay_payment_id", paymentID,
	)
	s.orders.invalidateTracking(ctx, order.OrderNumber)
	return s.orders.reload(order.ID)
}

// rejectPayment 签名不符时的补偿写入
func (s *PaymentService) rejectPayment(ctx context.Context, order *models.Order, paymentID string) error {
	applied, err := applyOrderTransition(s.orderRepo, orderTransition{
		OrderID: order.ID,
		From:    constants.OrderStatusPending,
		To:      constants.OrderStatusCancelled,
		Updates: map[string]interface{}{
			"cancelled_at":                time.Now(),
			"payment_status":              constants.PaymentStatusFailed,
			"payment_failure_reason":      signatureFailureReason,
			"payment_razorpay_payment_id": paymentID,
			"cancellation": &models.OrderCancellation{
				Reason:       signatureFailureReason,
				CancelledBy:  constants.CancelledBySystem,
				RefundStatus: constants.RefundStatusNotApplicable,
			},
		},
		Note:      signatureFailureReason,
		ChangedBy: constants.ActorSystem,
	})
	if err != nil {
		logger.Errorw("payment_reject_write_failed", "order_id", order.ID, "error", err)
		return fmt.Errorf("%w: %v", ErrOrderUpdateFailed, err)
	}
	if applied {
		logger.Warnw("payment_signature_mismatch",
			"order_id", order.ID,
			"order_number", order.OrderNumber,
			"razorpay_payment_id", paymentID,
		)
		s.orders.invalidateTracking(ctx, order.OrderNumber)
	}
	return ErrPaymentVerificationFailed
}
