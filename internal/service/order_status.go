package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/b2b-bazaar/internal/cache"
	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/models"
)

// fulfillmentRank 履约阶段顺序，确认后只能向前推进，可跳过中间阶段
// 取消只能通过 Cancel 完成
var fulfillmentRank = map[string]int{
	constants.OrderStatusConfirmed:  1,
	constants.OrderStatusProcessing: 2,
	constants.OrderStatusShipped:    3,
	constants.OrderStatusDelivered:  4,
}

var knownOrderStatuses = map[string]struct{}{
	constants.OrderStatusPending:    {},
	constants.OrderStatusConfirmed:  {},
	constants.OrderStatusProcessing: {},
	constants.OrderStatusShipped:    {},
	constants.OrderStatusDelivered:  {},
	constants.OrderStatusCancelled:  {},
}

// statusTimestampColumns 首次进入状态时写入的时间列
var statusTimestampColumns = map[string]string{
	constants.OrderStatusConfirmed:  "confirmed_at",
	constants.OrderStatusProcessing: "processing_at",
	constants.OrderStatusShipped:    "shipped_at",
	constants.OrderStatusDelivered:  "delivered_at",
	constants.OrderStatusCancelled:  "cancelled_at",
}

// IsTransitionAllowed 判断管理端状态推进是否合法
// 待支付只能进入已确认；已确认之后可推进到任一后续阶段
func IsTransitionAllowed(current, target string) bool {
	if current == constants.OrderStatusPending {
		return target == constants.OrderStatusConfirmed
	}
	from, ok := fulfillmentRank[current]
	if !ok {
		return false
	}
	to, ok := fulfillmentRank[target]
	return ok && to > from
}

// CanCancel 仅待支付与已确认订单可取消
func CanCancel(status string) bool {
	return status == constants.OrderStatusPending || status == constants.OrderStatusConfirmed
}

// UpdateOrderStatusInput 管理端状态更新输入
type UpdateOrderStatusInput struct {
	Status   string
	Note     string
	Tracking models.OrderTracking
}

// UpdateStatus 管理端推进订单状态
func (s *OrderService) UpdateStatus(ctx context.Context, adminID, orderID uint, input UpdateOrderStatusInput) (*models.Order, error) {
	target := strings.ToLower(strings.TrimSpace(input.Status))
	if _, ok := knownOrderStatuses[target]; !ok {
		return nil, ErrOrderStatusInvalid
	}
	if target == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusTransition
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !IsTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusTransition
	}
	// 在线支付订单只能由支付校验确认
	if target == constants.OrderStatusConfirmed && order.Payment.Method == constants.PaymentMethodRazorpay {
		return nil, ErrOrderStatusTransition
	}

	now := time.Now()
	updates := map[string]interface{}{}
	if column, ok := statusTimestampColumns[target]; ok && orderStatusTimestamp(order, target) == nil {
		updates[column] = now
	}
	if (target == constants.OrderStatusShipped || target == constants.OrderStatusDelivered) && !input.Tracking.IsEmpty() {
		updates["tracking_carrier"] = strings.TrimSpace(input.Tracking.Carrier)
		updates["tracking_number"] = strings.TrimSpace(input.Tracking.Number)
		updates["tracking_url"] = strings.TrimSpace(input.Tracking.URL)
	}
	// 货到付款在签收时视为收款完成
	if target == constants.OrderStatusDelivered && order.Payment.Method == constants.PaymentMethodCOD &&
		order.Payment.Status != constants.PaymentStatusCompleted {
		updates["payment_status"] = constants.PaymentStatusCompleted
		updates["payment_paid_at"] = now
	}

	note := strings.TrimSpace(input.Note)
	if note == "" {
		note = fmt.Sprintf("Status updated to %s", target)
	}
	applied, err := applyOrderTransition(s.orderRepo, orderTransition{
		OrderID:   order.ID,
		From:      order.Status,
		To:        target,
		Updates:   updates,
		Note:      note,
		ChangedBy: adminActor(adminID),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderUpdateFailed, err)
	}
	if !applied {
		return nil, ErrOrderStatusTransition
	}
	logger.Infow("order_status_updated",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"from", order.Status,
		"to", target,
		"admin_id", adminID,
	)
	s.invalidateTracking(ctx, order.OrderNumber)
	return s.reload(order.ID)
}

func orderStatusTimestamp(order *models.Order, status string) *time.Time {
	switch status {
	case constants.OrderStatusConfirmed:
		return order.ConfirmedAt
	case constants.OrderStatusProcessing:
		return order.ProcessingAt
	case constants.OrderStatusShipped:
		return order.ShippedAt
	case constants.OrderStatusDelivered:
		return order.DeliveredAt
	case constants.OrderStatusCancelled:
		return order.CancelledAt
	}
	return nil
}

func userActor(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func adminActor(adminID uint) string {
	return fmt.Sprintf("admin:%d", adminID)
}

func (s *OrderService) invalidateTracking(ctx context.Context, orderNumber string) {
	if err := cache.DelOrderTracking(ctx, orderNumber); err != nil {
		logger.Warnw("order_tracking_cache_invalidate_failed", "order_number", orderNumber, "error", err)
	}
}
