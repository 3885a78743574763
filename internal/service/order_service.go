package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/payment/razorpay"
	"github.com/b2b-bazaar/internal/queue"
	"github.com/b2b-bazaar/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	counterRepo repository.CounterRepository
	gateway     PaymentGateway
	queueClient *queue.Client
	rules       PricingRules
	pendingTTL  time.Duration
	currency    string
}

// OrderServiceOptions 订单服务依赖
type OrderServiceOptions struct {
	OrderRepo   repository.OrderRepository
	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	CounterRepo repository.CounterRepository
	Gateway     PaymentGateway
	QueueClient *queue.Client
	Rules       PricingRules
	PendingTTL  time.Duration
	Currency    string
}

// NewOrderService 创建订单服务
func NewOrderService(opts OrderServiceOptions) *OrderService {
	currency := strings.ToUpper(strings.TrimSpace(opts.Currency))
	if currency == "" {
		currency = "INR"
	}
	ttl := opts.PendingTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &OrderService{
		orderRepo:   opts.OrderRepo,
		cartRepo:    opts.CartRepo,
		productRepo: opts.ProductRepo,
		counterRepo: opts.CounterRepo,
		gateway:     opts.Gateway,
		queueClient: opts.QueueClient,
		rules:       opts.Rules,
		pendingTTL:  ttl,
		currency:    currency,
	}
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
	Notes           string
}

// CheckoutResult 结算结果，供前端拉起支付
type CheckoutResult struct {
	OrderID         uint         `json:"order_id"`
	OrderNumber     string       `json:"order_number"`
	Amount          models.Money `json:"amount"`
	AmountMinor     int64        `json:"amount_minor"`
	Currency        string       `json:"currency"`
	PaymentMethod   string       `json:"payment_method"`
	RazorpayOrderID string       `json:"razorpay_order_id,omitempty"`
	KeyID           string       `json:"key_id,omitempty"`
}

// CancelActor 取消发起方
type CancelActor struct {
	Kind string // user / admin / system
	ID   uint
}

// OrderTrackingView 公开订单追踪视图，不含金额、地址与支付信息
type OrderTrackingView struct {
	OrderNumber   string                      `json:"order_number"`
	Status        string                      `json:"status"`
	StatusHistory []OrderTrackingEvent `json:"status_history"`
	Tracking      models.OrderTracking `json:"tracking"`
	CreatedAt     time.Time            `json:"created_at"`
}

// OrderTrackingEvent 公开时间线条目，不含操作人
type OrderTrackingEvent struct {
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Checkout 将购物车转为待支付订单
// 购物车在支付校验成功后才清空
func (s *OrderService) Checkout(ctx context.Context, userID uint, input CheckoutInput) (*CheckoutResult, error) {
	if userID == 0 {
		return nil, ErrInvalidRequest
	}
	address := input.ShippingAddress.Normalize()
	if missing := address.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrShippingAddressInvalid, strings.Join(missing, ", "))
	}
	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if method == "" {
		method = constants.PaymentMethodRazorpay
	}
	if !isSupportedPaymentMethod(method) {
		return nil, ErrPaymentMethodInvalid
	}
	if method == constants.PaymentMethodRazorpay && s.gateway == nil {
		return nil, ErrPaymentConfigInvalid
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}
	products, err := s.loadCartProducts(cart)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	subtotal := models.NewMoneyFromInt(0)
	for _, line := range cart.Items {
		product := products[line.ProductID]
		lineTotal := line.Price.MulInt(line.Quantity)
		subtotal = subtotal.Add(lineTotal)
		name := line.Snapshot.Name
		if name == "" {
			name = product.Name
		}
		image := line.Snapshot.Image
		if image == "" {
			image = product.Images.First()
		}
		items = append(items, models.OrderItem{
			ProductID:          line.ProductID,
			ProductName:        name,
			ProductImage:       image,
			ProductDescription: product.Description,
			CategoryName:       product.CategoryName(),
			MOQUnit:            product.MOQUnit,
			Quantity:           line.Quantity,
			UnitPrice:          line.Price,
			Subtotal:           lineTotal,
		})
	}
	pricing := ComputeOrderPricing(subtotal, s.rules)

	// 网关下单在事务外完成，收据号与订单编号无关，失败时不消耗编号
	payment := models.OrderPayment{
		Method: method,
		Status: constants.PaymentStatusPending,
	}
	if method == constants.PaymentMethodRazorpay {
		receipt := newPaymentReceipt()
		gatewayOrder, err := s.gateway.CreateOrder(ctx, razorpay.CreateOrderInput{
			AmountMinor: pricing.Total.MinorUnits(),
			Currency:    s.currency,
			Receipt:     receipt,
			Notes: map[string]string{
				"user_id": strconv.FormatUint(uint64(userID), 10),
			},
		})
		if err != nil {
			logger.Warnw("order_checkout_gateway_failed", "user_id", userID, "receipt", receipt, "error", err)
			if errors.Is(err, ErrPaymentConfigInvalid) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrPaymentGatewayFailed, err)
		}
		payment.RazorpayOrderID = gatewayOrder.ID
		payment.RazorpayReceipt = receipt
	}

	order := &models.Order{
		UserID:       userID,
		Status:       constants.OrderStatusPending,
		Currency:     s.currency,
		Subtotal:     pricing.Subtotal,
		Tax:          pricing.Tax,
		ShippingCost: pricing.ShippingCost,
		Total:        pricing.Total,
		Notes:        strings.TrimSpace(input.Notes),
		Address:      address,
		Payment:      payment,
		Items:        items,
		StatusHistory: []models.OrderStatusHistory{
			{Status: constants.OrderStatusPending, Note: "Order placed", ChangedBy: userActor(userID)},
		},
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		seq, err := s.counterRepo.WithTx(tx).Next(constants.CounterOrderNumber)
		if err != nil {
			return err
		}
		order.OrderNumber = FormatOrderNumber(time.Now(), seq)
		return s.orderRepo.WithTx(tx).Create(order)
	})
	if err != nil {
		// 已创建的网关订单未支付会自行过期
		logger.Errorw("order_checkout_persist_failed",
			"user_id", userID,
			"razorpay_order_id", payment.RazorpayOrderID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}

	if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
	}, s.pendingTTL); err != nil {
		// 定时清扫兜底
		logger.Warnw("order_timeout_task_enqueue_failed", "order_id", order.ID, "error", err)
	}
	logger.Infow("order_checkout_created",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"user_id", userID,
		"total", order.Total.String(),
		"payment_method", method,
	)

	result := &CheckoutResult{
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Amount:          order.Total,
		AmountMinor:     order.Total.MinorUnits(),
		Currency:        order.Currency,
		PaymentMethod:   method,
		RazorpayOrderID: order.Payment.RazorpayOrderID,
	}
	if method == constants.PaymentMethodRazorpay {
		result.KeyID = s.gateway.KeyID()
	}
	return result, nil
}

// newPaymentReceipt 生成网关收据号，长度不超过 40
func newPaymentReceipt() string {
	return "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ListOrders 用户订单列表
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrInvalidRequest
	}
	orders, total, err := s.orderRepo.ListByUser(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	return orders, total, nil
}

// GetOrder 获取用户自己的订单，他人订单按不存在处理
func (s *OrderService) GetOrder(userID, orderID uint) (*models.Order, error) {
	if userID == 0 || orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersForAdmin 管理端订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	return orders, total, nil
}

// GetOrderForAdmin 管理端订单详情
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	return s.reload(orderID)
}

// Cancel 用户或管理员取消订单
// 已支付订单退款状态记为 pending，否则为 not_applicable
func (s *OrderService) Cancel(ctx context.Context, actor CancelActor, orderID uint, reason string) (*models.Order, error) {
	var (
		order *models.Order
		err   error
	)
	switch actor.Kind {
	case constants.CancelledByUser:
		order, err = s.GetOrder(actor.ID, orderID)
	case constants.CancelledByAdmin:
		order, err = s.GetOrderForAdmin(orderID)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	if !CanCancel(order.Status) {
		return nil, ErrOrderCancelNotAllowed
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Cancelled by " + actor.Kind
	}
	refundStatus := constants.RefundStatusNotApplicable
	if order.Payment.Status == constants.PaymentStatusCompleted {
		refundStatus = constants.RefundStatusPending
	}
	changedBy := userActor(actor.ID)
	if actor.Kind == constants.CancelledByAdmin {
		changedBy = adminActor(actor.ID)
	}

	applied, err := applyOrderTransition(s.orderRepo, orderTransition{
		OrderID: order.ID,
		From:    order.Status,
		To:      constants.OrderStatusCancelled,
		Updates: map[string]interface{}{
			"cancelled_at": time.Now(),
			"cancellation": &models.OrderCancellation{
				Reason:       reason,
				CancelledBy:  actor.Kind,
				RefundStatus: refundStatus,
			},
		},
		Note:      reason,
		ChangedBy: changedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderUpdateFailed, err)
	}
	if !applied {
		return nil, ErrOrderCancelNotAllowed
	}
	logger.Infow("order_cancelled",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"cancelled_by", actor.Kind,
		"actor_id", actor.ID,
		"refund_status", refundStatus,
	)
	s.invalidateTracking(ctx, order.OrderNumber)
	return s.reload(order.ID)
}

// CancelExpired 取消超时未支付订单，非待支付或已付款时跳过
func (s *OrderService) CancelExpired(ctx context.Context, orderID uint) (bool, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil || order.Status != constants.OrderStatusPending ||
		order.Payment.Status == constants.PaymentStatusCompleted {
		return false, nil
	}
	applied, err := applyOrderTransition(s.orderRepo, orderTransition{
		OrderID: order.ID,
		From:    constants.OrderStatusPending,
		To:      constants.OrderStatusCancelled,
		Updates: map[string]interface{}{
			"cancelled_at":           time.Now(),
			"payment_status":         constants.PaymentStatusFailed,
			"payment_failure_reason": "Payment window expired",
			"cancellation": &models.OrderCancellation{
				Reason:       "Payment window expired",
				CancelledBy:  constants.CancelledBySystem,
				RefundStatus: constants.RefundStatusNotApplicable,
			},
		},
		Note:      "Payment window expired",
		ChangedBy: constants.ActorSystem,
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrOrderUpdateFailed, err)
	}
	if applied {
		logger.Infow("order_pending_expired", "order_id", order.ID, "order_number", order.OrderNumber)
		s.invalidateTracking(ctx, order.OrderNumber)
	}
	return applied, nil
}

// CancelExpiredPending 批量清扫创建时间早于 before 的待支付订单
func (s *OrderService) CancelExpiredPending(ctx context.Context, before time.Time, limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}
	orders, err := s.orderRepo.ListExpiredPending(before, limit)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	cancelled := 0
	for _, order := range orders {
		if ctx.Err() != nil {
			return cancelled, ctx.Err()
		}
		applied, err := s.CancelExpired(ctx, order.ID)
		if err != nil {
			logger.Warnw("order_pending_sweep_cancel_failed", "order_id", order.ID, "error", err)
			continue
		}
		if applied {
			cancelled++
		}
	}
	return cancelled, nil
}

// PendingTTL 待支付订单保留时长
func (s *OrderService) PendingTTL() time.Duration {
	return s.pendingTTL
}

func (s *OrderService) loadCartProducts(cart *models.Cart) (map[uint]*models.Product, error) {
	ids := make([]uint, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderCreateFailed, err)
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok || !product.IsActive {
			return nil, fmt.Errorf("%w: product %d", ErrProductUnavailable, item.ProductID)
		}
	}
	return byID, nil
}

func (s *OrderService) reload(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func isSupportedPaymentMethod(method string) bool {
	switch method {
	case constants.PaymentMethodRazorpay, constants.PaymentMethodCOD, constants.PaymentMethodBankTransfer:
		return true
	}
	return false
}
