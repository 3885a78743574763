package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 支付方式常量
const (
	PaymentMethodRazorpay     = "razorpay"
	PaymentMethodCOD          = "cod"
	PaymentMethodBankTransfer = "bank_transfer"
)

// 支付状态常量
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

// 取消发起方常量
const (
	CancelledByUser   = "user"
	CancelledByAdmin  = "admin"
	CancelledBySystem = "system"
)

// 退款状态常量
const (
	RefundStatusPending       = "pending"
	RefundStatusNotApplicable = "not_applicable"
	RefundStatusCompleted     = "completed"
)

// 询盘状态常量
const (
	EnquiryStatusNew       = "new"
	EnquiryStatusResponded = "responded"
	EnquiryStatusClosed    = "closed"
)

// 供应商状态常量
const (
	SupplierStatusPending  = "pending"
	SupplierStatusApproved = "approved"
	SupplierStatusRejected = "rejected"
)

// 用户角色与状态常量
const (
	UserRoleBuyer    = "buyer"
	UserRoleSupplier = "supplier"
	UserRoleAdmin    = "admin"

	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 起订量比较方向
const (
	MOQModeMax = "max" // 数量不得超过 MOQ
	MOQModeMin = "min" // 数量不得低于 MOQ
)

// 计数器名称
const (
	CounterOrderNumber = "order_number"
)

// 验证码场景
const (
	CaptchaSceneGuestEnquiry  = "guest_enquiry"
	CaptchaSceneSupplierApply = "supplier_apply"
)

// 系统操作人标识（状态历史 changed_by）
const (
	ActorSystem = "system"
)

// 队列与任务名称
const (
	QueueDefault           = "default"
	TaskOrderTimeoutCancel = "order:timeout_cancel"
)
