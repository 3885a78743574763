package service

import "errors"

// 请求参数类错误
var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrShippingAddressInvalid = errors.New("shipping address incomplete")
	ErrCartEmpty              = errors.New("cart is empty")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrPaymentMethodInvalid   = errors.New("payment method invalid")
	ErrOrderStatusInvalid     = errors.New("order status invalid")
	ErrEnquiryInvalid         = errors.New("enquiry invalid")
	ErrSupplierInvalid        = errors.New("supplier application invalid")
)

// 资源不存在
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrEnquiryNotFound  = errors.New("enquiry not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrUserNotFound     = errors.New("user not found")
)

// 业务规则
var (
	ErrProductUnavailable = errors.New("product unavailable")
	ErrMOQExceeded        = errors.New("quantity violates minimum order quantity")
	ErrForbidden          = errors.New("forbidden")
)

// 状态冲突
var (
	ErrOrderCancelNotAllowed = errors.New("order cannot be cancelled in current status")
	ErrOrderStatusTransition = errors.New("order status transition not allowed")
	ErrEnquiryStatusInvalid  = errors.New("enquiry status transition not allowed")
	ErrSupplierStatusInvalid = errors.New("supplier already decided")
	ErrSupplierDuplicate     = errors.New("supplier application already exists")
	ErrCartConflict          = errors.New("cart modified concurrently")
)

// 校验失败
var (
	ErrPaymentVerificationFailed = errors.New("payment verification failed")
	ErrCaptchaRequired           = errors.New("captcha required")
	ErrCaptchaInvalid            = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid      = errors.New("captcha config invalid")
)

// 上游网关
var (
	ErrPaymentGatewayFailed = errors.New("payment gateway request failed")
	ErrPaymentConfigInvalid = errors.New("payment gateway not configured")
)

// 内部错误包装
var (
	ErrOrderCreateFailed = errors.New("order create failed")
	ErrOrderFetchFailed  = errors.New("order fetch failed")
	ErrOrderUpdateFailed = errors.New("order update failed")
	ErrCartUpdateFailed  = errors.New("cart update failed")
)
