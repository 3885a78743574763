package public

import (
	"strings"

	"github.com/b2b-bazaar/internal/constants"
	handlershared "github.com/b2b-bazaar/internal/http/handlers/shared"
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/repository"
	"github.com/b2b-bazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	Notes           string                 `json:"notes"`
}

// CancelOrderRequest 取消订单请求
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// Checkout 购物车结算为待支付订单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	result, err := h.OrderService.Checkout(c.Request.Context(), uid, service.CheckoutInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.order_create_failed")
		return
	}
	response.Success(c, result)
}

// GetOrders 当前用户订单列表
func (h *Handler) GetOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	orders, total, err := h.OrderService.ListOrders(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, orders, handlershared.BuildPagination(page, pageSize, total))
}

// GetOrder 当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.GetOrder(uid, orderID)
	if err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// CancelOrder 用户取消自己的订单
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req CancelOrderRequest
	// 取消原因可选，允许空请求体
	_ = c.ShouldBindJSON(&req)

	order, err := h.OrderService.Cancel(c.Request.Context(), service.CancelActor{
		Kind: constants.CancelledByUser,
		ID:   uid,
	}, orderID, req.Reason)
	if err != nil {
		respondWithMappedError(c, err, cancelErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}

// TrackOrder 按订单编号公开查询进度
func (h *Handler) TrackOrder(c *gin.Context) {
	view, err := h.OrderService.TrackByOrderNumber(c.Request.Context(), c.Param("order_number"))
	if err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, view)
}
