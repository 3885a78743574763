package admin

import (
	"strconv"
	"strings"

	"github.com/b2b-bazaar/internal/constants"
	handlershared "github.com/b2b-bazaar/internal/http/handlers/shared"
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/repository"
	"github.com/b2b-bazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 管理端订单状态更新请求
type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	Note           string `json:"note"`
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url"`
}

// AdminCancelOrderRequest 管理端取消订单请求
type AdminCancelOrderRequest struct {
	Reason string `json:"reason"`
}

var adminOrderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
	{target: service.ErrOrderStatusTransition, code: response.CodeConflict, key: "error.order_status_transition"},
	{target: service.ErrOrderCancelNotAllowed, code: response.CodeConflict, key: "error.order_cancel_not_allowed"},
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)

	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			userID = uint(parsed)
		}
	}

	orders, total, err := h.OrderService.ListOrdersForAdmin(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNumber: strings.TrimSpace(c.Query("order_number")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, orders, handlershared.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.GetOrderForAdmin(orderID)
	if err != nil {
		respondWithMappedError(c, err, adminOrderErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderStatus 推进订单履约状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	order, err := h.OrderService.UpdateStatus(c.Request.Context(), adminID, orderID, service.UpdateOrderStatusInput{
		Status: req.Status,
		Note:   req.Note,
		Tracking: models.OrderTracking{
			Carrier: req.Carrier,
			Number:  req.TrackingNumber,
			URL:     req.TrackingURL,
		},
	})
	if err != nil {
		respondWithMappedError(c, err, adminOrderErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	requestLog(c).Infow("admin_order_status_updated",
		"admin_id", adminID,
		"order_id", orderID,
		"status", order.Status,
	)
	response.Success(c, order)
}

// AdminCancelOrder 管理端取消订单，已支付订单进入待退款
func (h *Handler) AdminCancelOrder(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req AdminCancelOrderRequest
	_ = c.ShouldBindJSON(&req)

	order, err := h.OrderService.Cancel(c.Request.Context(), service.CancelActor{
		Kind: constants.CancelledByAdmin,
		ID:   adminID,
	}, orderID, req.Reason)
	if err != nil {
		respondWithMappedError(c, err, adminOrderErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}
