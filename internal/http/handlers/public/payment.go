package public

import (
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// VerifyPaymentRequest 前端支付完成回传
type VerifyPaymentRequest struct {
	OrderID           uint   `json:"order_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// VerifyPayment 校验支付签名并确认订单
func (h *Handler) VerifyPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	order, err := h.PaymentService.VerifyPayment(c.Request.Context(), uid, service.VerifyPaymentInput{
		OrderID:           req.OrderID,
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
	})
	if err != nil {
		respondWithMappedError(c, err, paymentVerifyErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}
