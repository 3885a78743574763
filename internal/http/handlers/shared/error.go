package shared

import (
	"errors"

	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/i18n"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// errorKinds 业务错误到对外错误类别，按顺序匹配
var errorKinds = []struct {
	target error
	kind   response.Kind
}{
	{service.ErrProductUnavailable, response.KindUnavailable},
	{service.ErrMOQExceeded, response.KindMOQExceeded},
	{service.ErrForbidden, response.KindUnauthorized},
	{service.ErrPaymentVerificationFailed, response.KindVerificationFailed},
	{service.ErrCaptchaRequired, response.KindVerificationFailed},
	{service.ErrCaptchaInvalid, response.KindVerificationFailed},
	{service.ErrPaymentGatewayFailed, response.KindUpstreamFailure},
	{service.ErrPaymentConfigInvalid, response.KindUpstreamFailure},
	{service.ErrProductNotFound, response.KindNotFound},
	{service.ErrCartItemNotFound, response.KindNotFound},
	{service.ErrOrderNotFound, response.KindNotFound},
	{service.ErrEnquiryNotFound, response.KindNotFound},
	{service.ErrSupplierNotFound, response.KindNotFound},
	{service.ErrUserNotFound, response.KindNotFound},
	{service.ErrOrderCancelNotAllowed, response.KindConflict},
	{service.ErrOrderStatusTransition, response.KindConflict},
	{service.ErrEnquiryStatusInvalid, response.KindConflict},
	{service.ErrSupplierStatusInvalid, response.KindConflict},
	{service.ErrSupplierDuplicate, response.KindConflict},
	{service.ErrCartConflict, response.KindConflict},
	{service.ErrInvalidRequest, response.KindInvalidRequest},
	{service.ErrShippingAddressInvalid, response.KindInvalidRequest},
	{service.ErrCartEmpty, response.KindInvalidRequest},
	{service.ErrInvalidQuantity, response.KindInvalidRequest},
	{service.ErrPaymentMethodInvalid, response.KindInvalidRequest},
	{service.ErrOrderStatusInvalid, response.KindInvalidRequest},
	{service.ErrEnquiryInvalid, response.KindInvalidRequest},
	{service.ErrSupplierInvalid, response.KindInvalidRequest},
}

// ErrorKind 返回业务错误的对外类别，未识别时返回空串
func ErrorKind(err error) response.Kind {
	if err == nil {
		return ""
	}
	for _, entry := range errorKinds {
		if errors.Is(err, entry.target) {
			return entry.kind
		}
	}
	return ""
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	appErr := response.NewAppError(code, ErrorKind(err), i18n.T(i18n.ResolveLocale(c), key), err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"kind", appErr.Kind,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Fail(c, appErr)
}

// RespondKnownError 返回已识别业务错误的响应，类别取自该错误，不记录日志。
func RespondKnownError(c *gin.Context, code int, key string, target error) {
	response.Fail(c, response.NewAppError(code, ErrorKind(target), i18n.T(i18n.ResolveLocale(c), key), nil))
}
