package public

import (
	"errors"

	handlershared "github.com/b2b-bazaar/internal/http/handlers/shared"
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			handlershared.RespondKnownError(c, rule.code, rule.key, rule.target)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidRequest, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrMOQExceeded, code: response.CodeBadRequest, key: "error.moq_exceeded"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrProductUnavailable, code: response.CodeBadRequest, key: "error.product_unavailable"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrCartConflict, code: response.CodeConflict, key: "error.cart_conflict"},
}

var orderLookupErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidRequest, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
}

var checkoutErrorRules = concatMappedHandlerErrors(orderLookupErrorRules, []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrShippingAddressInvalid, code: response.CodeBadRequest, key: "error.shipping_address_invalid"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, key: "error.payment_method_invalid"},
	{target: service.ErrProductUnavailable, code: response.CodeBadRequest, key: "error.product_unavailable"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_unavailable"},
	{target: service.ErrPaymentConfigInvalid, code: response.CodeInternal, key: "error.payment_config_invalid"},
	{target: service.ErrPaymentGatewayFailed, code: response.CodeUpstream, key: "error.payment_gateway_failed"},
})

var cancelErrorRules = concatMappedHandlerErrors(orderLookupErrorRules, []mappedHandlerError{
	{target: service.ErrOrderCancelNotAllowed, code: response.CodeConflict, key: "error.order_cancel_not_allowed"},
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.forbidden"},
})

var paymentVerifyErrorRules = concatMappedHandlerErrors(orderLookupErrorRules, []mappedHandlerError{
	{target: service.ErrPaymentVerificationFailed, code: response.CodeVerificationFailed, key: "error.payment_verify_failed"},
	{target: service.ErrPaymentConfigInvalid, code: response.CodeInternal, key: "error.payment_config_invalid"},
})

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
	{target: service.ErrCaptchaConfigInvalid, code: response.CodeInternal, key: "error.captcha_config_invalid"},
}

var enquiryCreateErrorRules = concatMappedHandlerErrors(captchaErrorRules, []mappedHandlerError{
	{target: service.ErrEnquiryInvalid, code: response.CodeBadRequest, key: "error.enquiry_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
})

var supplierApplyErrorRules = concatMappedHandlerErrors(captchaErrorRules, []mappedHandlerError{
	{target: service.ErrSupplierInvalid, code: response.CodeBadRequest, key: "error.supplier_invalid"},
	{target: service.ErrSupplierDuplicate, code: response.CodeConflict, key: "error.supplier_duplicate"},
})
