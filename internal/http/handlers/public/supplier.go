package public

import (
	"github.com/b2b-bazaar/internal/constants"
	handlershared "github.com/b2b-bazaar/internal/http/handlers/shared"
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// SupplierApplyRequest 供应商入驻申请
type SupplierApplyRequest struct {
	CompanyName  string `json:"company_name"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	BusinessType string `json:"business_type"`
	GSTNumber    string `json:"gst_number"`
	Address      string `json:"address"`
	Description  string `json:"description"`

	Captcha handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// ApplySupplier 提交供应商入驻申请
func (h *Handler) ApplySupplier(c *gin.Context) {
	var req SupplierApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneSupplierApply, req.Captcha.ToServicePayload()); err != nil {
			respondWithMappedError(c, err, captchaErrorRules, response.CodeBadRequest, "error.captcha_invalid")
			return
		}
	}

	supplier, err := h.SupplierService.Apply(service.SupplierApplyInput{
		CompanyName:  req.CompanyName,
		ContactName:  req.ContactName,
		Email:        req.Email,
		Phone:        req.Phone,
		BusinessType: req.BusinessType,
		GSTNumber:    req.GSTNumber,
		Address:      req.Address,
		Description:  req.Description,
	})
	if err != nil {
		respondWithMappedError(c, err, supplierApplyErrorRules, response.CodeInternal, "error.supplier_apply_failed")
		return
	}
	response.Success(c, supplier)
}
