package public

import (
	"github.com/b2b-bazaar/internal/constants"
	handlershared "github.com/b2b-bazaar/internal/http/handlers/shared"
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateEnquiryRequest 询盘请求
type CreateEnquiryRequest struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Quantity  int    `json:"quantity"`

	Captcha handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

func (r CreateEnquiryRequest) toServiceInput(userID uint) service.CreateEnquiryInput {
	return service.CreateEnquiryInput{
		UserID:    userID,
		ProductID: r.ProductID,
		Name:      r.Name,
		Email:     r.Email,
		Company:   r.Company,
		Phone:     r.Phone,
		Subject:   r.Subject,
		Message:   r.Message,
		Quantity:  r.Quantity,
	}
}

// CreatePublicEnquiry 游客或已登录用户提交询盘，游客需要验证码
func (h *Handler) CreatePublicEnquiry(c *gin.Context) {
	var req CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	uid := optionalUserID(c)
	if uid == 0 && h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneGuestEnquiry, req.Captcha.ToServicePayload()); err != nil {
			respondWithMappedError(c, err, captchaErrorRules, response.CodeBadRequest, "error.captcha_invalid")
			return
		}
	}
	h.createEnquiry(c, req.toServiceInput(uid))
}

// CreateMyEnquiry 已登录用户提交询盘
func (h *Handler) CreateMyEnquiry(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	h.createEnquiry(c, req.toServiceInput(uid))
}

func (h *Handler) createEnquiry(c *gin.Context, input service.CreateEnquiryInput) {
	enquiry, err := h.EnquiryService.Create(input)
	if err != nil {
		respondWithMappedError(c, err, enquiryCreateErrorRules, response.CodeInternal, "error.enquiry_create_failed")
		return
	}
	response.Success(c, enquiry)
}

// GetMyEnquiries 当前用户询盘列表
func (h *Handler) GetMyEnquiries(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.QueryPagination(c)
	enquiries, total, err := h.EnquiryService.ListMine(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.enquiry_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, enquiries, handlershared.BuildPagination(page, pageSize, total))
}
