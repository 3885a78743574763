package admin

import (
	"strings"

	handlershared "github.com/b2b-bazaar/internal/http/handlers/shared"
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/repository"
	"github.com/b2b-bazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// RespondEnquiryRequest 询盘回复请求
type RespondEnquiryRequest struct {
	Message string `json:"message" binding:"required"`
}

var adminEnquiryErrorRules = []mappedHandlerError{
	{target: service.ErrEnquiryNotFound, code: response.CodeNotFound, key: "error.enquiry_not_found"},
	{target: service.ErrEnquiryInvalid, code: response.CodeBadRequest, key: "error.enquiry_invalid"},
	{target: service.ErrEnquiryStatusInvalid, code: response.CodeConflict, key: "error.enquiry_status_invalid"},
}

// AdminListEnquiries 询盘列表
func (h *Handler) AdminListEnquiries(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	enquiries, total, err := h.EnquiryService.ListForAdmin(repository.EnquiryListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.enquiry_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, enquiries, handlershared.BuildPagination(page, pageSize, total))
}

// AdminRespondEnquiry 回复询盘
func (h *Handler) AdminRespondEnquiry(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	enquiryID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req RespondEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	enquiry, err := h.EnquiryService.Respond(adminID, enquiryID, req.Message)
	if err != nil {
		respondWithMappedError(c, err, adminEnquiryErrorRules, response.CodeInternal, "error.enquiry_update_failed")
		return
	}
	response.Success(c, enquiry)
}

// AdminCloseEnquiry 关闭询盘
func (h *Handler) AdminCloseEnquiry(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	enquiryID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	enquiry, err := h.EnquiryService.Close(adminID, enquiryID)
	if err != nil {
		respondWithMappedError(c, err, adminEnquiryErrorRules, response.CodeInternal, "error.enquiry_update_failed")
		return
	}
	response.Success(c, enquiry)
}
