package admin

import (
	"strings"

	handlershared "github.com/b2b-bazaar/internal/http/handlers/shared"
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/repository"
	"github.com/b2b-bazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// SupplierDecisionRequest 供应商审核请求
type SupplierDecisionRequest struct {
	Comment string `json:"comment"`
	UserID  uint   `json:"user_id"`
}

var adminSupplierErrorRules = []mappedHandlerError{
	{target: service.ErrSupplierNotFound, code: response.CodeNotFound, key: "error.supplier_not_found"},
	{target: service.ErrSupplierStatusInvalid, code: response.CodeConflict, key: "error.supplier_status_invalid"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

// AdminListSuppliers 供应商申请列表
func (h *Handler) AdminListSuppliers(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	suppliers, total, err := h.SupplierService.ListForAdmin(repository.SupplierListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.supplier_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, suppliers, handlershared.BuildPagination(page, pageSize, total))
}

// AdminApproveSupplier 审核通过
func (h *Handler) AdminApproveSupplier(c *gin.Context) {
	h.decideSupplier(c, true)
}

// AdminRejectSupplier 审核拒绝
func (h *Handler) AdminRejectSupplier(c *gin.Context) {
	h.decideSupplier(c, false)
}

func (h *Handler) decideSupplier(c *gin.Context, approve bool) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	supplierID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req SupplierDecisionRequest
	_ = c.ShouldBindJSON(&req)

	var (
		supplier *models.Supplier
		err      error
	)
	if approve {
		supplier, err = h.SupplierService.Approve(adminID, supplierID, service.SupplierDecisionInput{
			Comment: req.Comment,
			UserID:  req.UserID,
		})
	} else {
		supplier, err = h.SupplierService.Reject(adminID, supplierID, req.Comment)
	}
	if err != nil {
		respondWithMappedError(c, err, adminSupplierErrorRules, response.CodeInternal, "error.supplier_update_failed")
		return
	}
	response.Success(c, supplier)
}
