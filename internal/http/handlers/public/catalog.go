package public

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/b2b-bazaar/internal/http/handlers/shared"
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/repository"
	"github.com/b2b-bazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 上架商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	var categoryID uint
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		categoryID = uint(parsed)
	}

	products, total, err := h.CatalogService.ListProducts(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Search:     strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, handlershared.BuildPagination(page, pageSize, total))
}

// GetProduct 商品详情，支持 slug 或数字 ID
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.CatalogService.GetProduct(strings.TrimSpace(c.Param("key")))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, product)
}

// GetCategories 启用的分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}
