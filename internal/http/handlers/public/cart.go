package public

import (
	handlershared "github.com/b2b-bazaar/internal/http/handlers/shared"
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 加入购物车请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// CartQuantityRequest 修改数量请求
type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartSyncRequest 游客购物车合并请求
type CartSyncRequest struct {
	Items []service.CartSyncItem `json:"items"`
}

// GetCart 获取购物车，不存在时自动创建
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetOrCreate(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, cart)
}

// AddCartItem 加入购物车，已存在则累加数量
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	cart, err := h.CartService.Add(uid, req.ProductID, quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, cart)
}

// UpdateCartItem 修改购物车项数量，数量为 0 时移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	cart, err := h.CartService.Update(uid, productID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, cart)
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	cart, err := h.CartService.Remove(uid, productID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Clear(uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, cart)
}

// SyncCart 登录后合并游客购物车
func (h *Handler) SyncCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	cart, err := h.CartService.Sync(uid, req.Items)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, cart)
}
