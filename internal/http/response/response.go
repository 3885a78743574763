package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构，错误时携带 kind
type Response struct {
	StatusCode int         `json:"status_code"`    // 业务状态码
	Kind       Kind        `json:"kind,omitempty"` // 错误类别
	Msg        string      `json:"msg"`            // 提示消息
	Data       interface{} `json:"data"`           // 数据内容
}

// PageResponse 分页响应结构
type PageResponse struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
	})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
		Pagination: pagination,
	})
}

// Fail 按 AppError 输出错误响应，内部错误不出现在响应中
func Fail(c *gin.Context, appErr *AppError) {
	if appErr == nil {
		appErr = NewAppError(CodeInternal, KindInternal, "internal error", nil)
	}
	c.JSON(http.StatusOK, Response{
		StatusCode: appErr.Code,
		Kind:       appErr.Kind,
		Msg:        appErr.Message,
		Data:       attachRequestID(c),
	})
}

// Error 错误响应，类别按状态码推断
func Error(c *gin.Context, statusCode int, msg string) {
	Fail(c, NewAppError(statusCode, "", msg, nil))
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 403响应
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

func attachRequestID(c *gin.Context) interface{} {
	if c == nil {
		return nil
	}
	value, ok := c.Get("request_id")
	if !ok {
		return nil
	}
	if id, ok := value.(string); ok && id != "" {
		return gin.H{"request_id": id}
	}
	return nil
}
