package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/b2b-bazaar/internal/authz"
	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/i18n"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-Request-ID",
			"X-Locale",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// bearerToken 提取 Bearer 令牌，返回错误文案 key
func bearerToken(c *gin.Context) (string, string) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", "error.auth_header_missing"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "error.auth_header_invalid"
	}
	return strings.TrimSpace(parts[1]), ""
}

// authenticateUser 校验令牌并解析鉴权快照，失败时已写出响应
func authenticateUser(c *gin.Context, userAuth *service.UserAuthService, tokenString string) bool {
	claims, err := userAuth.ParseUserJWT(tokenString)
	if err != nil {
		abortUnauthorized(c, "error.token_invalid")
		return false
	}
	state, err := userAuth.ResolveAuthState(c.Request.Context(), claims)
	if err != nil || state == nil {
		logger.Warnw("user_auth_state_resolve_failed", "user_id", claims.UserID, "error", err)
		abortUnauthorized(c, "error.token_invalid")
		return false
	}
	if !isActiveUserStatus(state.Status) {
		abortUnauthorized(c, "error.account_disabled")
		return false
	}
	c.Set("user_id", claims.UserID)
	c.Set("user_email", claims.Email)
	c.Set("user_role", state.Role)
	return true
}

// UserJWTAuthMiddleware 用户 JWT 鉴权中间件
// 令牌由外部身份服务签发，角色与状态以本地镜像为准
func UserJWTAuthMiddleware(userAuth *service.UserAuthService, secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(secretKey) == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		if userAuth == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		tokenString, errKey := bearerToken(c)
		if errKey != "" {
			abortUnauthorized(c, errKey)
			return
		}
		if !authenticateUser(c, userAuth, tokenString) {
			return
		}
		c.Next()
	}
}

// OptionalUserJWTMiddleware 可选登录态，无令牌时按游客放行
func OptionalUserJWTMiddleware(userAuth *service.UserAuthService, secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userAuth == nil || strings.TrimSpace(secretKey) == "" || strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			c.Next()
			return
		}
		tokenString, errKey := bearerToken(c)
		if errKey != "" {
			abortUnauthorized(c, errKey)
			return
		}
		if !authenticateUser(c, userAuth, tokenString) {
			return
		}
		c.Next()
	}
}

// AdminRoleMiddleware 要求用户角色为 admin，并写入 admin_id
func AdminRoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("user_role")
		if roleText, ok := role.(string); !ok || roleText != constants.UserRoleAdmin {
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}
		c.Set("admin_id", c.GetUint("user_id"))
		c.Next()
	}
}

// AdminRBACMiddleware 管理端 RBAC 鉴权中间件，按路由模板与方法校验
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		adminID := c.GetUint("admin_id")
		if adminID == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceAdmin(adminID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}

		c.Next()
	}
}

func isActiveUserStatus(status string) bool {
	return strings.ToLower(strings.TrimSpace(status)) == constants.UserStatusActive
}
