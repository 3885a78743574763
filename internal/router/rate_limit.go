package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/http/response"
	"github.com/b2b-bazaar/internal/i18n"
	"github.com/b2b-bazaar/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
// BlockSeconds 大于 0 时，首次超限后计数窗口延长为封禁时长
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	MessageKey    string
}

var errRateLimitResult = errors.New("unexpected rate limit script result")

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local block = tonumber(ARGV[3])
if block > 0 and current == tonumber(ARGV[2]) + 1 then
	redis.call("EXPIRE", KEYS[1], block)
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware Redis 频率限制中间件
// Redis 不可用或脚本结果异常时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := rule.buildKey(c, keyFunc)
		count, ttlSeconds, err := evalRateLimit(c, client, key, rule)
		if err != nil {
			logger.Warnw("rate_limit_eval_failed", "prefix", rule.Prefix, "error", err)
			c.Next()
			return
		}
		if count <= int64(rule.MaxRequests) {
			c.Next()
			return
		}

		msgKey := strings.TrimSpace(rule.MessageKey)
		if msgKey == "" {
			msgKey = "error.rate_limited"
		}
		msg := i18n.Sprintf(i18n.ResolveLocale(c), msgKey, rule.retryAfter(ttlSeconds))
		response.Error(c, response.CodeTooManyRequests, msg)
		c.Abort()
	}
}

func (rule RateLimitRule) buildKey(c *gin.Context, keyFunc RateLimitKeyFunc) string {
	key := ""
	if keyFunc != nil {
		key = strings.TrimSpace(keyFunc(c))
	}
	if key == "" {
		key = c.ClientIP()
	}
	if rule.Prefix == "" {
		return key
	}
	return rule.Prefix + ":" + key
}

// retryAfter 提示用户等待的秒数，至少 1 秒
func (rule RateLimitRule) retryAfter(ttlSeconds int64) int {
	if ttlSeconds >= 1 {
		return int(ttlSeconds)
	}
	if rule.WindowSeconds >= 1 {
		return rule.WindowSeconds
	}
	return 1
}

func evalRateLimit(c *gin.Context, client *redis.Client, key string, rule RateLimitRule) (int64, int64, error) {
	result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds).Result()
	if err != nil {
		return 0, 0, err
	}
	values, ok := result.([]interface{})
	if !ok || len(values) < 2 {
		return 0, 0, errRateLimitResult
	}
	count, ok := toInt64(values[0])
	if !ok {
		return 0, 0, errRateLimitResult
	}
	ttl, _ := toInt64(values[1])
	return count, ttl, nil
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByUser 已登录时按用户限流，否则退化为 IP
func KeyByUser(c *gin.Context) string {
	if uid := c.GetUint("user_id"); uid > 0 {
		return fmt.Sprintf("user:%d", uid)
	}
	return c.ClientIP()
}

// RuleFromConfig 由配置构造限流规则
func RuleFromConfig(prefix string, cfg config.RateLimitRuleConfig) RateLimitRule {
	return RateLimitRule{
		Prefix:        prefix,
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxRequests,
		BlockSeconds:  cfg.BlockSeconds,
	}
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	value, ok := payload[field]
	if !ok {
		return ""
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
