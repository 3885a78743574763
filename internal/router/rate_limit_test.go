package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/b2b-bazaar/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TestKeyByIPAndJSONFieldKeepsEnquiryBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/public/enquiries", strings.NewReader(`{"email":" Buyer@Acme.in ","message":"need 500 units"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "10.0.0.8:5678"

	key := KeyByIPAndJSONField("email")(c)
	if key != "buyer@acme.in|10.0.0.8" {
		t.Fatalf("key want buyer@acme.in|10.0.0.8 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "need 500 units") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByUserFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/orders/checkout", nil)
	c.Request.RemoteAddr = "10.0.0.9:4000"
	if got := KeyByUser(c); got != "10.0.0.9" {
		t.Fatalf("guest key want ip got %s", got)
	}

	c.Set("user_id", uint(42))
	if got := KeyByUser(c); got != "user:42" {
		t.Fatalf("user key want user:42 got %s", got)
	}
}

func TestRuleFromConfigAndKeyPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rule := RuleFromConfig("bz:rate:checkout", config.RateLimitRuleConfig{WindowSeconds: 60, MaxRequests: 5, BlockSeconds: 300})
	if rule.WindowSeconds != 60 || rule.MaxRequests != 5 || rule.BlockSeconds != 300 {
		t.Fatalf("unexpected rule: %+v", rule)
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Set("user_id", uint(7))
	if got := rule.buildKey(c, KeyByUser); got != "bz:rate:checkout:user:7" {
		t.Fatalf("unexpected key %s", got)
	}

	if got := rule.retryAfter(0); got != 60 {
		t.Fatalf("retry after should fall back to window, got %d", got)
	}
	if got := rule.retryAfter(240); got != 240 {
		t.Fatalf("retry after should use ttl, got %d", got)
	}
	if got := (RateLimitRule{}).retryAfter(-1); got != 1 {
		t.Fatalf("retry after floor should be 1, got %d", got)
	}
}

func TestRateLimitMiddlewarePassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	unreachable := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = unreachable.Close() })

	cases := []struct {
		name   string
		client *redis.Client
	}{
		{name: "no client", client: nil},
		{name: "redis down", client: unreachable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RateLimitMiddleware(tc.client, RateLimitRule{Prefix: "bz:rate:order_track", WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
			r.GET("/track", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/track", nil))
			if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
				t.Fatalf("request should pass through, got %d %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestToInt64(t *testing.T) {
	if got, ok := toInt64(int64(10)); !ok || got != 10 {
		t.Fatalf("int64 conversion failed: %d %v", got, ok)
	}
	if got, ok := toInt64(float64(13.9)); !ok || got != 13 {
		t.Fatalf("float64 conversion failed: %d %v", got, ok)
	}
	if _, ok := toInt64("bad"); ok {
		t.Fatalf("string should not convert")
	}
}
