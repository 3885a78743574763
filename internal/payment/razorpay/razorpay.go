package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrConfigInvalid    = errors.New("razorpay config invalid")
	ErrRequestFailed    = errors.New("razorpay request failed")
	ErrResponseInvalid  = errors.New("razorpay response invalid")
	ErrSignatureInvalid = errors.New("razorpay signature invalid")
)

const (
	defaultAPIBaseURL = "https://api.razorpay.com"
	defaultCurrency   = "INR"
	defaultTimeout    = 12 * time.Second
	maxReceiptLength  = 40
)

// Config Razorpay 网关配置。
type Config struct {
	KeyID      string
	KeySecret  string
	APIBaseURL string
	Currency   string
	Timeout    time.Duration
}

// CreateOrderInput 创建网关订单输入。
type CreateOrderInput struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

// CreateOrderResult 创建网关订单返回。
type CreateOrderResult struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// Normalize 填充默认值。
func (c *Config) Normalize() {
	if c == nil {
		return
	}
	c.KeyID = strings.TrimSpace(c.KeyID)
	c.KeySecret = strings.TrimSpace(c.KeySecret)
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	if c.Currency == "" {
		c.Currency = defaultCurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// ValidateConfig 校验配置。
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeyID) == "" {
		return fmt.Errorf("%w: key_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeySecret) == "" {
		return fmt.Errorf("%w: key_secret is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.APIBaseURL)); err != nil {
		return fmt.Errorf("%w: api_base_url is invalid", ErrConfigInvalid)
	}
	return nil
}

// CreateOrder 在网关创建订单，金额单位为最小货币单位（paise）。
func CreateOrder(ctx context.Context, cfg *Config, input CreateOrderInput) (*CreateOrderResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if input.AmountMinor <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrConfigInvalid)
	}
	receipt := strings.TrimSpace(input.Receipt)
	if receipt == "" {
		return nil, fmt.Errorf("%w: receipt is required", ErrConfigInvalid)
	}
	if len(receipt) > maxReceiptLength {
		receipt = receipt[:maxReceiptLength]
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = cfg.Currency
	}
	if currency == "" {
		currency = defaultCurrency
	}

	body, err := json.Marshal(createOrderRequest{
		Amount:   input.AmountMinor,
		Currency: currency,
		Receipt:  receipt,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request failed", ErrRequestFailed)
	}

	respBody, statusCode, err := doJSONRequest(ctx, cfg, http.MethodPost, "/v1/orders", body)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: create order status %d: %s", ErrResponseInvalid, statusCode, describeError(respBody))
	}

	var result CreateOrderResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	result.ID = strings.TrimSpace(result.ID)
	if result.ID == "" {
		return nil, fmt.Errorf("%w: missing order id", ErrResponseInvalid)
	}
	return &result, nil
}

// Verifier 校验支付回传签名，密钥在构造时注入。
type Verifier struct {
	secret []byte
}

// NewVerifier 创建签名校验器。
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(strings.TrimSpace(secret))}
}

// Configured 是否配置了密钥。
func (v *Verifier) Configured() bool {
	return v != nil && len(v.secret) > 0
}

// Sign 计算 hex(HMAC-SHA256(secret, "orderID|paymentID"))。
func (v *Verifier) Sign(orderID, paymentID string) string {
	if v == nil {
		return ""
	}
	h := hmac.New(sha256.New, v.secret)
	_, _ = h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// Verify 常量时间比较签名。
func (v *Verifier) Verify(orderID, paymentID, signature string) bool {
	if !v.Configured() {
		return false
	}
	orderID = strings.TrimSpace(orderID)
	paymentID = strings.TrimSpace(paymentID)
	signature = strings.ToLower(strings.TrimSpace(signature))
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	expected := v.Sign(orderID, paymentID)
	return hmac.Equal([]byte(signature), []byte(expected))
}

func doJSONRequest(ctx context.Context, cfg *Config, method, path string, body []byte) ([]byte, int, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.SetBasicAuth(cfg.KeyID, cfg.KeySecret)
	req.Header.Set("Content-Type", "application/json")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	resp, err := (&http.Client{Timeout: timeout}).Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	return respBody, resp.StatusCode, nil
}

func describeError(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "unknown error"
	}
	code := strings.TrimSpace(parsed.Error.Code)
	desc := strings.TrimSpace(parsed.Error.Description)
	switch {
	case code != "" && desc != "":
		return code + " " + desc
	case desc != "":
		return desc
	case code != "":
		return code
	default:
		return "unknown error"
	}
}
