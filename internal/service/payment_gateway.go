package service

import (
	"context"

	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/payment/razorpay"
)

// PaymentGateway 支付网关下单能力
type PaymentGateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, input razorpay.CreateOrderInput) (*razorpay.CreateOrderResult, error)
}

// RazorpayGateway 基于 Razorpay REST 接口的网关实现
type RazorpayGateway struct {
	cfg *razorpay.Config
}

// NewRazorpayGateway 从配置创建网关
func NewRazorpayGateway(cfg config.RazorpayConfig) *RazorpayGateway {
	rc := &razorpay.Config{
		KeyID:      cfg.KeyID,
		KeySecret:  cfg.KeySecret,
		APIBaseURL: cfg.APIBaseURL,
		Currency:   cfg.Currency,
		Timeout:    cfg.Timeout(),
	}
	rc.Normalize()
	return &RazorpayGateway{cfg: rc}
}

// KeyID 返回前端拉起支付所需的公钥 ID
func (g *RazorpayGateway) KeyID() string {
	if g == nil || g.cfg == nil {
		return ""
	}
	return g.cfg.KeyID
}

// CreateOrder 创建网关订单
func (g *RazorpayGateway) CreateOrder(ctx context.Context, input razorpay.CreateOrderInput) (*razorpay.CreateOrderResult, error) {
	if g == nil || g.cfg == nil {
		return nil, ErrPaymentConfigInvalid
	}
	if err := razorpay.ValidateConfig(g.cfg); err != nil {
		return nil, ErrPaymentConfigInvalid
	}
	return razorpay.CreateOrder(ctx, g.cfg, input)
}
