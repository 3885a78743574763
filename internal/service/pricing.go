package service

import (
	"fmt"
	"strings"

	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/models"

	"github.com/shopspring/decimal"
)

// PricingRules 订单定价规则
type PricingRules struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

// OrderPricing 订单金额拆分
type OrderPricing struct {
	Subtotal     models.Money `json:"subtotal"`
	Tax          models.Money `json:"tax"`
	ShippingCost models.Money `json:"shipping_cost"`
	Total        models.Money `json:"total"`
}

// DefaultPricingRules 默认规则：18% 税，超过 5000 免运费，否则 100
func DefaultPricingRules() PricingRules {
	return PricingRules{
		TaxRate:               decimal.NewFromFloat(0.18),
		FreeShippingThreshold: decimal.NewFromInt(5000),
		FlatShippingFee:       decimal.NewFromInt(100),
	}
}

// ParsePricingRules 从配置解析定价规则
func ParsePricingRules(cfg config.OrderConfig) (PricingRules, error) {
	rules := DefaultPricingRules()
	parse := func(name, raw string, target *decimal.Decimal) error {
		text := strings.TrimSpace(raw)
		if text == "" {
			return nil
		}
		value, err := decimal.NewFromString(text)
		if err != nil {
			return fmt.Errorf("order.%s invalid: %w", name, err)
		}
		if value.IsNegative() {
			return fmt.Errorf("order.%s must not be negative", name)
		}
		*target = value
		return nil
	}
	if err := parse("tax_rate", cfg.TaxRate, &rules.TaxRate); err != nil {
		return PricingRules{}, err
	}
	if err := parse("free_shipping_threshold", cfg.FreeShippingThreshold, &rules.FreeShippingThreshold); err != nil {
		return PricingRules{}, err
	}
	if err := parse("flat_shipping_fee", cfg.FlatShippingFee, &rules.FlatShippingFee); err != nil {
		return PricingRules{}, err
	}
	return rules, nil
}

// ComputeOrderPricing 计算税费运费与总额，纯函数
// 税额四舍五入到整数货币单位，小计严格高于门槛才免运费
func ComputeOrderPricing(subtotal models.Money, rules PricingRules) OrderPricing {
	tax := subtotal.Decimal.Mul(rules.TaxRate).Round(0)
	shipping := decimal.Zero
	if subtotal.Decimal.LessThanOrEqual(rules.FreeShippingThreshold) {
		shipping = rules.FlatShippingFee
	}
	total := subtotal.Decimal.Add(tax).Add(shipping)
	return OrderPricing{
		Subtotal:     models.NewMoneyFromDecimal(subtotal.Decimal),
		Tax:          models.NewMoneyFromDecimal(tax),
		ShippingCost: models.NewMoneyFromDecimal(shipping),
		Total:        models.NewMoneyFromDecimal(total),
	}
}
