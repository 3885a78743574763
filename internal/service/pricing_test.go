package service

import (
	"testing"
	"time"

	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOrderPricingShippingThreshold(t *testing.T) {
	rules := DefaultPricingRules()

	below := ComputeOrderPricing(models.MustMoney("4000"), rules)
	assert.Equal(t, "100.00", below.ShippingCost.String())
	assert.Equal(t, "720.00", below.Tax.String())
	assert.Equal(t, "4820.00", below.Total.String())

	above := ComputeOrderPricing(models.MustMoney("6000"), rules)
	assert.Equal(t, "0.00", above.ShippingCost.String())
	assert.Equal(t, "7080.00", above.Total.String())

	atThreshold := ComputeOrderPricing(models.MustMoney("5000"), rules)
	assert.Equal(t, "100.00", atThreshold.ShippingCost.String())
	assert.Equal(t, "6000.00", atThreshold.Total.String())

	justAbove := ComputeOrderPricing(models.MustMoney("5000.01"), rules)
	assert.Equal(t, "0.00", justAbove.ShippingCost.String())
}

func TestComputeOrderPricingTaxRounding(t *testing.T) {
	rules := DefaultPricingRules()

	assert.Equal(t, "180.00", ComputeOrderPricing(models.MustMoney("1000"), rules).Tax.String())
	// 18% of 99.99 = 17.9982 -> 18
	assert.Equal(t, "18.00", ComputeOrderPricing(models.MustMoney("99.99"), rules).Tax.String())
}

func TestComputeOrderPricingTotalsAndPurity(t *testing.T) {
	rules := DefaultPricingRules()
	for _, raw := range []string{"0", "1", "250.50", "4999.99", "5000", "123456.78"} {
		subtotal := models.MustMoney(raw)
		first := ComputeOrderPricing(subtotal, rules)
		second := ComputeOrderPricing(subtotal, rules)
		assert.Equal(t, first.Tax.String(), second.Tax.String(), "tax must be deterministic for %s", raw)
		assert.Equal(t, first.ShippingCost.String(), second.ShippingCost.String())
		assert.Equal(t, first.Total.String(), second.Total.String())

		sum := first.Subtotal.Add(first.Tax).Add(first.ShippingCost)
		assert.True(t, sum.Equal(first.Total.Decimal), "total mismatch for %s", raw)
	}
}

func TestParsePricingRules(t *testing.T) {
	rules, err := ParsePricingRules(config.OrderConfig{
		TaxRate:               "0.05",
		FreeShippingThreshold: "1000",
		FlatShippingFee:       "",
	})
	require.NoError(t, err)
	assert.Equal(t, "0.05", rules.TaxRate.String())
	assert.Equal(t, "1000", rules.FreeShippingThreshold.String())
	assert.Equal(t, "100", rules.FlatShippingFee.String())

	_, err = ParsePricingRules(config.OrderConfig{TaxRate: "abc"})
	assert.Error(t, err)
	_, err = ParsePricingRules(config.OrderConfig{FlatShippingFee: "-1"})
	assert.Error(t, err)
}

func TestFormatOrderNumber(t *testing.T) {
	now := time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD-2601-00042", FormatOrderNumber(now, 42))
	assert.Equal(t, "ORD-2601-123456", FormatOrderNumber(now, 123456))
}
