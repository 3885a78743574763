package service

import "github.com/b2b-bazaar/internal/models"

// CartTotals 购物车派生合计
type CartTotals struct {
	TotalItems int
	TotalPrice models.Money
}

// ComputeCartTotals 按行计算件数与总价，纯函数
func ComputeCartTotals(items []models.CartItem) CartTotals {
	totals := CartTotals{TotalPrice: models.NewMoneyFromInt(0)}
	for _, item := range items {
		totals.TotalItems += item.Quantity
		totals.TotalPrice = totals.TotalPrice.Add(item.Price.MulInt(item.Quantity))
	}
	return totals
}

func applyCartTotals(cart *models.Cart) {
	if cart == nil {
		return
	}
	totals := ComputeCartTotals(cart.Items)
	cart.TotalItems = totals.TotalItems
	cart.TotalPrice = totals.TotalPrice
}
