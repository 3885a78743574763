package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// moneyScale 金额统一保留的小数位
const moneyScale = 2

// Money 金额类型，持久化与序列化统一保留 2 位小数
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(moneyScale)}
}

// NewMoneyFromInt 从整数创建金额
func NewMoneyFromInt(amount int64) Money {
	return Money{Decimal: decimal.NewFromInt(amount)}
}

// MustMoney 从字符串创建金额，仅用于常量与测试数据
func MustMoney(text string) Money {
	d, err := decimal.NewFromString(text)
	if err != nil {
		panic(fmt.Sprintf("invalid money literal %q: %v", text, err))
	}
	return NewMoneyFromDecimal(d)
}

// Add 金额相加
func (m Money) Add(other Money) Money {
	return NewMoneyFromDecimal(m.Decimal.Add(other.Decimal))
}

// MulInt 金额乘以数量
func (m Money) MulInt(n int) Money {
	return NewMoneyFromDecimal(m.Decimal.Mul(decimal.NewFromInt(int64(n))))
}

// MinorUnits 转换为最小货币单位（例如 INR 的 paise）
func (m Money) MinorUnits() int64 {
	return m.Decimal.Round(moneyScale).Shift(moneyScale).IntPart()
}

// MarshalJSON 统一输出 2 位小数的字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(moneyScale).StringFixed(moneyScale))
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	var d decimal.Decimal
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		d = parsed
	} else {
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		d = decimal.NewFromFloat(f)
	}
	m.Decimal = d.Round(moneyScale)
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(moneyScale).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(moneyScale)
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(moneyScale).StringFixed(moneyScale)
}
