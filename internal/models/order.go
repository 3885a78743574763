package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"
)

// Order 订单表
type Order struct {
	ID           uint                `gorm:"primarykey" json:"id"`                                          // 主键
	OrderNumber  string              `gorm:"uniqueIndex;not null" json:"order_number"`                      // 订单编号 ORD-YYMM-NNNNN
	UserID       uint                `gorm:"index;not null" json:"user_id"`                                 // 下单用户ID
	Status       string              `gorm:"index;not null" json:"status"`                                  // 订单状态
	Currency     string              `gorm:"type:varchar(10);not null" json:"currency"`                     // 币种
	Subtotal     Money               `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`         // 商品小计
	Tax          Money               `gorm:"type:decimal(20,2);not null;default:0" json:"tax"`              // 税额
	ShippingCost Money               `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_cost"`    // 运费
	Total        Money               `gorm:"type:decimal(20,2);not null;default:0" json:"total"`            // 应付总额
	Notes        string              `gorm:"type:text" json:"notes,omitempty"`                              // 买家备注
	Address      ShippingAddress     `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`         // 收货地址快照
	Payment      OrderPayment        `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`               // 支付信息
	Tracking     OrderTracking       `gorm:"embedded;embeddedPrefix:tracking_" json:"tracking"`             // 物流信息
	Cancellation *OrderCancellation  `gorm:"column:cancellation;type:json" json:"cancellation,omitempty"`   // 取消信息（仅已取消订单）
	Version      int                 `gorm:"not null;default:0" json:"-"`                                   // 状态写入版本
	ConfirmedAt  *time.Time          `json:"confirmed_at,omitempty"`                                        // 确认时间
	ProcessingAt *time.Time          `json:"processing_at,omitempty"`                                       // 开始处理时间
	ShippedAt    *time.Time          `json:"shipped_at,omitempty"`                                          // 发货时间
	DeliveredAt  *time.Time          `json:"delivered_at,omitempty"`                                        // 签收时间
	CancelledAt  *time.Time          `gorm:"index" json:"cancelled_at,omitempty"`                           // 取消时间
	CreatedAt    time.Time           `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt    time.Time           `json:"updated_at"`                                                    // 更新时间

	Items         []OrderItem          `gorm:"foreignKey:OrderID" json:"items,omitempty"`          // 订单项快照
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID" json:"status_history,omitempty"` // 状态时间线
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// ShippingAddress 收货地址快照
type ShippingAddress struct {
	FullName     string `gorm:"type:varchar(120)" json:"full_name"`
	Phone        string `gorm:"type:varchar(32)" json:"phone"`
	AddressLine1 string `gorm:"type:varchar(255)" json:"address_line1"`
	AddressLine2 string `gorm:"type:varchar(255)" json:"address_line2,omitempty"`
	City         string `gorm:"type:varchar(120)" json:"city"`
	State        string `gorm:"type:varchar(120)" json:"state"`
	PostalCode   string `gorm:"type:varchar(20)" json:"postal_code"`
	Country      string `gorm:"type:varchar(64)" json:"country"`
}

// Normalize 去除首尾空白
func (a ShippingAddress) Normalize() ShippingAddress {
	return ShippingAddress{
		FullName:     strings.TrimSpace(a.FullName),
		Phone:        strings.TrimSpace(a.Phone),
		AddressLine1: strings.TrimSpace(a.AddressLine1),
		AddressLine2: strings.TrimSpace(a.AddressLine2),
		City:         strings.TrimSpace(a.City),
		State:        strings.TrimSpace(a.State),
		PostalCode:   strings.TrimSpace(a.PostalCode),
		Country:      strings.TrimSpace(a.Country),
	}
}

// MissingFields 返回缺失的必填字段名（address_line2 可选）
func (a ShippingAddress) MissingFields() []string {
	n := a.Normalize()
	required := []struct {
		name  string
		value string
	}{
		{"full_name", n.FullName},
		{"phone", n.Phone},
		{"address_line1", n.AddressLine1},
		{"city", n.City},
		{"state", n.State},
		{"postal_code", n.PostalCode},
		{"country", n.Country},
	}
	var missing []string
	for _, field := range required {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// OrderPayment 订单支付子记录
type OrderPayment struct {
	Method            string     `gorm:"type:varchar(32)" json:"method"`
	Status            string     `gorm:"type:varchar(20);index" json:"status"`
	RazorpayOrderID   string     `gorm:"type:varchar(64);index" json:"razorpay_order_id,omitempty"`
	RazorpayReceipt   string     `gorm:"type:varchar(40)" json:"razorpay_receipt,omitempty"`
	RazorpayPaymentID string     `gorm:"type:varchar(64)" json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string     `gorm:"type:varchar(128)" json:"-"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	FailureReason     string     `gorm:"type:varchar(255)" json:"failure_reason,omitempty"`
}

// OrderTracking 物流跟踪信息
type OrderTracking struct {
	Carrier string `gorm:"type:varchar(64)" json:"carrier,omitempty"`
	Number  string `gorm:"type:varchar(128)" json:"tracking_number,omitempty"`
	URL     string `gorm:"type:varchar(500)" json:"tracking_url,omitempty"`
}

// IsEmpty 是否未填写物流信息
func (t OrderTracking) IsEmpty() bool {
	return strings.TrimSpace(t.Carrier) == "" &&
		strings.TrimSpace(t.Number) == "" &&
		strings.TrimSpace(t.URL) == ""
}

// OrderCancellation 取消子记录
type OrderCancellation struct {
	Reason       string `json:"reason"`
	CancelledBy  string `json:"cancelled_by"`
	RefundStatus string `json:"refund_status"`
}

// Value 实现 driver.Valuer 接口
func (c *OrderCancellation) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan 实现 sql.Scanner 接口
func (c *OrderCancellation) Scan(value interface{}) error {
	raw, err := scanJSONBytes(value)
	if err != nil || raw == nil {
		return err
	}
	return json.Unmarshal(raw, c)
}
