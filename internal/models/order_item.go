package models

import (
	"time"
)

// OrderItem 订单项（下单时的不可变快照）
type OrderItem struct {
	ID                 uint      `gorm:"primarykey" json:"id"`                                    // 主键
	OrderID            uint      `gorm:"index;not null" json:"order_id"`                          // 订单ID
	ProductID          uint      `gorm:"index;not null" json:"product_id"`                        // 商品ID
	ProductName        string    `gorm:"type:varchar(255);not null" json:"product_name"`          // 商品名称快照
	ProductImage       string    `gorm:"type:varchar(500)" json:"product_image"`                  // 商品图片快照
	ProductDescription string    `gorm:"type:text" json:"product_description"`                    // 商品描述快照
	CategoryName       string    `gorm:"type:varchar(120)" json:"category_name"`                  // 分类名称快照
	MOQUnit            string    `gorm:"type:varchar(32)" json:"moq_unit,omitempty"`              // 计量单位快照
	Quantity           int       `gorm:"not null" json:"quantity"`                                // 数量
	UnitPrice          Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 单价
	Subtotal           Money     `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`   // 小计
	CreatedAt          time.Time `json:"created_at"`                                              // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
