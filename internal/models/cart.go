package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Cart 购物车（每个用户至多一个）
type Cart struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                     // 主键
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`                      // 用户ID
	TotalItems int       `gorm:"not null;default:0" json:"total_items"`                    // 商品总件数（派生）
	TotalPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 商品总价（派生）
	Version    int       `gorm:"not null;default:0" json:"-"`                              // 乐观锁版本
	CreatedAt  time.Time `json:"created_at"`                                               // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                               // 更新时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items"` // 购物车项（按加入顺序）
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// FindItem 按商品查找购物车项下标
func (c *Cart) FindItem(productID uint) int {
	if c == nil {
		return -1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// CartItem 购物车项
type CartItem struct {
	ID        uint            `gorm:"primarykey" json:"id"`                                                // 主键
	CartID    uint            `gorm:"not null;uniqueIndex:idx_cart_item_product" json:"-"`                 // 购物车ID
	ProductID uint            `gorm:"not null;uniqueIndex:idx_cart_item_product" json:"product_id"`        // 商品ID
	Quantity  int             `gorm:"not null" json:"quantity"`                                            // 数量
	Price     Money           `gorm:"type:decimal(20,2);not null;default:0" json:"price"`                  // 加入时单价
	Snapshot  ProductSnapshot `gorm:"column:product_snapshot;type:json" json:"product_snapshot"`           // 加入时商品快照
	CreatedAt time.Time       `json:"created_at"`                                                          // 创建时间
	UpdatedAt time.Time       `json:"updated_at"`                                                          // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// ProductSnapshot 商品展示快照，加入购物车时冻结
type ProductSnapshot struct {
	Name  string      `json:"name"`
	Image string      `json:"image"`
	MOQ   MOQSnapshot `json:"moq"`
}

// MOQSnapshot 起订量快照
type MOQSnapshot struct {
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

// NewProductSnapshot 根据当前商品记录生成快照
func NewProductSnapshot(product *Product) ProductSnapshot {
	if product == nil {
		return ProductSnapshot{}
	}
	return ProductSnapshot{
		Name:  product.Name,
		Image: product.Images.First(),
		MOQ: MOQSnapshot{
			Quantity: product.MOQQuantity,
			Unit:     product.MOQUnit,
		},
	}
}

// Value 实现 driver.Valuer 接口
func (s ProductSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *ProductSnapshot) Scan(value interface{}) error {
	raw, err := scanJSONBytes(value)
	if err != nil || raw == nil {
		*s = ProductSnapshot{}
		return err
	}
	return json.Unmarshal(raw, s)
}
