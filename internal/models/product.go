package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表（B2B 批发，价格为区间，带起订量）
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                     // 主键
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`                        // 分类ID
	SupplierID  *uint          `gorm:"index" json:"supplier_id,omitempty"`                       // 供应商ID
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`                   // 名称
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                         // 唯一标识
	Description string         `gorm:"type:text" json:"description"`                             // 描述
	Images      StringArray    `gorm:"type:json" json:"images"`                                  // 图片数组
	PriceMin    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_min"`   // 最低单价
	PriceMax    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_max"`   // 最高单价
	Currency    string         `gorm:"type:varchar(10);not null;default:'INR'" json:"currency"`  // 币种
	MOQQuantity int            `gorm:"not null;default:0" json:"moq_quantity"`                   // 起订量（0 表示不限制）
	MOQUnit     string         `gorm:"type:varchar(32);default:'pieces'" json:"moq_unit"`        // 起订量单位
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                      // 是否上架
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// UnitPrice 加入购物车时采用的单价（区间下限）
func (p *Product) UnitPrice() Money {
	if p == nil {
		return Money{}
	}
	return p.PriceMin
}

// CategoryName 返回分类名称，未预加载时返回空串
func (p *Product) CategoryName() string {
	if p == nil || p.Category == nil {
		return ""
	}
	return p.Category.Name
}
