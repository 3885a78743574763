package models

import "time"

// OrderStatusHistory 订单状态时间线（只追加）
type OrderStatusHistory struct {
	ID        uint      `gorm:"primarykey" json:"-"`                           // 主键
	OrderID   uint      `gorm:"index;not null" json:"-"`                       // 订单ID
	Status    string    `gorm:"type:varchar(20);not null" json:"status"`       // 新状态
	Note      string    `gorm:"type:varchar(500)" json:"note,omitempty"`       // 备注
	ChangedBy string    `gorm:"type:varchar(64)" json:"changed_by,omitempty"`  // 操作人 user:1 / admin:2 / system
	CreatedAt time.Time `gorm:"index" json:"timestamp"`                        // 变更时间
}

// TableName 指定表名
func (OrderStatusHistory) TableName() string {
	return "order_status_histories"
}
