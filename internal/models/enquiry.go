package models

import (
	"time"
)

// Enquiry 买家询盘
type Enquiry struct {
	ID        uint            `gorm:"primarykey" json:"id"`                                  // 主键
	UserID    *uint           `gorm:"index" json:"user_id,omitempty"`                        // 登录用户ID（游客为空）
	ProductID *uint           `gorm:"index" json:"product_id,omitempty"`                     // 关联商品
	Name      string          `gorm:"type:varchar(120);not null" json:"name"`                // 联系人
	Email     string          `gorm:"type:varchar(255);index;not null" json:"email"`         // 邮箱
	Company   string          `gorm:"type:varchar(255)" json:"company,omitempty"`            // 公司
	Phone     string          `gorm:"type:varchar(32)" json:"phone,omitempty"`               // 电话
	Subject   string          `gorm:"type:varchar(255);not null" json:"subject"`             // 主题
	Message   string          `gorm:"type:text;not null" json:"message"`                     // 内容
	Quantity  int             `gorm:"not null;default:0" json:"quantity,omitempty"`          // 需求数量
	Status    string          `gorm:"type:varchar(20);index;not null" json:"status"`         // 状态
	Response  EnquiryResponse `gorm:"embedded;embeddedPrefix:response_" json:"response"`     // 管理员回复
	ClosedAt  *time.Time      `json:"closed_at,omitempty"`                                   // 关闭时间
	CreatedAt time.Time       `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt time.Time       `json:"updated_at"`                                            // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (Enquiry) TableName() string {
	return "enquiries"
}

// EnquiryResponse 询盘回复子记录
type EnquiryResponse struct {
	Message     string     `gorm:"type:text" json:"message,omitempty"`
	RespondedBy *uint      `json:"responded_by,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}
