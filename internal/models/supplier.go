package models

import (
	"time"
)

// Supplier 供应商入驻申请
type Supplier struct {
	ID           uint             `gorm:"primarykey" json:"id"`                                  // 主键
	CompanyName  string           `gorm:"type:varchar(255);not null" json:"company_name"`        // 公司名称
	ContactName  string           `gorm:"type:varchar(120);not null" json:"contact_name"`        // 联系人
	Email        string           `gorm:"type:varchar(255);index;not null" json:"email"`         // 邮箱
	Phone        string           `gorm:"type:varchar(32);not null" json:"phone"`                // 电话
	BusinessType string           `gorm:"type:varchar(64)" json:"business_type,omitempty"`       // 经营类型
	GSTNumber    string           `gorm:"type:varchar(32)" json:"gst_number,omitempty"`          // GST 税号
	Address      string           `gorm:"type:varchar(500)" json:"address,omitempty"`            // 地址
	Description  string           `gorm:"type:text" json:"description,omitempty"`                // 简介
	Status       string           `gorm:"type:varchar(20);index;not null" json:"status"`         // 审核状态
	Decision     SupplierDecision `gorm:"embedded;embeddedPrefix:decision_" json:"decision"`     // 审核结论
	UserID       *uint            `gorm:"index" json:"user_id,omitempty"`                        // 审核通过后关联的平台账号
	CreatedAt    time.Time        `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt    time.Time        `json:"updated_at"`                                            // 更新时间
}

// TableName 指定表名
func (Supplier) TableName() string {
	return "suppliers"
}

// SupplierDecision 审核结论子记录
type SupplierDecision struct {
	Comment   string     `gorm:"type:varchar(1000)" json:"comment,omitempty"`
	DecidedBy *uint      `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}
