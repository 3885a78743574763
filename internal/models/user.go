package models

import (
	"time"
)

// User 用户镜像表（账号由外部身份服务维护）
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`                               // 主键
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`                  // 邮箱
	Name      string    `gorm:"type:varchar(120);default:''" json:"name"`           // 名称
	Role      string    `gorm:"type:varchar(20);not null;default:'buyer'" json:"role"` // 角色 buyer/supplier/admin
	Status    string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // 账号状态
	CreatedAt time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
