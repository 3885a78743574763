package models

import (
	"strings"

	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/logger"
)

// InitDefaultAdmin 确保默认管理员账号镜像存在
// 账号凭据由外部身份服务管理，这里只保证角色为 admin 的用户记录存在
func InitDefaultAdmin(email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}

	var user User
	result := DB.Where("email = ?", email).Limit(1).Find(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		if user.Role == constants.UserRoleAdmin {
			return &user, nil
		}
		if err := DB.Model(&User{}).Where("id = ?", user.ID).Update("role", constants.UserRoleAdmin).Error; err != nil {
			return nil, err
		}
		user.Role = constants.UserRoleAdmin
		logger.Warnw("default_admin_role_promoted", "email", email, "user_id", user.ID)
		return &user, nil
	}

	user = User{
		Email:  email,
		Name:   "Administrator",
		Role:   constants.UserRoleAdmin,
		Status: constants.UserStatusActive,
	}
	if err := DB.Create(&user).Error; err != nil {
		return nil, err
	}
	logger.Infow("default_admin_created", "email", email, "user_id", user.ID)
	return &user, nil
}
