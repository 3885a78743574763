package service

import (
	"strings"

	"github.com/b2b-bazaar/internal/constants"
	"github.com/b2b-bazaar/internal/models"
)

// MOQPolicy 起订量校验策略
type MOQPolicy struct {
	Mode string
}

// NewMOQPolicy 创建起订量策略，未知模式按 max 处理
func NewMOQPolicy(mode string) MOQPolicy {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case constants.MOQModeMin:
		return MOQPolicy{Mode: constants.MOQModeMin}
	default:
		return MOQPolicy{Mode: constants.MOQModeMax}
	}
}

// Check 校验数量，moq <= 0 视为不限制
func (p MOQPolicy) Check(product *models.Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if product == nil || product.MOQQuantity <= 0 {
		return nil
	}
	if p.Mode == constants.MOQModeMin {
		if quantity < product.MOQQuantity {
			return ErrMOQExceeded
		}
		return nil
	}
	if quantity > product.MOQQuantity {
		return ErrMOQExceeded
	}
	return nil
}
