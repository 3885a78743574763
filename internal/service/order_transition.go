package service

import (
	"github.com/b2b-bazaar/internal/models"
	"github.com/b2b-bazaar/internal/repository"

	"gorm.io/gorm"
)

// orderTransition 一次条件状态迁移
// 状态写入与时间线追加在同一事务内完成
type orderTransition struct {
	OrderID   uint
	From      string
	To        string
	Updates   map[string]interface{}
	Note      string
	ChangedBy string
	After     func(tx *gorm.DB) error
}

// applyOrderTransition 执行迁移，当前状态不等于 From 时返回 false 且不写入任何数据
func applyOrderTransition(orderRepo repository.OrderRepository, t orderTransition) (bool, error) {
	applied := false
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := orderRepo.WithTx(tx)
		updates := map[string]interface{}{"status": t.To}
		for key, value := range t.Updates {
			updates[key] = value
		}
		ok, err := repo.TransitionStatus(t.OrderID, t.From, updates)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := repo.AppendHistory(&models.OrderStatusHistory{
			OrderID:   t.OrderID,
			Status:    t.To,
			Note:      t.Note,
			ChangedBy: t.ChangedBy,
		}); err != nil {
			return err
		}
		if t.After != nil {
			if err := t.After(tx); err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}
