package service

import (
	"fmt"
	"time"
)

// FormatOrderNumber 生成订单编号 ORD-YYMM-NNNNN，序号来自全局计数器
func FormatOrderNumber(now time.Time, seq int64) string {
	return fmt.Sprintf("ORD-%s-%05d", now.Format("0601"), seq)
}
