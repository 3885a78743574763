package cache

import (
	"context"
	"strings"
	"time"
)

// OrderTrackingTTL 订单公开追踪结果缓存时长
const OrderTrackingTTL = 60 * time.Second

func orderTrackingKey(orderNumber string) string {
	return "order:track:" + strings.ToUpper(strings.TrimSpace(orderNumber))
}

// GetOrderTracking 读取订单追踪缓存
func GetOrderTracking(ctx context.Context, orderNumber string, dest interface{}) (bool, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return false, nil
	}
	return GetJSON(ctx, orderTrackingKey(orderNumber), dest)
}

// SetOrderTracking 写入订单追踪缓存
func SetOrderTracking(ctx context.Context, orderNumber string, value interface{}) error {
	if strings.TrimSpace(orderNumber) == "" {
		return nil
	}
	return SetJSON(ctx, orderTrackingKey(orderNumber), value, OrderTrackingTTL)
}

// DelOrderTracking 订单状态变化后失效追踪缓存
func DelOrderTracking(ctx context.Context, orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return nil
	}
	return Del(ctx, orderTrackingKey(orderNumber))
}
