package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/b2b-bazaar/internal/cache"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/models"
)

// TrackByOrderNumber 按订单编号公开查询状态时间线
func (s *OrderService) TrackByOrderNumber(ctx context.Context, orderNumber string) (*OrderTrackingView, error) {
	orderNumber = strings.ToUpper(strings.TrimSpace(orderNumber))
	if orderNumber == "" {
		return nil, ErrOrderNotFound
	}
	var cached OrderTrackingView
	hit, err := cache.GetOrderTracking(ctx, orderNumber, &cached)
	if err != nil {
		logger.Warnw("order_tracking_cache_read_failed", "order_number", orderNumber, "error", err)
	}
	if hit {
		return &cached, nil
	}

	order, err := s.orderRepo.GetByOrderNumber(orderNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	view := &OrderTrackingView{
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		StatusHistory: trackingEvents(order.StatusHistory),
		Tracking:      order.Tracking,
		CreatedAt:     order.CreatedAt,
	}
	if err := cache.SetOrderTracking(ctx, orderNumber, view); err != nil {
		logger.Warnw("order_tracking_cache_write_failed", "order_number", orderNumber, "error", err)
	}
	return view, nil
}

func trackingEvents(history []models.OrderStatusHistory) []OrderTrackingEvent {
	events := make([]OrderTrackingEvent, 0, len(history))
	for _, entry := range history {
		events = append(events, OrderTrackingEvent{
			Status:    entry.Status,
			Note:      entry.Note,
			Timestamp: entry.CreatedAt,
		})
	}
	return events
}
