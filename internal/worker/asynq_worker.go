package worker

import (
	"context"
	"errors"

	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/provider"
	"github.com/b2b-bazaar/internal/queue"
	"github.com/b2b-bazaar/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderTimeoutCancel, c.handleOrderTimeoutCancel)
}

func (c *Consumer) handleOrderTimeoutCancel(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_timeout_cancel_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderTimeoutCancelPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_order_timeout_cancel_unmarshal_failed", "error", err)
		// 载荷损坏时重试无意义
		return errors.Join(err, asynq.SkipRetry)
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_timeout_cancel_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.Container == nil || c.OrderService == nil {
		logger.Warnw("worker_order_timeout_cancel_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	applied, err := c.OrderService.CancelExpired(ctx, payload.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderFetchFailed):
			logger.Warnw("worker_order_timeout_cancel_fetch_failed", "order_id", payload.OrderID, "error", err)
			return err
		case errors.Is(err, service.ErrOrderUpdateFailed):
			logger.Warnw("worker_order_timeout_cancel_update_failed", "order_id", payload.OrderID, "error", err)
			return err
		default:
			logger.Warnw("worker_order_timeout_cancel_failed", "order_id", payload.OrderID, "error", err)
			return err
		}
	}
	if !applied {
		logger.Debugw("worker_order_timeout_cancel_skip_not_pending",
			"order_id", payload.OrderID,
			"order_number", payload.OrderNumber,
		)
	}
	return nil
}
