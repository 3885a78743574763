package queue

import (
	"encoding/json"

	"github.com/b2b-bazaar/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderTimeoutCancel 待支付订单超时取消任务
	TaskOrderTimeoutCancel = constants.TaskOrderTimeoutCancel
)

// OrderTimeoutCancelPayload 超时取消任务载荷
type OrderTimeoutCancelPayload struct {
	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

// NewOrderTimeoutCancelTask 创建超时取消任务
func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderTimeoutCancel, body), nil
}

// ParseOrderTimeoutCancelPayload 解析超时取消任务载荷
func ParseOrderTimeoutCancelPayload(body []byte) (OrderTimeoutCancelPayload, error) {
	var payload OrderTimeoutCancelPayload
	err := json.Unmarshal(body, &payload)
	return payload, err
}
