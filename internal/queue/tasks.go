package queue

import (
	"encoding/json"

	"github.com/libas-next/internal/constants"

	"github.com/hibiken/asynq"
)

// TaskOrderTimeoutCancel cancels orders still pending after the configured
// window, restoring their reserved stock.
const TaskOrderTimeoutCancel = constants.TaskOrderTimeoutCancel

// OrderTimeoutCancelPayload is the expiry task payload.
type OrderTimeoutCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderTimeoutCancelTask builds the expiry task.
func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderTimeoutCancel, body), nil
}
