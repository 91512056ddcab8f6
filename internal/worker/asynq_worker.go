package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/libas-next/internal/logger"
	"github.com/libas-next/internal/provider"
	"github.com/libas-next/internal/queue"
	"github.com/libas-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderTimeoutCancel, c.handleOrderTimeoutCancel)
}

func (c *Consumer) handleOrderTimeoutCancel(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_timeout_cancel_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_timeout_cancel_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_timeout_cancel_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_timeout_cancel_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if _, err := c.OrderService.CancelExpiredOrder(payload.OrderID); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			logger.Debugw("worker_order_timeout_cancel_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_order_timeout_cancel_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}
