package queue

import (
	"testing"
	"time"

	"github.com/b2b-bazaar/internal/config"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueOrderTimeoutCancel(OrderTimeoutCancelPayload{OrderID: 1}, time.Minute); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestOrderTimeoutCancelTaskPayload(t *testing.T) {
	task, err := NewOrderTimeoutCancelTask(OrderTimeoutCancelPayload{OrderID: 42, OrderNumber: "ORD-2601-00042"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskOrderTimeoutCancel {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	payload, err := ParseOrderTimeoutCancelPayload(task.Payload())
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.OrderID != 42 || payload.OrderNumber != "ORD-2601-00042" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 10 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
