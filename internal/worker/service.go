package worker

import (
	"context"
	"errors"
	"time"

	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/logger"
	"github.com/b2b-bazaar/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	defaultSweepInterval  = time.Minute
	defaultSweepBatchSize = 100
)

// pendingSweeper 清扫超时待支付订单的最小依赖
type pendingSweeper interface {
	CancelExpiredPending(ctx context.Context, before time.Time, limit int) (int, error)
	PendingTTL() time.Duration
}

// Service 异步队列服务，附带待支付订单定时清扫
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
	sweep    sweepLoop
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, workerCfg config.WorkerConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	svc := &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}
	if consumer.Container != nil && consumer.OrderService != nil {
		svc.sweep = newSweepLoop(consumer.OrderService, workerCfg)
	}
	return svc, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.sweep.target != nil {
		go s.sweep.run(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// SweeperService 未启用队列时单独运行的清扫服务
type SweeperService struct {
	sweep sweepLoop
}

// NewSweeperService 创建清扫服务
func NewSweeperService(target pendingSweeper, workerCfg config.WorkerConfig) (*SweeperService, error) {
	if target == nil {
		return nil, errors.New("order service is nil")
	}
	return &SweeperService{sweep: newSweepLoop(target, workerCfg)}, nil
}

// Name 服务名称
func (s *SweeperService) Name() string {
	return "pending-sweeper"
}

// Start 阻塞运行直到 ctx 取消
func (s *SweeperService) Start(ctx context.Context) error {
	s.sweep.run(ctx)
	return nil
}

// Stop 由 ctx 取消驱动退出
func (s *SweeperService) Stop(ctx context.Context) error {
	return nil
}

type sweepLoop struct {
	target    pendingSweeper
	interval  time.Duration
	batchSize int
}

func newSweepLoop(target pendingSweeper, cfg config.WorkerConfig) sweepLoop {
	interval := time.Duration(cfg.PendingSweepIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	batch := cfg.PendingSweepBatchSize
	if batch <= 0 {
		batch = defaultSweepBatchSize
	}
	return sweepLoop{target: target, interval: interval, batchSize: batch}
}

// runOnce 取消创建时间早于 now-TTL 的待支付订单
func (l sweepLoop) runOnce(ctx context.Context, now time.Time) int {
	if l.target == nil {
		return 0
	}
	before := now.Add(-l.target.PendingTTL())
	cancelled, err := l.target.CancelExpiredPending(ctx, before, l.batchSize)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Warnw("worker_pending_sweep_failed", "error", err)
	}
	if cancelled > 0 {
		logger.Infow("worker_pending_sweep_cancelled", "count", cancelled, "before", before)
	}
	return cancelled
}

func (l sweepLoop) run(ctx context.Context) {
	l.runOnce(ctx, time.Now())

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.runOnce(ctx, time.Now())
		}
	}
}
