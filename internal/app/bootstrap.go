package app

import (
	"errors"
	"fmt"

	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/provider"
	"github.com/b2b-bazaar/internal/router"
	"github.com/b2b-bazaar/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	container := provider.NewContainer(cfg)

	var services []Service

	// 初始化 HTTP 服务
	if servesHTTP(mode) {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server, engine))
	}

	// 初始化 Worker 服务
	if runsWorker(mode) {
		if cfg.Queue.Enabled {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(&cfg.Queue, cfg.Worker, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else {
			// 未启用队列时仅依赖定时清扫处理超时订单
			sweeper, err := worker.NewSweeperService(container.OrderService, cfg.Worker)
			if err != nil {
				return nil, err
			}
			services = append(services, sweeper)
		}
	}

	if len(services) == 0 {
		return nil, fmt.Errorf("no services initialized for mode %q", mode)
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	opts, err := normalizeOptions(opts)
	if err != nil {
		return err
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
