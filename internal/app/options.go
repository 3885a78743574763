package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/b2b-bazaar/internal/config"
	"github.com/b2b-bazaar/internal/logger"

	"go.uber.org/zap"
)

// 启动模式：api 只对外提供接口，worker 只处理订单超时取消
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// ParseMode 规范化启动模式，空值视为 all
func ParseMode(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "":
		return ModeAll, nil
	case ModeAll, ModeAPI, ModeWorker:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown run mode %q, want all, api or worker", raw)
	}
}

func servesHTTP(mode string) bool {
	return mode == ModeAll || mode == ModeAPI
}

func runsWorker(mode string) bool {
	return mode == ModeAll || mode == ModeWorker
}

// normalizeOptions 补齐默认参数，停机超时优先取 server.shutdown_timeout_seconds
func normalizeOptions(opts Options) (Options, error) {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 && opts.Config != nil {
		opts.ShutdownTimeout = opts.Config.Server.ShutdownTimeout()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	mode, err := ParseMode(opts.Mode)
	if err != nil {
		return opts, err
	}
	opts.Mode = mode
	return opts, nil
}
