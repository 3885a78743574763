package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/b2b-bazaar/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Queue     QueueConfig     `mapstructure:"queue"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Razorpay  RazorpayConfig  `mapstructure:"razorpay"`
	Order     OrderConfig     `mapstructure:"order"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	Captcha   CaptchaConfig   `mapstructure:"captcha"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   string `mapstructure:"port"`
	Mode                   string `mapstructure:"mode"` // debug / release
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds"`
}

// Addr 监听地址
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// ShutdownTimeout 优雅退出等待时长
func (c ServerConfig) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
	Stdout     bool   `mapstructure:"stdout"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		Level:      c.Level,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
		Stdout:     c.Stdout,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // sqlite / postgres
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// JWTConfig 身份令牌配置（令牌由外部身份服务签发，本服务只校验）
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// RateLimitRuleConfig 单条限流规则
type RateLimitRuleConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
	BlockSeconds  int `mapstructure:"block_seconds"`
}

// RateLimitConfig 接口限流配置
type RateLimitConfig struct {
	Checkout      RateLimitRuleConfig `mapstructure:"checkout"`
	PaymentVerify RateLimitRuleConfig `mapstructure:"payment_verify"`
	OrderTrack    RateLimitRuleConfig `mapstructure:"order_track"`
	PublicForm    RateLimitRuleConfig `mapstructure:"public_form"`
}

// RazorpayConfig Razorpay 网关配置
type RazorpayConfig struct {
	KeyID      string `mapstructure:"key_id"`
	KeySecret  string `mapstructure:"key_secret"`
	APIBaseURL string `mapstructure:"api_base_url"`
	Currency   string `mapstructure:"currency"`
	TimeoutMS  int    `mapstructure:"timeout_ms"`
}

// Timeout 网关请求超时
func (c RazorpayConfig) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 12 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// OrderConfig 订单业务规则
type OrderConfig struct {
	TaxRate               string `mapstructure:"tax_rate"`                // 税率，例如 0.18
	FreeShippingThreshold string `mapstructure:"free_shipping_threshold"` // 免运费门槛
	FlatShippingFee       string `mapstructure:"flat_shipping_fee"`       // 固定运费
	MOQMode               string `mapstructure:"moq_mode"`                // max / min
	PendingTTLMinutes     int    `mapstructure:"pending_ttl_minutes"`     // 待支付订单保留时长
}

// PendingTTL 待支付订单保留时长
func (c OrderConfig) PendingTTL() time.Duration {
	if c.PendingTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.PendingTTLMinutes) * time.Minute
}

// WorkerConfig 后台任务配置
type WorkerConfig struct {
	PendingSweepIntervalSeconds int `mapstructure:"pending_sweep_interval_seconds"`
	PendingSweepBatchSize       int `mapstructure:"pending_sweep_batch_size"`
}

// CaptchaConfig 图片验证码配置
type CaptchaConfig struct {
	Enabled       bool               `mapstructure:"enabled"`
	Scenes        CaptchaSceneConfig `mapstructure:"scenes"`
	Length        int                `mapstructure:"length"`
	Width         int                `mapstructure:"width"`
	Height        int                `mapstructure:"height"`
	NoiseCount    int                `mapstructure:"noise_count"`
	ShowLine      int                `mapstructure:"show_line"`
	ExpireSeconds int                `mapstructure:"expire_seconds"`
	MaxStore      int                `mapstructure:"max_store"`
}

// CaptchaSceneConfig 验证码场景开关
type CaptchaSceneConfig struct {
	GuestEnquiry  bool `mapstructure:"guest_enquiry"`
	SupplierApply bool `mapstructure:"supplier_apply"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	loadDotEnv(".env")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")   // 从 cmd/server 运行
	v.AddConfigPath("./etc") // etc 文件夹

	setDefaults(v)

	// 环境变量覆盖，例如 server.port -> SERVER_PORT
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return &cfg
}

// loadDotEnv 将 .env 中的变量注入进程环境，已存在的环境变量优先
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		logger.Warnw("config_dotenv_load_failed", "file", path, "error", err)
		return
	}
	logger.Infow("config_dotenv_loaded", "file", path)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 30)
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "bazaar.log")
	v.SetDefault("log.level", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.stdout", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/bazaar.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)

	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.expire_hours", 24)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "bz")

	v.SetDefault("queue.enabled", true)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 10)
	v.SetDefault("queue.queues", map[string]int{
		"default":  10,
		"critical": 5,
	})

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Accept-Language",
		"Authorization",
		"X-Requested-With",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)

	v.SetDefault("rate_limit.checkout.window_seconds", 60)
	v.SetDefault("rate_limit.checkout.max_requests", 10)
	v.SetDefault("rate_limit.checkout.block_seconds", 120)
	v.SetDefault("rate_limit.payment_verify.window_seconds", 60)
	v.SetDefault("rate_limit.payment_verify.max_requests", 20)
	v.SetDefault("rate_limit.payment_verify.block_seconds", 120)
	v.SetDefault("rate_limit.order_track.window_seconds", 60)
	v.SetDefault("rate_limit.order_track.max_requests", 30)
	v.SetDefault("rate_limit.order_track.block_seconds", 60)
	v.SetDefault("rate_limit.public_form.window_seconds", 300)
	v.SetDefault("rate_limit.public_form.max_requests", 5)
	v.SetDefault("rate_limit.public_form.block_seconds", 600)

	v.SetDefault("razorpay.key_id", "")
	v.SetDefault("razorpay.key_secret", "")
	v.SetDefault("razorpay.api_base_url", "https://api.razorpay.com")
	v.SetDefault("razorpay.currency", "INR")
	v.SetDefault("razorpay.timeout_ms", 10000)

	v.SetDefault("order.tax_rate", "0.18")
	v.SetDefault("order.free_shipping_threshold", "5000")
	v.SetDefault("order.flat_shipping_fee", "100")
	v.SetDefault("order.moq_mode", "max")
	v.SetDefault("order.pending_ttl_minutes", 30)

	v.SetDefault("worker.pending_sweep_interval_seconds", 300)
	v.SetDefault("worker.pending_sweep_batch_size", 100)

	v.SetDefault("captcha.enabled", false)
	v.SetDefault("captcha.scenes.guest_enquiry", true)
	v.SetDefault("captcha.scenes.supplier_apply", true)
	v.SetDefault("captcha.length", 5)
	v.SetDefault("captcha.width", 240)
	v.SetDefault("captcha.height", 80)
	v.SetDefault("captcha.noise_count", 2)
	v.SetDefault("captcha.show_line", 2)
	v.SetDefault("captcha.expire_seconds", 300)
	v.SetDefault("captcha.max_store", 10240)
}
