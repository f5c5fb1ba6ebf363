package config

import (
	"github.com/blues/cls/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Chain     ChainConfig     `mapstructure:"chain"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Event     EventConfig     `mapstructure:"event"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// ChainConfig 链配置，资金转移与奖励铸造走该链
type ChainConfig struct {
	RpcUrl       string `mapstructure:"rpc_url"`       // RPC节点URL
	PrivateKey   string `mapstructure:"private_key"`   // 私钥
	ChainId      int64  `mapstructure:"chain_id"`      // 链ID
	BadgeAddress string `mapstructure:"badge_address"` // 奖励代币合约地址
}

type SchedulerConfig struct {
	AuditInterval  int `mapstructure:"audit_interval"`  // 账本审计间隔（秒）
	ExpiryInterval int `mapstructure:"expiry_interval"` // 过期巡检间隔（秒）
}

type EventConfig struct {
	PoolSize int `mapstructure:"pool_size"` // 事件分发协程池大小
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cls")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "campaign_ledger")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("scheduler.audit_interval", 300)
	viper.SetDefault("scheduler.expiry_interval", 600)
	viper.SetDefault("event.pool_size", 8)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
