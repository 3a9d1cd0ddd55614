package config

import (
	"fmt"
	"strings"

	"github.com/dep2p/go-dhthold/pkg/lib/log"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 级别描述，格式同 DHTHOLD_LOG_LEVEL，例如 "dispatch=debug,info"
	Level string `json:"level" toml:"level"`

	// Format 输出格式：text 或 json
	Format string `json:"format" toml:"format"`

	// FxEvents 输出依赖注入容器的事件日志
	FxEvents bool `json:"fx_events" toml:"fx_events"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "info",
		Format: "text",
	}
}

// Validate 验证日志配置
func (c *LogConfig) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("log: unknown format %q", c.Format)
	}
}

// ToLogConfig 转换为日志库配置
func (c *LogConfig) ToLogConfig() log.Config {
	cfg := log.DefaultConfig()
	log.ParseLevelSpec(&cfg, c.Level)
	cfg.Format = log.ParseFormat(c.Format)
	return cfg
}
