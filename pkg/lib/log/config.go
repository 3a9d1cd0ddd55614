package log

import (
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Format 日志输出格式
type Format int

const (
	// FormatText 文本格式（默认）
	FormatText Format = iota
	// FormatJSON JSON 格式
	FormatJSON
)

// 环境变量
const (
	// EnvLevel 日志级别，格式: 组件=级别,组件=级别,默认级别
	// 示例: dispatch=debug,transport=warn,info
	EnvLevel = "DHTHOLD_LOG_LEVEL"
	// EnvFormat 日志格式，text 或 json
	EnvFormat = "DHTHOLD_LOG_FORMAT"
)

// Config 日志配置
type Config struct {
	// DefaultLevel 默认日志级别
	DefaultLevel slog.Level

	// ComponentLevels 各组件的日志级别
	ComponentLevels map[string]slog.Level

	// Format 输出格式
	Format Format
}

// DefaultConfig 默认配置：Info 级别、文本格式
func DefaultConfig() Config {
	return Config{
		DefaultLevel:    slog.LevelInfo,
		ComponentLevels: map[string]slog.Level{},
		Format:          FormatText,
	}
}

// LevelFor 获取组件的日志级别
func (c *Config) LevelFor(component string) slog.Level {
	if level, ok := c.ComponentLevels[component]; ok {
		return level
	}
	return c.DefaultLevel
}

var current atomic.Pointer[Config]

func init() {
	cfg := DefaultConfig()
	current.Store(&cfg)
}

// currentConfig 返回当前生效的配置
func currentConfig() *Config {
	return current.Load()
}

// ConfigFromEnv 从环境变量解析配置
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if levelStr := os.Getenv(EnvLevel); levelStr != "" {
		ParseLevelSpec(&cfg, levelStr)
	}
	if formatStr := os.Getenv(EnvFormat); formatStr != "" {
		cfg.Format = ParseFormat(formatStr)
	}
	return cfg
}

// ParseFormat 解析格式名称，未知名称按文本处理
func ParseFormat(name string) Format {
	if strings.EqualFold(strings.TrimSpace(name), "json") {
		return FormatJSON
	}
	return FormatText
}

// ParseLevelSpec 解析级别配置字符串
//
// 格式: 组件=级别,组件=级别,默认级别。无法识别的片段被忽略。
func ParseLevelSpec(cfg *Config, spec string) {
	if cfg.ComponentLevels == nil {
		cfg.ComponentLevels = map[string]slog.Level{}
	}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if component, levelName, ok := strings.Cut(part, "="); ok {
			if level, ok := ParseLevel(levelName); ok {
				cfg.ComponentLevels[strings.TrimSpace(component)] = level
			}
			continue
		}
		if level, ok := ParseLevel(part); ok {
			cfg.DefaultLevel = level
		}
	}
}

// ParseLevel 解析日志级别名称
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
