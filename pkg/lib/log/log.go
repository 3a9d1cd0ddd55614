// Package log 提供 dhthold 统一日志接口
//
// 基于 Go 标准库 log/slog 封装，提供简洁的日志 API，支持按组件配置级别：
//
//	var logger = log.Logger("dispatch")
//	logger.Info("派发存储请求", "entry", addr)
//
// 环境变量配置:
//
//	# 所有组件 info，dispatch 组件 debug
//	DHTHOLD_LOG_LEVEL=dispatch=debug,info
//
//	# 使用 JSON 格式输出
//	DHTHOLD_LOG_FORMAT=json
package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// SetDefault 设置默认 logger
func SetDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// Default 返回默认 logger
func Default() *slog.Logger {
	return slog.Default()
}

// New 创建新的文本格式 logger
func New(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewJSON 创建 JSON 格式的 logger
func NewJSON(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Setup 按配置重建默认 logger
//
// 组件级别在 LazyLogger 中生效，底层 handler 使用所有级别中的最低值。
//
// 示例：
//
//	file, _ := os.OpenFile("dhthold.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
//	log.Setup(file, log.ConfigFromEnv())
func Setup(w io.Writer, cfg Config) {
	if cfg.ComponentLevels == nil {
		cfg.ComponentLevels = map[string]slog.Level{}
	}
	current.Store(&cfg)

	minLevel := cfg.DefaultLevel
	for _, level := range cfg.ComponentLevels {
		if level < minLevel {
			minLevel = level
		}
	}
	opts := &slog.HandlerOptions{
		Level:       minLevel,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// SetOutputWithLevel 同时设置日志输出目标和默认级别
func SetOutputWithLevel(w io.Writer, level slog.Level) {
	cfg := *currentConfig()
	cfg.DefaultLevel = level
	Setup(w, cfg)
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 每次日志调用时都从 slog.Default() 获取最新的 handler，
// 支持在运行时动态切换日志输出目标。
//
// 使用方式：
//
//	var logger = log.Logger("mycomponent")  // 返回 *LazyLogger
//	logger.Info("hello")                     // 动态使用当前的 default logger
type LazyLogger struct {
	component string
}

func (l *LazyLogger) logger() *slog.Logger {
	level := currentConfig().LevelFor(l.component)
	h := &componentHandler{level: level, inner: slog.Default().Handler()}
	return slog.New(h).With("component", l.component)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	l.logger().Debug(msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	l.logger().Info(msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	l.logger().Warn(msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	l.logger().Error(msg, args...)
}

// DebugContext 带 context 的 Debug 日志
func (l *LazyLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger().DebugContext(ctx, msg, args...)
}

// ErrorContext 带 context 的 Error 日志
func (l *LazyLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger().ErrorContext(ctx, msg, args...)
}

// With 添加额外的属性
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return l.logger().With(args...)
}

// Log 输出一条带级别前缀的消息
//
// 消息格式为 "级别/标签: 内容"，例如 "err/net/dht: 存储失败"。
// 前缀 err/、warn/、debug/、info/ 决定级别，无前缀按 Info 处理；
// 标签作为 tag 属性输出。
func (l *LazyLogger) Log(msg string) {
	level, rest := splitLevelPrefix(msg)
	tag, text, ok := strings.Cut(rest, ": ")
	if !ok {
		l.logger().Log(context.Background(), level, rest)
		return
	}
	l.logger().Log(context.Background(), level, text, "tag", tag)
}

func splitLevelPrefix(msg string) (slog.Level, string) {
	prefixes := []struct {
		prefix string
		level  slog.Level
	}{
		{"err/", slog.LevelError},
		{"warn/", slog.LevelWarn},
		{"debug/", slog.LevelDebug},
		{"info/", slog.LevelInfo},
	}
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(msg, p.prefix); ok {
			return p.level, rest
		}
	}
	return slog.LevelInfo, msg
}

// Logger 返回带组件名的 LazyLogger
//
// 返回的 LazyLogger 会在每次日志调用时使用当前的 slog.Default()，
// 组件级别取自最近一次 Setup 的配置。
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

// ============================================================================
//                              工具函数
// ============================================================================

// TruncateID 安全截取 ID 用于日志显示
//
// 如果 ID 长度小于等于 maxLen，返回原 ID；
// 否则返回前 maxLen 个字符。
func TruncateID(id string, maxLen int) string {
	if len(id) <= maxLen {
		return id
	}
	return id[:maxLen]
}
