// Package app 提供 dhthold 应用编排层
//
// app 包负责：
// - fx 模块组装
// - 依赖注入协调
// - 生命周期管理
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-dhthold/config"
	"github.com/dep2p/go-dhthold/internal/conductor"
	"github.com/dep2p/go-dhthold/internal/dispatch"
	"github.com/dep2p/go-dhthold/internal/introspect"
	"github.com/dep2p/go-dhthold/pkg/lib/log"
)

var logger = log.Logger("app")

// Bootstrap 应用引导程序
//
// Bootstrap 负责：
// - 应用日志配置
// - 组装 fx 模块
// - 管理应用生命周期
type Bootstrap struct {
	config    *config.Config
	logOutput io.Writer
	fxOptions []fx.Option
	fxApp     *fx.App

	conductor  *conductor.Conductor
	introspect *introspect.Server
}

// NewBootstrap 创建引导程序
func NewBootstrap(cfg *config.Config, opts ...BootstrapOption) *Bootstrap {
	b := &Bootstrap{
		config:    cfg,
		logOutput: os.Stderr,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build 组装依赖（不启动）
func (b *Bootstrap) Build() error {
	if err := config.ValidateAll(b.config); err != nil {
		return fmt.Errorf("配置无效: %w", err)
	}

	// 应用日志配置（必须在所有模块初始化之前）
	b.setupLogging()
	dispatch.RegisterMetrics()

	modules := append(b.setupModules(),
		fx.Populate(&b.conductor),
		fx.WithLogger(b.fxLogger),
	)
	modules = append(modules, b.fxOptions...)

	b.fxApp = fx.New(modules...)
	if err := b.fxApp.Err(); err != nil {
		return fmt.Errorf("组装应用失败: %w", err)
	}
	return nil
}

// Start 构建并启动运行时
func (b *Bootstrap) Start(ctx context.Context) (*Runtime, error) {
	if err := b.Build(); err != nil {
		return nil, err
	}

	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := b.fxApp.Start(startCtx); err != nil {
		return nil, fmt.Errorf("启动应用失败: %w", err)
	}

	logger.Info("dhthold 已启动",
		"instances", len(b.conductor.RunningInstances()),
		"data_dir", b.config.Storage.DataDir)

	return &Runtime{
		Conductor:  b.conductor,
		Introspect: b.introspect,
		stop:       b.Stop,
	}, nil
}

// Stop 停止应用
func (b *Bootstrap) Stop(ctx context.Context) error {
	if b.fxApp == nil {
		return nil
	}

	stopCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return b.fxApp.Stop(stopCtx)
}

// setupModules 组装所有 fx 模块
func (b *Bootstrap) setupModules() []fx.Option {
	modules := []fx.Option{
		fx.Supply(b.config),
		CoreModules(),
	}
	if b.config.Introspect.Enable {
		modules = append(modules,
			IntrospectModule(),
			fx.Populate(&b.introspect),
		)
	}
	return modules
}

// setupLogging 按配置重建默认 logger
func (b *Bootstrap) setupLogging() {
	log.Setup(b.logOutput, b.config.Log.ToLogConfig())
}

// fxLogger 容器事件日志，默认丢弃
func (b *Bootstrap) fxLogger() fxevent.Logger {
	if !b.config.Log.FxEvents {
		return &fxevent.ZapLogger{Logger: zap.NewNop()}
	}
	zl, err := zap.NewDevelopment()
	if err != nil {
		return &fxevent.ZapLogger{Logger: zap.NewNop()}
	}
	return &fxevent.ZapLogger{Logger: zl}
}
