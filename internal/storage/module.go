// Package storage 组装 dhthold 的持久化存储
//
// 子包：
//   - engine: 存储引擎接口与 BadgerDB 实现
//   - kv: 带前缀的键值存储
//   - cas: 内容寻址存储
//   - eav: 实体-属性-值索引
package storage

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-dhthold/config"
	"github.com/dep2p/go-dhthold/internal/storage/engine"
	"github.com/dep2p/go-dhthold/internal/storage/engine/badger"
	"github.com/dep2p/go-dhthold/pkg/lib/log"
)

var logger = log.Logger("storage")

// Params Storage 模块依赖参数
type Params struct {
	fx.In

	Config *config.Config `optional:"true"`
}

// Result Storage 模块提供的结果
type Result struct {
	fx.Out

	Engine engine.Engine
}

// Module 返回 Storage Fx 模块
//
// 提供:
//   - engine.Engine: 所有实例共享的存储引擎
//
// 生命周期:
//   - OnStart: 启动引擎（GC 等后台任务）
//   - OnStop: 关闭引擎
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideStorage),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideStorage 提供存储引擎
func ProvideStorage(p Params) (Result, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	eng, err := NewEngine(EngineConfig(&cfg.Storage))
	if err != nil {
		return Result{}, err
	}
	return Result{Engine: eng}, nil
}

// EngineConfig 将存储配置转换为引擎配置
func EngineConfig(c *config.StorageConfig) *engine.Config {
	cfg := engine.DefaultConfig(c.DBPath())
	cfg.SyncWrites = c.SyncWrites
	cfg.GCInterval = c.GCInterval.Duration()
	return cfg
}

// NewEngine 根据配置创建存储引擎
func NewEngine(cfg *engine.Config) (engine.Engine, error) {
	logger.Debug("创建存储引擎", "path", cfg.Path)
	eng, err := badger.New(cfg)
	if err != nil {
		logger.Error("创建存储引擎失败", "error", err)
		return nil, err
	}
	return eng, nil
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(lc fx.Lifecycle, eng engine.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("正在启动存储引擎")
			if err := eng.Start(); err != nil {
				logger.Error("存储引擎启动失败", "error", err)
				return err
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("正在关闭存储引擎")
			if err := eng.Close(); err != nil {
				logger.Warn("存储引擎关闭失败", "error", err)
				return err
			}
			logger.Info("存储引擎已关闭")
			return nil
		},
	})
}
