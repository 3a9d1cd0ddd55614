package conductor

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-dhthold/internal/storage/engine"
	"github.com/dep2p/go-dhthold/internal/taskpool"
)

// Params Conductor 模块依赖参数
type Params struct {
	fx.In

	Engine engine.Engine
	Pool   *taskpool.Pool
	Config Config
}

// Module 返回 Conductor Fx 模块
//
// 提供:
//   - *Conductor: 实例管理器
//
// 生命周期:
//   - OnStart: 连接各实例的 Hub
//   - OnStop: 关闭会话
func Module() fx.Option {
	return fx.Module("conductor",
		fx.Provide(ProvideConductor),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideConductor 创建 Conductor
func ProvideConductor(p Params) (*Conductor, error) {
	return New(p.Engine, p.Pool, p.Config)
}

func registerLifecycle(lc fx.Lifecycle, c *Conductor) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return c.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return c.Stop(ctx)
		},
	})
}
