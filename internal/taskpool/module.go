package taskpool

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-dhthold/config"
)

// Params 任务池模块依赖参数
type Params struct {
	fx.In

	Config *config.Config `optional:"true"`
}

// Module 返回任务池 Fx 模块
//
// 生命周期:
//   - OnStop: 停止接收新任务并等待在途工作流结束
func Module() fx.Option {
	return fx.Module("taskpool",
		fx.Provide(ProvidePool),
		fx.Invoke(registerLifecycle),
	)
}

// ProvidePool 按分发器配置创建任务池
func ProvidePool(p Params) *Pool {
	cfg := Config{}
	if p.Config != nil {
		cfg.MaxInFlight = p.Config.Dispatch.MaxInFlight
	}
	return New(cfg)
}

func registerLifecycle(lc fx.Lifecycle, p *Pool) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("等待在途任务结束", "in_flight", p.InFlight())
			return p.Close(ctx)
		},
	})
}
