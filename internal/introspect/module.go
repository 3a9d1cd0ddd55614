package introspect

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-dhthold/config"
	"github.com/dep2p/go-dhthold/internal/conductor"
)

// ModuleInput 模块输入
type ModuleInput struct {
	fx.In

	Conductor *conductor.Conductor
	Config    *config.Config `optional:"true"`
}

// ProvideServer 提供自省服务
func ProvideServer(in ModuleInput) *Server {
	cfg := Config{Debugger: in.Conductor}
	if in.Config != nil {
		cfg.Addr = in.Config.Introspect.Addr
	}
	return New(cfg)
}

// Module 返回 introspect fx 模块
//
// 只在配置启用时加入应用。
func Module() fx.Option {
	return fx.Module("introspect",
		fx.Provide(ProvideServer),
		fx.Invoke(func(lc fx.Lifecycle, s *Server) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return s.Start(ctx)
				},
				OnStop: func(ctx context.Context) error {
					return s.Stop(ctx)
				},
			})
		}),
	)
}
