// Package app 提供模块集合清单
//
// modulesets.go 集中维护应用由哪些模块组成，是 Bootstrap 组装的唯一模块来源。
package app

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-dhthold/config"
	"github.com/dep2p/go-dhthold/internal/conductor"
	"github.com/dep2p/go-dhthold/internal/introspect"
	"github.com/dep2p/go-dhthold/internal/storage"
	"github.com/dep2p/go-dhthold/internal/taskpool"
	"github.com/dep2p/go-dhthold/internal/transport"
	"github.com/dep2p/go-dhthold/pkg/types"
)

// CoreModules 始终加载的模块
//
// 存储引擎、任务池与 Conductor。所有实例共享同一个引擎和任务池。
func CoreModules() fx.Option {
	return fx.Options(
		storage.Module(),
		taskpool.Module(),
		fx.Provide(ConductorConfig),
		conductor.Module(),
	)
}

// IntrospectModule 调试 HTTP 服务，由 introspect.enable 控制
func IntrospectModule() fx.Option {
	return introspect.Module()
}

// ConductorConfig 将统一配置转换为 Conductor 配置
func ConductorConfig(cfg *config.Config) conductor.Config {
	tc := transport.Config{
		HandshakeTimeout:  cfg.Transport.HandshakeTimeout.Duration(),
		WriteTimeout:      cfg.Transport.WriteTimeout.Duration(),
		KeepaliveInterval: cfg.Transport.KeepaliveInterval.Duration(),
		KeepaliveTimeout:  cfg.Transport.KeepaliveTimeout.Duration(),
		DedupSize:         cfg.Transport.DedupSize,
	}

	instances := make([]conductor.InstanceConfig, 0, len(cfg.Instances))
	for _, ic := range cfg.Instances {
		instances = append(instances, conductor.InstanceConfig{
			ID:           ic.ID,
			HubURL:       ic.HubURL,
			SpaceAddress: types.Address(ic.SpaceAddress),
			AgentID:      types.Address(ic.AgentID),
		})
	}
	return conductor.Config{Instances: instances, Transport: tc}
}
