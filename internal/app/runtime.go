package app

import (
	"context"

	"github.com/dep2p/go-dhthold/internal/conductor"
	"github.com/dep2p/go-dhthold/internal/introspect"
)

// Runtime 表示一个已通过 fx 组装并启动的 dhthold 运行时
type Runtime struct {
	Conductor *conductor.Conductor

	// Introspect 调试服务，未启用时为 nil
	Introspect *introspect.Server

	stop func(ctx context.Context) error
}

// Stop 停止运行时（触发 fx 生命周期 OnStop）
func (r *Runtime) Stop(ctx context.Context) error {
	if r.stop == nil {
		return nil
	}
	return r.stop(ctx)
}
