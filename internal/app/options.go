package app

import (
	"io"

	"go.uber.org/fx"
)

// BootstrapOption Bootstrap 配置选项
type BootstrapOption func(*Bootstrap)

// WithLogOutput 设置日志输出目标，默认 os.Stderr
func WithLogOutput(w io.Writer) BootstrapOption {
	return func(b *Bootstrap) {
		b.logOutput = w
	}
}

// WithFxOptions 附加 fx 选项，通常用于测试中替换或取出组件
func WithFxOptions(opts ...fx.Option) BootstrapOption {
	return func(b *Bootstrap) {
		b.fxOptions = append(b.fxOptions, opts...)
	}
}
