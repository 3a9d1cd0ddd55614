package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// App dhthold 应用
//
// App 提供应用级别的生命周期管理
type App struct {
	runtime  *Runtime
	stopOnce sync.Once
	stopped  chan struct{}
	stopErr  error
}

// RunApp 运行 dhthold 应用
//
// 这是一个便捷函数：
// - 构建并启动运行时
// - 等待退出信号
// - 优雅关闭
//
// 示例:
//
//	a, err := app.RunApp(ctx, app.NewBootstrap(cfg))
//	if err != nil {
//	    return err
//	}
//	return a.Wait()
func RunApp(ctx context.Context, bootstrap *Bootstrap) (*App, error) {
	rt, err := bootstrap.Start(ctx)
	if err != nil {
		return nil, err
	}
	return &App{
		runtime: rt,
		stopped: make(chan struct{}),
	}, nil
}

// Runtime 返回运行时
func (a *App) Runtime() *Runtime {
	return a.runtime
}

// Wait 等待退出信号或 Stop，然后关闭应用
func (a *App) Wait() error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		logger.Info("收到退出信号", "signal", sig.String())
	case <-a.stopped:
	}
	return a.Stop()
}

// Stop 停止应用，可重复调用
func (a *App) Stop() error {
	a.stopOnce.Do(func() {
		close(a.stopped)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := a.runtime.Stop(ctx); err != nil {
			a.stopErr = fmt.Errorf("停止应用失败: %w", err)
		}
	})
	return a.stopErr
}
