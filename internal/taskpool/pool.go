package taskpool

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/dep2p/go-dhthold/pkg/lib/log"
)

var logger = log.Logger("taskpool")

// Task 一个后台任务
type Task func(ctx context.Context)

// Config 任务池配置
type Config struct {
	// MaxInFlight 最大在途任务数，0 表示不限制
	MaxInFlight int64
}

// PanicHandler 任务 panic 时的回调
type PanicHandler func(err *PanicError)

// Pool 任务池
type Pool struct {
	sem      *semaphore.Weighted // MaxInFlight > 0 时非 nil
	onPanic  PanicHandler
	wg       sync.WaitGroup
	mu       sync.RWMutex
	closed   bool
	inFlight atomic.Int64
}

// Option 任务池选项
type Option func(*Pool)

// WithPanicHandler 设置 panic 回调，默认记录 Error 日志
func WithPanicHandler(h PanicHandler) Option {
	return func(p *Pool) {
		p.onPanic = h
	}
}

// New 创建任务池
func New(cfg Config, opts ...Option) *Pool {
	p := &Pool{
		onPanic: func(err *PanicError) {
			logger.Error("后台任务 panic", "task", err.Task, "panic", err.Value)
		},
	}
	if cfg.MaxInFlight > 0 {
		p.sem = semaphore.NewWeighted(cfg.MaxInFlight)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit 提交任务并立即返回
//
// name 仅用于 panic 诊断。ctx 原样传给任务，调用方负责决定其生命周期。
func (p *Pool) Submit(ctx context.Context, name string, task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}
	if p.sem != nil && !p.sem.TryAcquire(1) {
		return ErrSaturated
	}

	p.wg.Add(1)
	p.inFlight.Add(1)
	go p.run(ctx, name, task)
	return nil
}

func (p *Pool) run(ctx context.Context, name string, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.onPanic(&PanicError{Task: name, Value: r})
		}
		p.inFlight.Add(-1)
		if p.sem != nil {
			p.sem.Release(1)
		}
		p.wg.Done()
	}()
	task(ctx)
}

// InFlight 当前在途任务数
func (p *Pool) InFlight() int64 {
	return p.inFlight.Load()
}

// Close 停止接收新任务并等待在途任务结束
//
// ctx 到期时返回 ctx.Err()，在途任务继续运行。
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
