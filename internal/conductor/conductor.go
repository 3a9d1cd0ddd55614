// Package conductor 管理多个 DHT 实例
//
// 每个实例在共享的存储引擎上拥有独立命名空间，并各自连接一个 Hub。
// Conductor 同时提供调试接口：RunningInstances、StateDumpForInstance、
// GetTypeAndContentFromCAS。
package conductor

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-dhthold/internal/storage/engine"
	"github.com/dep2p/go-dhthold/internal/storage/kv"
	"github.com/dep2p/go-dhthold/internal/taskpool"
	"github.com/dep2p/go-dhthold/internal/transport"
	"github.com/dep2p/go-dhthold/pkg/lib/log"
)

var logger = log.Logger("conductor")

// Config Conductor 配置
type Config struct {
	// Instances 启动时创建的实例
	Instances []InstanceConfig

	// Transport 会话配置模板，URL 由各实例的 HubURL 覆盖
	Transport transport.Config
}

// Option Conductor 选项
type Option func(*Conductor)

// WithTransportOptions 附加会话选项
func WithTransportOptions(opts ...transport.Option) Option {
	return func(c *Conductor) {
		c.dialOpts = append(c.dialOpts, opts...)
	}
}

// WithClock 替换时钟
func WithClock(clk clock.Clock) Option {
	return func(c *Conductor) {
		c.clock = clk
	}
}

// Conductor 实例管理器
type Conductor struct {
	root     *kv.Store
	pool     *taskpool.Pool
	cfg      Config
	clock    clock.Clock
	dialOpts []transport.Option

	mu        sync.RWMutex
	instances map[string]*Instance
	started   bool
}

// New 创建 Conductor 并按配置创建实例
func New(eng engine.Engine, pool *taskpool.Pool, cfg Config, opts ...Option) (*Conductor, error) {
	if pool == nil {
		return nil, ErrNilPool
	}
	c := &Conductor{
		root:      kv.New(eng, nil),
		pool:      pool,
		cfg:       cfg,
		clock:     clock.New(),
		instances: make(map[string]*Instance),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, ic := range cfg.Instances {
		if _, err := c.AddInstance(ic); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddInstance 创建实例，必须在 Start 之前调用
func (c *Conductor) AddInstance(cfg InstanceConfig) (*Instance, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil, ErrStarted
	}
	if _, ok := c.instances[cfg.ID]; ok {
		return nil, ErrDuplicateInstance
	}
	inst, err := newInstance(cfg, c.root, c)
	if err != nil {
		return nil, err
	}
	c.instances[cfg.ID] = inst
	logger.Debug("实例已创建", "instance", cfg.ID)
	return inst, nil
}

// Instance 按 ID 查找实例
func (c *Conductor) Instance(id string) (*Instance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	inst, ok := c.instances[id]
	if !ok {
		return nil, ErrInstanceNotFound
	}
	return inst, nil
}

// Start 为配置了 HubURL 的实例并发建立会话
//
// 任一实例连接失败时关闭已建立的会话并返回错误。
func (c *Conductor) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	pending := make([]*Instance, 0, len(c.instances))
	for _, inst := range c.instances {
		if inst.cfg.HubURL != "" {
			pending = append(pending, inst)
		}
	}
	c.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	sessions := make([]*transport.Session, len(pending))
	for i, inst := range pending {
		g.Go(func() error {
			s, err := c.connect(gctx, inst)
			if err != nil {
				return err
			}
			sessions[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, s := range sessions {
			if s != nil {
				_ = s.Close()
			}
		}
		logger.Error("实例连接失败", "error", err)
		return err
	}

	c.mu.Lock()
	for i, inst := range pending {
		inst.session = sessions[i]
		go watch(inst.cfg.ID, sessions[i])
	}
	c.mu.Unlock()

	logger.Info("Conductor 已启动", "instances", len(c.instances), "connected", len(pending))
	return nil
}

func (c *Conductor) connect(ctx context.Context, inst *Instance) (*transport.Session, error) {
	cfg := c.cfg.Transport
	cfg.URL = inst.cfg.HubURL

	s, err := transport.Dial(ctx, cfg, inst.dispatcher, c.dialOpts...)
	if err != nil {
		return nil, err
	}
	if inst.cfg.SpaceAddress != "" {
		if err := s.JoinSpace(inst.cfg.SpaceAddress, inst.cfg.AgentID); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

func watch(id string, s *transport.Session) {
	<-s.Done()
	if err := s.Err(); err != nil {
		logger.Warn("Hub 会话异常结束", "instance", id, "error", err)
	}
}

// Stop 关闭所有会话
func (c *Conductor) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs error
	for id, inst := range c.instances {
		if inst.session == nil {
			continue
		}
		if err := inst.session.Close(); err != nil {
			errs = multierr.Append(errs, err)
			logger.Warn("关闭会话失败", "instance", id, "error", err)
		}
		inst.session = nil
	}
	c.started = false
	logger.Info("Conductor 已停止")
	return errs
}
