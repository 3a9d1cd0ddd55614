package conductor

import (
	"strings"
	"time"

	"github.com/dep2p/go-dhthold/internal/dispatch"
	"github.com/dep2p/go-dhthold/internal/storage/cas"
	"github.com/dep2p/go-dhthold/internal/storage/eav"
	"github.com/dep2p/go-dhthold/internal/storage/kv"
	"github.com/dep2p/go-dhthold/internal/transport"
	"github.com/dep2p/go-dhthold/internal/workflow"
	"github.com/dep2p/go-dhthold/pkg/lib/log"
	"github.com/dep2p/go-dhthold/pkg/types"
)

// InstanceConfig 实例配置
type InstanceConfig struct {
	// ID 实例 ID，同时作为存储命名空间
	ID string `json:"id" toml:"id"`

	// HubURL Hub 的 websocket 地址，为空时实例只在本地运行
	HubURL string `json:"hub_url" toml:"hub_url"`

	// SpaceAddress 握手后加入的空间，为空时不加入
	SpaceAddress types.Address `json:"space_address" toml:"space_address"`

	// AgentID 加入空间使用的代理身份
	AgentID types.Address `json:"agent_id" toml:"agent_id"`
}

func (c InstanceConfig) validate() error {
	if c.ID == "" || strings.ContainsAny(c.ID, "/\x00") {
		return ErrInvalidInstanceID
	}
	return nil
}

// Instance 一个运行中的 DHT 实例
//
// 每个实例拥有独立的存储命名空间 i/<id>/，以及自己的工作流、分发器和 Hub 会话。
type Instance struct {
	cfg        InstanceConfig
	holder     *workflow.Holder
	dispatcher *dispatch.Dispatcher
	session    *transport.Session
	created    time.Time
}

func newInstance(cfg InstanceConfig, root *kv.Store, c *Conductor) (*Instance, error) {
	ns := root.SubStore([]byte("i/" + cfg.ID + "/"))
	holder := workflow.New(
		cas.New(ns.SubStore([]byte("c/"))),
		eav.New(ns.SubStore([]byte("e/"))),
	)
	d, err := dispatch.New(holder, log.Logger("dht/"+cfg.ID), c.pool, dispatch.WithInstance(cfg.ID))
	if err != nil {
		return nil, err
	}
	return &Instance{
		cfg:        cfg,
		holder:     holder,
		dispatcher: d,
		created:    c.clock.Now(),
	}, nil
}

// ID 实例 ID
func (i *Instance) ID() string { return i.cfg.ID }

// Dispatcher 实例的分发器
func (i *Instance) Dispatcher() *dispatch.Dispatcher { return i.dispatcher }

// Holder 实例的工作流
func (i *Instance) Holder() *workflow.Holder { return i.holder }
