package conductor

import (
	"fmt"
	"sort"
	"time"

	"github.com/dep2p/go-dhthold/internal/transport"
	"github.com/dep2p/go-dhthold/pkg/types"
)

// HeldEntry 状态快照中的一条持有记录
type HeldEntry struct {
	Address types.Address `json:"address"`
	Type    string        `json:"type"`
	Status  string        `json:"status,omitempty"`
}

// StateDump 实例状态快照
type StateDump struct {
	Instance string    `json:"instance"`
	Created  time.Time `json:"created"`

	// RunningTasks 任务池在途任务数，所有实例共享一个任务池
	RunningTasks int64 `json:"running_tasks"`

	Held    []HeldEntry      `json:"held"`
	EAVRows int64            `json:"eav_rows"`
	Session *transport.Stats `json:"session,omitempty"`
}

// RunningInstances 返回全部实例 ID（按字典序）
func (c *Conductor) RunningInstances() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.instances))
	for id := range c.instances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StateDumpForInstance 返回实例的状态快照
func (c *Conductor) StateDumpForInstance(id string) (*StateDump, error) {
	inst, err := c.Instance(id)
	if err != nil {
		return nil, err
	}

	store := inst.holder.CAS()
	addrs, err := store.Addresses()
	if err != nil {
		return nil, fmt.Errorf("conductor: dump %s: %w", id, err)
	}
	held := make([]HeldEntry, 0, len(addrs))
	for _, addr := range addrs {
		rec, err := store.Get(addr)
		if err != nil {
			return nil, fmt.Errorf("conductor: dump %s: %w", id, err)
		}
		entry := HeldEntry{Address: addr, Type: rec.Type}
		status, ok, err := inst.holder.StatusOf(addr)
		if err != nil {
			return nil, fmt.Errorf("conductor: dump %s: status of %s: %w", id, addr, err)
		}
		if ok {
			entry.Status = status.String()
		}
		held = append(held, entry)
	}

	rows, err := inst.holder.EAV().Count()
	if err != nil {
		return nil, fmt.Errorf("conductor: dump %s: %w", id, err)
	}

	dump := &StateDump{
		Instance:     id,
		Created:      inst.created,
		RunningTasks: c.pool.InFlight(),
		Held:         held,
		EAVRows:      rows,
	}
	c.mu.RLock()
	session := inst.session
	c.mu.RUnlock()
	if session != nil {
		stats := session.Stats()
		dump.Session = &stats
	}
	return dump, nil
}

// GetTypeAndContentFromCAS 返回实例 CAS 中地址对应的类型名与内容
func (c *Conductor) GetTypeAndContentFromCAS(addr types.Address, id string) (string, string, error) {
	inst, err := c.Instance(id)
	if err != nil {
		return "", "", err
	}
	rec, err := inst.holder.CAS().Get(addr)
	if err != nil {
		return "", "", err
	}
	return rec.Type, string(rec.Content), nil
}
