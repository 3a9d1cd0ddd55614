package config

import (
	"fmt"
	"strings"
)

// InstanceConfig 实例配置
type InstanceConfig struct {
	// ID 实例 ID，同时作为存储命名空间
	ID string `json:"id" toml:"id"`

	// HubURL Hub 的 websocket 地址，为空时实例只在本地运行
	HubURL string `json:"hub_url" toml:"hub_url"`

	// SpaceAddress 握手后加入的空间
	SpaceAddress string `json:"space_address" toml:"space_address"`

	// AgentID 加入空间使用的代理身份
	AgentID string `json:"agent_id" toml:"agent_id"`
}

func validateInstances(instances []InstanceConfig) error {
	seen := make(map[string]struct{}, len(instances))
	for i, inst := range instances {
		if strings.TrimSpace(inst.ID) == "" {
			return fmt.Errorf("instances[%d]: id cannot be empty", i)
		}
		if strings.ContainsAny(inst.ID, "/\x00") {
			return fmt.Errorf("instances[%d]: id %q contains a reserved character", i, inst.ID)
		}
		if _, ok := seen[inst.ID]; ok {
			return fmt.Errorf("instances[%d]: duplicate id %q", i, inst.ID)
		}
		seen[inst.ID] = struct{}{}
		if inst.SpaceAddress != "" && inst.AgentID == "" {
			return fmt.Errorf("instances[%d]: agent_id is required with space_address", i)
		}
	}
	return nil
}
