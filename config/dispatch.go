package config

import "fmt"

// DispatchConfig 分发器配置
type DispatchConfig struct {
	// MaxInFlight 同时运行的工作流上限，0 表示不限制
	//
	// 超过上限的请求被拒绝并记录日志，不排队。
	MaxInFlight int64 `json:"max_in_flight" toml:"max_in_flight"`
}

// DefaultDispatchConfig 返回默认分发器配置
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{MaxInFlight: 0}
}

// Validate 验证分发器配置
func (c *DispatchConfig) Validate() error {
	if c.MaxInFlight < 0 {
		return fmt.Errorf("dispatch: max_in_flight cannot be negative")
	}
	return nil
}
