package config

import "fmt"

// IntrospectConfig 调试 HTTP 服务配置
type IntrospectConfig struct {
	// Enable 启用调试服务
	Enable bool `json:"enable" toml:"enable"`

	// Addr 监听地址，默认 "127.0.0.1:6060"
	Addr string `json:"addr" toml:"addr"`
}

// DefaultIntrospectConfig 返回默认调试服务配置
func DefaultIntrospectConfig() IntrospectConfig {
	return IntrospectConfig{
		Enable: false,
		Addr:   "127.0.0.1:6060",
	}
}

// Validate 验证调试服务配置
func (c *IntrospectConfig) Validate() error {
	if c.Enable && c.Addr == "" {
		return fmt.Errorf("introspect: addr cannot be empty when enabled")
	}
	return nil
}
