package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateAll 验证整个配置的有效性
//
// 这是 Config.Validate() 的别名，nil 配置返回错误。
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 可修复的问题：
//   - 保活超时短于间隔 -> 取间隔的三倍
//   - 超时或容量非正 -> 使用默认值
//   - 实例 ID 两端空白 -> 去除
//   - 日志格式大小写 -> 统一为小写
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	defaults := DefaultTransportConfig()
	if c.Transport.HandshakeTimeout <= 0 {
		c.Transport.HandshakeTimeout = defaults.HandshakeTimeout
	}
	if c.Transport.WriteTimeout <= 0 {
		c.Transport.WriteTimeout = defaults.WriteTimeout
	}
	if c.Transport.DedupSize <= 0 {
		c.Transport.DedupSize = defaults.DedupSize
	}
	if c.Transport.KeepaliveTimeout > 0 && c.Transport.KeepaliveTimeout < c.Transport.KeepaliveInterval {
		c.Transport.KeepaliveTimeout = 3 * c.Transport.KeepaliveInterval
	}

	if c.Dispatch.MaxInFlight < 0 {
		c.Dispatch.MaxInFlight = 0
	}

	for i := range c.Instances {
		c.Instances[i].ID = strings.TrimSpace(c.Instances[i].ID)
	}
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed after fixes: %w", err)
	}
	return c, nil
}
