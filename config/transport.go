package config

import (
	"fmt"
	"time"
)

// TransportConfig Hub 会话配置
type TransportConfig struct {
	// HandshakeTimeout 等待 HelloResponse 的时长
	HandshakeTimeout Duration `json:"handshake_timeout" toml:"handshake_timeout"`

	// WriteTimeout 单次写入超时
	WriteTimeout Duration `json:"write_timeout" toml:"write_timeout"`

	// KeepaliveInterval Ping 间隔，0 表示不发送
	KeepaliveInterval Duration `json:"keepalive_interval" toml:"keepalive_interval"`

	// KeepaliveTimeout 无入站消息的最长时间，0 表示不检测
	KeepaliveTimeout Duration `json:"keepalive_timeout" toml:"keepalive_timeout"`

	// DedupSize 记忆的已处理消息指纹数量
	DedupSize int `json:"dedup_size" toml:"dedup_size"`
}

// DefaultTransportConfig 返回默认会话配置
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		HandshakeTimeout:  Duration(10 * time.Second),
		WriteTimeout:      Duration(5 * time.Second),
		KeepaliveInterval: Duration(15 * time.Second),
		KeepaliveTimeout:  Duration(45 * time.Second),
		DedupSize:         4096,
	}
}

// Validate 验证会话配置
func (c *TransportConfig) Validate() error {
	if c.HandshakeTimeout <= 0 {
		return fmt.Errorf("transport: handshake_timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("transport: write_timeout must be positive")
	}
	if c.KeepaliveInterval < 0 || c.KeepaliveTimeout < 0 {
		return fmt.Errorf("transport: keepalive durations cannot be negative")
	}
	if c.KeepaliveTimeout > 0 && c.KeepaliveTimeout < c.KeepaliveInterval {
		return fmt.Errorf("transport: keepalive_timeout must not be shorter than keepalive_interval")
	}
	if c.DedupSize <= 0 {
		return fmt.Errorf("transport: dedup_size must be positive")
	}
	return nil
}
