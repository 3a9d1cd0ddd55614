package transport

import "time"

// Config 会话配置
type Config struct {
	// URL Hub 的 websocket 地址，例如 ws://127.0.0.1:8080/ws
	URL string

	// HandshakeTimeout 等待 HelloResponse 的时长
	HandshakeTimeout time.Duration

	// WriteTimeout 单次写入超时
	WriteTimeout time.Duration

	// KeepaliveInterval Ping 间隔，0 表示不发送
	KeepaliveInterval time.Duration

	// KeepaliveTimeout 无任何入站消息的最长时间，0 表示不检测
	KeepaliveTimeout time.Duration

	// DedupSize 记忆的已处理消息指纹数量
	DedupSize int
}

// DefaultConfig 返回默认配置
func DefaultConfig(url string) Config {
	return Config{
		URL:               url,
		HandshakeTimeout:  10 * time.Second,
		WriteTimeout:      5 * time.Second,
		KeepaliveInterval: 15 * time.Second,
		KeepaliveTimeout:  45 * time.Second,
		DedupSize:         4096,
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrEmptyURL
	}
	if c.DedupSize <= 0 {
		c.DedupSize = 4096
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 5 * time.Second
	}
	return nil
}
