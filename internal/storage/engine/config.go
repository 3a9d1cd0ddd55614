package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config 存储引擎配置
//
// 测试应使用 t.TempDir() 创建数据目录，保证测试与生产使用同一引擎。
type Config struct {
	// Path 数据目录路径（必需）
	Path string

	// SyncWrites 每次写入都同步到磁盘
	SyncWrites bool

	// ReadOnly 只读打开
	ReadOnly bool

	// MemTableSize 内存表大小（字节），默认 64MB
	MemTableSize int64

	// ValueLogFileSize 值日志文件大小（字节），默认 256MB
	ValueLogFileSize int64

	// BlockCacheSize 块缓存大小（字节），默认 64MB
	BlockCacheSize int64

	// GCInterval 值日志垃圾回收间隔，0 表示禁用
	GCInterval time.Duration

	// GCDiscardRatio 垃圾回收丢弃比例
	GCDiscardRatio float64
}

// DefaultConfig 返回默认配置
func DefaultConfig(path string) *Config {
	return &Config{
		Path:             path,
		MemTableSize:     64 << 20,
		ValueLogFileSize: 256 << 20,
		BlockCacheSize:   64 << 20,
		GCInterval:       10 * time.Minute,
		GCDiscardRatio:   0.5,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidConfig)
	}
	if c.MemTableSize < 1<<20 {
		return fmt.Errorf("%w: memtable size below 1MB", ErrInvalidConfig)
	}
	if c.ValueLogFileSize < 1<<20 {
		return fmt.Errorf("%w: value log file size below 1MB", ErrInvalidConfig)
	}
	if c.GCDiscardRatio <= 0 || c.GCDiscardRatio >= 1 {
		return fmt.Errorf("%w: gc discard ratio must be in (0,1)", ErrInvalidConfig)
	}
	return nil
}

// EnsureDir 确保数据目录存在，并将 Path 规范化为绝对路径
func (c *Config) EnsureDir() error {
	absPath, err := filepath.Abs(c.Path)
	if err != nil {
		return err
	}
	c.Path = absPath
	return os.MkdirAll(c.Path, 0755)
}
