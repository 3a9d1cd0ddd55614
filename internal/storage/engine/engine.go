// Package engine 定义持久化存储引擎接口
//
// CAS 与 EAV 存储都建立在同一个引擎之上，
// 通过 kv.Store 的前缀实现命名空间隔离。
//
// # 线程安全
//
// 所有实现必须保证线程安全。批量操作在提交前独立于其他并发操作。
package engine

// Engine 存储引擎
type Engine interface {
	// Get 获取指定键的值，键不存在时返回 ErrNotFound
	Get(key []byte) ([]byte, error)

	// Put 设置键值对
	Put(key, value []byte) error

	// Delete 删除指定键，键不存在时不报错
	Delete(key []byte) error

	// Has 检查键是否存在
	Has(key []byte) (bool, error)

	// NewBatch 创建批量写入对象
	//
	// 批量内的操作在 Write 时原子性生效。
	NewBatch() Batch

	// NewPrefixIterator 创建前缀迭代器，调用者负责 Close
	NewPrefixIterator(prefix []byte) Iterator

	// Start 启动后台任务（如值日志 GC）
	Start() error

	// Sync 同步数据到磁盘
	Sync() error

	// Stats 获取引擎统计信息
	Stats() *Stats

	// Close 关闭引擎
	Close() error
}

// Batch 批量写入
//
// Batch 不是线程安全的，不应在多个 goroutine 中并发使用。
type Batch interface {
	// Put 添加写入操作
	Put(key, value []byte)

	// Delete 添加删除操作
	Delete(key []byte)

	// Write 原子性写入全部操作，写入后自动重置
	Write() error

	// Reset 丢弃全部待写入操作
	Reset()

	// Size 待写入操作数量
	Size() int
}

// Iterator 迭代器
//
// 迭代器保持创建时的快照视图，不受后续写入影响。
//
//	iter := eng.NewPrefixIterator(prefix)
//	defer iter.Close()
//
//	for iter.First(); iter.Valid(); iter.Next() {
//	    key, value := iter.Key(), iter.Value()
//	}
//	return iter.Error()
type Iterator interface {
	// First 移动到第一个键值对
	First() bool

	// Next 移动到下一个键值对
	Next() bool

	// Valid 当前位置是否有效
	Valid() bool

	// Key 返回当前键的副本
	Key() []byte

	// Value 返回当前值的副本
	Value() []byte

	// Close 释放迭代器资源，可重复调用
	Close()

	// Error 返回迭代过程中的错误
	Error() error
}

// Stats 引擎统计信息
type Stats struct {
	KeyCount   int64 `json:"key_count"`
	DiskSize   int64 `json:"disk_size"`
	LSMSize    int64 `json:"lsm_size"`
	VlogSize   int64 `json:"vlog_size"`
	NumReads   int64 `json:"num_reads"`
	NumWrites  int64 `json:"num_writes"`
	NumDeletes int64 `json:"num_deletes"`
}
