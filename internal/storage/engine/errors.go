package engine

import "errors"

var (
	// ErrNotFound 键不存在，CAS 查询未命中时向上传递
	ErrNotFound = errors.New("engine: key not found")

	// ErrEmptyKey 空键
	ErrEmptyKey = errors.New("engine: empty key")

	// ErrClosed 引擎已关闭，关停期间仍在运行的工作流会收到它
	ErrClosed = errors.New("engine: closed")

	// ErrReadOnly 以只读方式打开时拒绝写入
	ErrReadOnly = errors.New("engine: read-only")

	// ErrTransactionConflict 并发写同一键冲突
	ErrTransactionConflict = errors.New("engine: write conflict")

	// ErrTransactionTooLarge 单个批次超出 badger 限制
	ErrTransactionTooLarge = errors.New("engine: batch too large")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = errors.New("engine: invalid configuration")
)

// IsNotFound 是否为键不存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
