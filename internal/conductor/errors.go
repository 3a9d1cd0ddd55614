package conductor

import "errors"

var (
	// ErrInstanceNotFound 实例不存在
	ErrInstanceNotFound = errors.New("conductor: instance not found")

	// ErrDuplicateInstance 实例 ID 重复
	ErrDuplicateInstance = errors.New("conductor: duplicate instance id")

	// ErrInvalidInstanceID 实例 ID 非法
	ErrInvalidInstanceID = errors.New("conductor: invalid instance id")

	// ErrStarted 已启动后不能再添加实例
	ErrStarted = errors.New("conductor: already started")

	// ErrNilPool 未提供任务池
	ErrNilPool = errors.New("conductor: nil task pool")
)
