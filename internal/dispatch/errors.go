package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedMeta 元数据 content_list 形状错误
	ErrMalformedMeta = errors.New("dispatch: malformed content_list")

	// ErrNilWorkflows 未提供工作流实现
	ErrNilWorkflows = errors.New("dispatch: nil workflows")

	// ErrNilPool 未提供任务池
	ErrNilPool = errors.New("dispatch: nil task pool")
)

// MalformedMetaError content_list 元素数量错误或元素无法解码
type MalformedMetaError struct {
	// Attribute 请求的属性
	Attribute string

	// Count content_list 实际元素数
	Count int

	// Err 元素解码错误，数量错误时为 nil
	Err error
}

// Error 实现 error 接口
func (e *MalformedMetaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dispatch: malformed content_list for %q: %v", e.Attribute, e.Err)
	}
	if e.Count == 0 {
		return fmt.Sprintf("dispatch: malformed content_list for %q: empty", e.Attribute)
	}
	return fmt.Sprintf("dispatch: malformed content_list for %q: expected exactly one element, got %d", e.Attribute, e.Count)
}

// Unwrap 返回解码错误
func (e *MalformedMetaError) Unwrap() error {
	return e.Err
}

// Is 匹配 ErrMalformedMeta
func (e *MalformedMetaError) Is(target error) bool {
	return target == ErrMalformedMeta
}
