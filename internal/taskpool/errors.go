package taskpool

import (
	"errors"
	"fmt"
)

var (
	// ErrSaturated 在途任务已达上限
	ErrSaturated = errors.New("taskpool: saturated")

	// ErrClosed 任务池已关闭
	ErrClosed = errors.New("taskpool: closed")
)

// PanicError 任务 panic 时的恢复值
type PanicError struct {
	Task  string
	Value any
}

// Error 实现 error 接口
func (e *PanicError) Error() string {
	return fmt.Sprintf("taskpool: task %s panicked: %v", e.Task, e.Value)
}
