package workflow

import "errors"

var (
	// ErrUnexpectedEntry 条目种类与工作流不符
	ErrUnexpectedEntry = errors.New("workflow: unexpected entry kind")

	// ErrAddressMismatch 链头声明的地址与条目内容地址不一致
	ErrAddressMismatch = errors.New("workflow: header entry address mismatch")

	// ErrNilEntry 条目为空
	ErrNilEntry = errors.New("workflow: nil entry")
)
