package types

import "errors"

var (
	// ErrEmptyAddress 空地址
	ErrEmptyAddress = errors.New("types: empty address")

	// ErrUnknownCrudStatus 未知的 CRUD 状态
	ErrUnknownCrudStatus = errors.New("types: unknown crud status")

	// ErrInvalidTuple 元组编码长度不匹配
	ErrInvalidTuple = errors.New("types: invalid tuple encoding")
)
