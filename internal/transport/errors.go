package transport

import "errors"

var (
	// ErrClosed 会话已关闭
	ErrClosed = errors.New("transport: session closed")

	// ErrHandshakeTimeout 握手超时
	ErrHandshakeTimeout = errors.New("transport: handshake timeout")

	// ErrIncompatibleVersion 对端协议版本不一致
	ErrIncompatibleVersion = errors.New("transport: incompatible wire version")

	// ErrUnknownTypeHint 切面类型提示无法识别
	ErrUnknownTypeHint = errors.New("transport: unknown aspect type hint")

	// ErrKeepaliveTimeout 心跳超时
	ErrKeepaliveTimeout = errors.New("transport: keepalive timeout")

	// ErrEmptyURL 未配置 Hub 地址
	ErrEmptyURL = errors.New("transport: empty hub url")
)
