package wire

// IsPayloadBearing 是否为携带业务负载的消息
//
// 四个带追踪上下文的族和 MultiSend 属于业务消息；
// 连接控制、Ack 和 Err 可以在握手完成前交换。
func IsPayloadBearing(msg WireMessage) bool {
	switch msg.(type) {
	case ClientToLib3hMessage, ClientToLib3hResponseMessage,
		Lib3hToClientMessage, Lib3hToClientResponseMessage, MultiSend:
		return true
	default:
		return false
	}
}

// CheckHandshake 握手完成前收到业务消息时返回 ErrMessageWhileInLimbo
//
// 握手状态由调用方维护，本函数只做分类。
func CheckHandshake(handshaken bool, msg WireMessage) error {
	if !handshaken && IsPayloadBearing(msg) {
		return ErrMessageWhileInLimbo
	}
	return nil
}

// IsCompatible 对端版本是否与本地版本一致
func IsCompatible(version WireMessageVersion) bool {
	return version == WireVersion
}
