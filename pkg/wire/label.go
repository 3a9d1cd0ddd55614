package wire

// 标签前缀表示方向：C 为客户端，L 为 Hub，> 为请求，< 为响应
const (
	prefixClientToLib3h         = "[C>L]"
	prefixClientToLib3hResponse = "[C<L]"
	prefixLib3hToClient         = "[L>C]"
	prefixLib3hToClientResponse = "[L<C]"

	unexpectedVariant = "UNEXPECTED_VARIANT"

	// MultiSendEmpty 空批量推送的标签
	MultiSendEmpty = "[L>C]MultiSend::EMPTY_SEND"
	// MultiSendUnexpected 批量推送首元素不是 HandleFetchEntry/HandleStoreEntryAspect 时的标签
	MultiSendUnexpected = "[L>C]MultiSend::UNEXPECTED_VARIANT"
)

// MessageType 返回消息的简短标签，用于日志和指标
//
// 对任意输入都返回非空字符串：嵌套负载缺失或未知时返回
// 带方向前缀的 UNEXPECTED_VARIANT 标签。
func MessageType(msg WireMessage) string {
	switch m := msg.(type) {
	case ClientToLib3hMessage:
		return prefixClientToLib3h + nestedLabel(m.Data)
	case ClientToLib3hResponseMessage:
		return prefixClientToLib3hResponse + nestedLabel(m.Data)
	case Lib3hToClientMessage:
		return prefixLib3hToClient + nestedLabel(m.Data)
	case Lib3hToClientResponseMessage:
		return prefixLib3hToClientResponse + nestedLabel(m.Data)
	case MultiSend:
		return multiSendLabel(m)
	case ErrorMessage:
		return "[Error]"
	case Ack:
		return "[Ack]"
	case Ping, Pong, Status, Hello, HelloResponse, StatusResponse:
		return m.variantTag()
	default:
		return unexpectedVariant
	}
}

func nestedLabel(v variant) string {
	if v == nil {
		return unexpectedVariant
	}
	return v.variantTag()
}

func multiSendLabel(m MultiSend) string {
	if len(m) == 0 {
		return MultiSendEmpty
	}
	switch m[0].Data.(type) {
	case HandleFetchEntry:
		return "[L>C]MultiSend::HandleFetchEntry"
	case HandleStoreEntryAspect:
		return "[L>C]MultiSend::HandleStoreEntryAspect"
	default:
		return MultiSendUnexpected
	}
}
