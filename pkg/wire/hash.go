package wire

// CalcHash 计算消息的 64 位指纹
//
// 四个带追踪上下文的族只对内部负载的编码求值，追踪上下文不影响指纹；
// 其他变体对完整编码求值。
func CalcHash(msg WireMessage) uint64 {
	var data variant = msg
	switch m := msg.(type) {
	case ClientToLib3hMessage:
		data = m.Data
	case ClientToLib3hResponseMessage:
		data = m.Data
	case Lib3hToClientMessage:
		data = m.Data
	case Lib3hToClientResponseMessage:
		data = m.Data
	}
	encoded, err := encodeVariant(data)
	if err != nil {
		panic("wire: message should serialize: " + err.Error())
	}
	return sdbm(encoded)
}

// sdbm 经典 sdbm 字符串哈希，64 位回绕
func sdbm(data []byte) uint64 {
	var h uint64
	for _, b := range data {
		h = uint64(b) + (h << 6) + (h << 16) - h
	}
	return h
}
