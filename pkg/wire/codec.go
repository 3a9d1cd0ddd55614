package wire

import (
	"errors"
	"strings"

	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
)

// Encode 序列化消息
//
// 编码是确定性的：同一逻辑值总是得到同一字节序列。
// 所有变体都可序列化，失败说明调用方构造了非法值（如 nil 负载），直接 panic。
func Encode(msg WireMessage) []byte {
	data, err := encodeVariant(msg)
	if err != nil {
		panic("wire: message should serialize: " + err.Error())
	}
	return data
}

// Decode 反序列化消息
//
// 非法 UTF-8 序列先被替换为 U+FFFD，然后严格解析。
// 任何失败都返回 Other 类型的 *WireError，不返回部分结果。
func Decode(data []byte) (WireMessage, error) {
	text := strings.ToValidUTF8(string(data), "\uFFFD")
	msg, err := wireMessageFamily.Decode([]byte(text))
	if err != nil {
		return nil, asWireError(err)
	}
	return msg, nil
}

func asWireError(err error) *WireError {
	var we *WireError
	if errors.As(err, &we) {
		return we
	}
	var unknown *jsonx.UnknownVariantError
	if errors.As(err, &unknown) {
		return NewOtherError("unknown variant `%s` of %s", unknown.Tag, unknown.Family)
	}
	return NewOtherError("%v", err)
}
