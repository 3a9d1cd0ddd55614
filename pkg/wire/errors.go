package wire

import (
	"fmt"

	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
)

// WireErrorKind 协议错误种类
type WireErrorKind uint8

const (
	// KindOther 解码或协议错误，带诊断信息
	KindOther WireErrorKind = iota
	// KindMessageWhileInLimbo 握手完成前收到带负载消息
	KindMessageWhileInLimbo
)

// WireError 协议错误
//
// 只由编解码器产生，可作为 ErrorMessage 的负载回送给对端。
type WireError struct {
	Kind   WireErrorKind
	Detail string
}

// ErrMessageWhileInLimbo 握手完成前收到带负载消息
var ErrMessageWhileInLimbo = &WireError{Kind: KindMessageWhileInLimbo}

// NewOtherError 创建 Other 错误
func NewOtherError(format string, args ...any) *WireError {
	return &WireError{Kind: KindOther, Detail: fmt.Sprintf(format, args...)}
}

// Error 实现 error 接口
func (e *WireError) Error() string {
	if e.Kind == KindMessageWhileInLimbo {
		return "wire: message while in limbo"
	}
	return "wire: " + e.Detail
}

// Is 支持 errors.Is：种类相同且（Other 时）诊断信息相同
func (e *WireError) Is(target error) bool {
	t, ok := target.(*WireError)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return e.Kind == KindMessageWhileInLimbo || e.Detail == t.Detail
}

// MarshalJSON 编码为 "MessageWhileInLimbo" 或 {"Other":detail}
func (e WireError) MarshalJSON() ([]byte, error) {
	if e.Kind == KindMessageWhileInLimbo {
		return jsonx.Unit("MessageWhileInLimbo"), nil
	}
	return jsonx.Tagged("Other", e.Detail)
}

// UnmarshalJSON 解码
func (e *WireError) UnmarshalJSON(data []byte) error {
	v, err := jsonx.DecodeVariant(data)
	if err != nil {
		return err
	}
	switch {
	case v.Tag == "MessageWhileInLimbo" && v.IsUnit():
		*e = WireError{Kind: KindMessageWhileInLimbo}
		return nil
	case v.Tag == "Other" && !v.IsUnit():
		var detail string
		if err := jsonx.UnmarshalStrict(v.Payload, &detail); err != nil {
			return err
		}
		*e = WireError{Kind: KindOther, Detail: detail}
		return nil
	}
	return &jsonx.UnknownVariantError{Family: "WireError", Tag: v.Tag}
}
