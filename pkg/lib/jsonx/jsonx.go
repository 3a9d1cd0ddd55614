// Package jsonx 提供协议层使用的 JSON 辅助函数
//
// 协议消息使用"外部标签"形式的联合类型编码：
//   - 单元变体编码为字符串：  "Ping"
//   - 带负载变体编码为单键对象：{"Hello":2}
//
// 所有编码都关闭 HTML 转义，保证相同的逻辑值得到相同的字节序列。
package jsonx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotTagged 输入不是合法的标签联合编码
var ErrNotTagged = errors.New("jsonx: value is not an externally tagged variant")

// Marshal 序列化为紧凑 JSON（不转义 HTML 字符，无尾随换行）
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal 反序列化 JSON，要求输入只包含一个 JSON 值
func Unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("jsonx: trailing data after value at offset %d", dec.InputOffset())
	}
	return nil
}

// Unit 编码单元变体
func Unit(tag string) []byte {
	b, _ := Marshal(tag)
	return b
}

// Tagged 编码带负载的变体为 {"tag":payload}
func Tagged(tag string, payload any) ([]byte, error) {
	inner, err := Marshal(payload)
	if err != nil {
		return nil, err
	}
	key := Unit(tag)

	out := make([]byte, 0, len(key)+len(inner)+3)
	out = append(out, '{')
	out = append(out, key...)
	out = append(out, ':')
	out = append(out, inner...)
	out = append(out, '}')
	return out, nil
}

// Variant 解码后的标签联合
type Variant struct {
	// Tag 变体名称
	Tag string

	// Payload 负载原始字节，单元变体为 nil
	Payload json.RawMessage
}

// IsUnit 是否单元变体
func (v Variant) IsUnit() bool {
	return v.Payload == nil
}

// DecodeVariant 解析外部标签联合
func DecodeVariant(data []byte) (Variant, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Variant{}, ErrNotTagged
	}

	switch data[0] {
	case '"':
		var tag string
		if err := Unmarshal(data, &tag); err != nil {
			return Variant{}, err
		}
		return Variant{Tag: tag}, nil
	case '{':
		keys, values, err := ObjectKeys(data)
		if err != nil {
			return Variant{}, err
		}
		if len(keys) != 1 {
			return Variant{}, fmt.Errorf("%w: expected exactly one key, got %d", ErrNotTagged, len(keys))
		}
		return Variant{Tag: keys[0], Payload: values[0]}, nil
	}
	return Variant{}, ErrNotTagged
}

// UnknownVariantError 未知变体名称
type UnknownVariantError struct {
	Family string
	Tag    string
}

// Error 实现 error 接口
func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("jsonx: unknown variant %q of %s", e.Tag, e.Family)
}

// ShapeError 变体形态错误（单元变体带了负载，或反之）
type ShapeError struct {
	Family string
	Tag    string
	Unit   bool
}

// Error 实现 error 接口
func (e *ShapeError) Error() string {
	if e.Unit {
		return fmt.Sprintf("jsonx: variant %s::%s takes no payload", e.Family, e.Tag)
	}
	return fmt.Sprintf("jsonx: variant %s::%s requires a payload", e.Family, e.Tag)
}

// Family 描述一个封闭的变体集合及其解码方式
//
// 单元变体在 Units 中注册，带负载变体在 Payloads 中注册。
type Family[T any] struct {
	Name     string
	Units    map[string]func() T
	Payloads map[string]func(json.RawMessage) (T, error)
}

// Decode 按变体集合解码
func (f *Family[T]) Decode(data []byte) (T, error) {
	var zero T
	v, err := DecodeVariant(data)
	if err != nil {
		return zero, err
	}
	if v.IsUnit() {
		if mk, ok := f.Units[v.Tag]; ok {
			return mk(), nil
		}
		if _, ok := f.Payloads[v.Tag]; ok {
			return zero, &ShapeError{Family: f.Name, Tag: v.Tag}
		}
		return zero, &UnknownVariantError{Family: f.Name, Tag: v.Tag}
	}
	if dec, ok := f.Payloads[v.Tag]; ok {
		return dec(v.Payload)
	}
	if _, ok := f.Units[v.Tag]; ok {
		return zero, &ShapeError{Family: f.Name, Tag: v.Tag, Unit: true}
	}
	return zero, &UnknownVariantError{Family: f.Name, Tag: v.Tag}
}

// Payload 构造一个将负载严格解码为 P 并转换为 T 的解码函数
func Payload[T any, P any](wrap func(P) T) func(json.RawMessage) (T, error) {
	return func(raw json.RawMessage) (T, error) {
		var p P
		if err := UnmarshalStrict(raw, &p); err != nil {
			var zero T
			return zero, err
		}
		return wrap(p), nil
	}
}
