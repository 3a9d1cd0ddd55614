package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
	"github.com/dep2p/go-dhthold/pkg/types"
)

// ============================================================================
//                              Opaque
// ============================================================================

// Opaque 未解释的字节负载，编码为 JSON 数字数组
//
// 空数组解码为 nil。
type Opaque []byte

// MarshalJSON 编码为 [b0,b1,...]
func (o Opaque) MarshalJSON() ([]byte, error) {
	return appendByteArray(nil, o), nil
}

// UnmarshalJSON 从数字数组解码
func (o *Opaque) UnmarshalJSON(data []byte) error {
	b, err := parseByteArray(data)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		b = nil
	}
	*o = b
	return nil
}

// String 按 UTF-8 解释负载
func (o Opaque) String() string {
	return string(o)
}

// ============================================================================
//                              SpanContext
// ============================================================================

// SpanContext 发送方附加的追踪上下文，用于跨节点关联
//
// nil 编码为 null，其他值编码为数字数组。
type SpanContext []byte

// NewSpanContext 生成新的追踪上下文
func NewSpanContext() SpanContext {
	id := uuid.New()
	return SpanContext(id[:])
}

// MarshalJSON 编码为 null 或数字数组
func (s SpanContext) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return appendByteArray(nil, s), nil
}

// UnmarshalJSON 解码
func (s *SpanContext) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}
	b, err := parseByteArray(data)
	if err != nil {
		return err
	}
	if b == nil {
		b = []byte{}
	}
	*s = b
	return nil
}

func appendByteArray(dst []byte, b []byte) []byte {
	dst = append(dst, '[')
	for i, v := range b {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendUint(dst, uint64(v), 10)
	}
	return append(dst, ']')
}

func parseByteArray(data []byte) ([]byte, error) {
	var nums []uint16
	if err := json.Unmarshal(data, &nums); err != nil {
		return nil, err
	}
	if nums == nil {
		return nil, fmt.Errorf("wire: expected byte array, got %s", data)
	}
	out := make([]byte, len(nums))
	for i, n := range nums {
		if n > 0xff {
			return nil, fmt.Errorf("wire: byte value %d out of range", n)
		}
		out[i] = byte(n)
	}
	return out, nil
}

// ============================================================================
//                              AddressMap
// ============================================================================

// AddressMapEntry 条目地址及其切面地址列表
type AddressMapEntry struct {
	EntryAddress types.Address
	Aspects      []types.Address
}

// AddressMap 保持插入顺序的 条目地址 → 切面地址 映射
//
// 编码为 JSON 对象，键顺序即插入顺序。解码保留线上顺序，
// 因此键顺序不同的同一映射会得到不同的指纹。
// 空对象与空切面列表解码为 nil。
type AddressMap []AddressMapEntry

// Get 查找条目地址对应的切面
func (m AddressMap) Get(entry types.Address) ([]types.Address, bool) {
	for _, e := range m {
		if e.EntryAddress == entry {
			return e.Aspects, true
		}
	}
	return nil, false
}

// Set 设置条目地址对应的切面，已存在则原位替换
func (m *AddressMap) Set(entry types.Address, aspects []types.Address) {
	for i := range *m {
		if (*m)[i].EntryAddress == entry {
			(*m)[i].Aspects = aspects
			return
		}
	}
	*m = append(*m, AddressMapEntry{EntryAddress: entry, Aspects: aspects})
}

// MarshalJSON 按插入顺序编码为对象
func (m AddressMap) MarshalJSON() ([]byte, error) {
	out := []byte{'{'}
	for i, e := range m {
		if i > 0 {
			out = append(out, ',')
		}
		key, err := jsonx.Marshal(string(e.EntryAddress))
		if err != nil {
			return nil, err
		}
		aspects := e.Aspects
		if aspects == nil {
			aspects = []types.Address{}
		}
		val, err := jsonx.Marshal(aspects)
		if err != nil {
			return nil, err
		}
		out = append(out, key...)
		out = append(out, ':')
		out = append(out, val...)
	}
	return append(out, '}'), nil
}

// UnmarshalJSON 按出现顺序解码对象
func (m *AddressMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("wire: address_map must be an object")
	}

	var out AddressMap
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("wire: address_map key must be a string")
		}
		var aspects []types.Address
		if err := dec.Decode(&aspects); err != nil {
			return err
		}
		if aspects == nil {
			return fmt.Errorf("wire: address_map value for %q must be an array", key)
		}
		if len(aspects) == 0 {
			aspects = nil
		}
		out.Set(types.Address(key), aspects)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}
