package types

import (
	"encoding/json"
	"fmt"

	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
)

// Provenance 作者与签名，编码为 [source, signature]
type Provenance struct {
	Source    Address
	Signature string
}

// MarshalJSON 编码为二元组
func (p Provenance) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal([2]string{string(p.Source), p.Signature})
}

// UnmarshalJSON 从二元组解码
func (p *Provenance) UnmarshalJSON(data []byte) error {
	var tuple []string
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("%w: provenance expects 2 elements, got %d", ErrInvalidTuple, len(tuple))
	}
	p.Source, p.Signature = Address(tuple[0]), tuple[1]
	return nil
}

// ChainHeader 条目的来源信息
//
// 作者、时间戳与链上前驱；分发器不解释其内容。
type ChainHeader struct {
	EntryType        string       `json:"entry_type"`
	EntryAddress     Address      `json:"entry_address"`
	Provenances      []Provenance `json:"provenances"`
	Link             *Address     `json:"link"`
	LinkSameType     *Address     `json:"link_same_type"`
	LinkUpdateDelete *Address     `json:"link_update_delete"`
	Timestamp        string       `json:"timestamp"`
}

// Author 返回首个签名者
func (h *ChainHeader) Author() Address {
	if len(h.Provenances) == 0 {
		return ""
	}
	return h.Provenances[0].Source
}

// EntryWithHeader 条目及其来源
//
// 每条入站消息创建一次，由恰好一个工作流调用消费。
type EntryWithHeader struct {
	Entry  Entry
	Header ChainHeader
}

type entryWithHeaderJSON struct {
	Entry  json.RawMessage `json:"entry"`
	Header ChainHeader     `json:"header"`
}

// MarshalJSON 编码为 {"entry":...,"header":...}
func (e EntryWithHeader) MarshalJSON() ([]byte, error) {
	entry, err := MarshalEntry(e.Entry)
	if err != nil {
		return nil, err
	}
	return jsonx.Marshal(entryWithHeaderJSON{Entry: entry, Header: e.Header})
}

// UnmarshalJSON 解码
func (e *EntryWithHeader) UnmarshalJSON(data []byte) error {
	var raw entryWithHeaderJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Entry) == 0 {
		return fmt.Errorf("types: entry_with_header missing entry")
	}
	entry, err := UnmarshalEntry(raw.Entry)
	if err != nil {
		return err
	}
	e.Entry = entry
	e.Header = raw.Header
	return nil
}
