package types

import (
	"encoding/json"
	"fmt"

	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
)

// ============================================================================
//                              EntryKind
// ============================================================================

// EntryKind 条目种类
type EntryKind uint8

const (
	// EntryKindApp 应用定义的条目
	EntryKindApp EntryKind = iota + 1
	// EntryKindDeletion 删除标记
	EntryKindDeletion
	// EntryKindLinkAdd 链接添加
	EntryKindLinkAdd
	// EntryKindLinkRemove 链接移除
	EntryKindLinkRemove
	// EntryKindAgentID 代理身份
	EntryKindAgentID
)

// String 返回条目种类名称（与 JSON 标签一致）
func (k EntryKind) String() string {
	switch k {
	case EntryKindApp:
		return "App"
	case EntryKindDeletion:
		return "Deletion"
	case EntryKindLinkAdd:
		return "LinkAdd"
	case EntryKindLinkRemove:
		return "LinkRemove"
	case EntryKindAgentID:
		return "AgentId"
	default:
		return "Unknown"
	}
}

// ============================================================================
//                              Entry
// ============================================================================

// Entry 不可变的内容寻址数据单元
//
// 封闭变体集合：*AppEntry、*DeletionEntry、*LinkAddEntry、
// *LinkRemoveEntry、*AgentIDEntry。
type Entry interface {
	// Kind 返回条目种类
	Kind() EntryKind

	isEntry()
}

// AppEntry 应用定义的条目，编码为 {"App":[type,value]}
type AppEntry struct {
	// Type 应用条目类型名
	Type string

	// Value 应用条目值（通常为 JSON 字符串）
	Value string
}

// DeletionEntry 删除标记
type DeletionEntry struct {
	// DeletedEntryAddress 被删除条目的地址
	DeletedEntryAddress Address `json:"deleted_entry_address"`
}

// Link 两个地址间的有向、带类型的关系
type Link struct {
	Base     Address `json:"base"`
	Target   Address `json:"target"`
	LinkType string  `json:"link_type"`
	Tag      string  `json:"tag"`
}

// LinkData 链接条目内容
type LinkData struct {
	Link      Link    `json:"link"`
	Timestamp string  `json:"timestamp"`
	AgentID   Address `json:"agent_id"`
}

// LinkAddEntry 链接添加条目
type LinkAddEntry struct {
	LinkData
}

// LinkRemoveEntry 链接移除条目，编码为 {"LinkRemove":[link_data,[address...]]}
type LinkRemoveEntry struct {
	// Link 被移除的链接
	Link LinkData

	// Removed 被移除的 LinkAdd 条目地址
	Removed []Address
}

// AgentIDEntry 代理身份条目
type AgentIDEntry struct {
	Nick    string `json:"nick"`
	PubSign string `json:"pub_sign"`
}

// Kind 实现 Entry
func (*AppEntry) Kind() EntryKind { return EntryKindApp }

// Kind 实现 Entry
func (*DeletionEntry) Kind() EntryKind { return EntryKindDeletion }

// Kind 实现 Entry
func (*LinkAddEntry) Kind() EntryKind { return EntryKindLinkAdd }

// Kind 实现 Entry
func (*LinkRemoveEntry) Kind() EntryKind { return EntryKindLinkRemove }

// Kind 实现 Entry
func (*AgentIDEntry) Kind() EntryKind { return EntryKindAgentID }

func (*AppEntry) isEntry()        {}
func (*DeletionEntry) isEntry()   {}
func (*LinkAddEntry) isEntry()    {}
func (*LinkRemoveEntry) isEntry() {}
func (*AgentIDEntry) isEntry()    {}

// ============================================================================
//                              元组编码
// ============================================================================

// MarshalJSON 编码为 [type, value]
func (e AppEntry) MarshalJSON() ([]byte, error) {
	return jsonx.Marshal([2]string{e.Type, e.Value})
}

// UnmarshalJSON 从 [type, value] 解码
func (e *AppEntry) UnmarshalJSON(data []byte) error {
	var tuple []string
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("%w: App expects 2 elements, got %d", ErrInvalidTuple, len(tuple))
	}
	e.Type, e.Value = tuple[0], tuple[1]
	return nil
}

// MarshalJSON 编码为 [link_data, removed]
func (e LinkRemoveEntry) MarshalJSON() ([]byte, error) {
	removed := e.Removed
	if removed == nil {
		removed = []Address{}
	}
	return jsonx.Marshal([2]any{e.Link, removed})
}

// UnmarshalJSON 从 [link_data, removed] 解码
func (e *LinkRemoveEntry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return err
	}
	if len(tuple) != 2 {
		return fmt.Errorf("%w: LinkRemove expects 2 elements, got %d", ErrInvalidTuple, len(tuple))
	}
	if err := json.Unmarshal(tuple[0], &e.Link); err != nil {
		return err
	}
	return json.Unmarshal(tuple[1], &e.Removed)
}

// ============================================================================
//                              联合编解码
// ============================================================================

var entryFamily = jsonx.Family[Entry]{
	Name: "Entry",
	Payloads: map[string]func(json.RawMessage) (Entry, error){
		"App":        jsonx.Payload(func(e AppEntry) Entry { return &e }),
		"Deletion":   jsonx.Payload(func(e DeletionEntry) Entry { return &e }),
		"LinkAdd":    jsonx.Payload(func(e LinkAddEntry) Entry { return &e }),
		"LinkRemove": jsonx.Payload(func(e LinkRemoveEntry) Entry { return &e }),
		"AgentId":    jsonx.Payload(func(e AgentIDEntry) Entry { return &e }),
	},
}

// MarshalEntry 编码条目为外部标签 JSON
func MarshalEntry(e Entry) ([]byte, error) {
	switch v := e.(type) {
	case *AppEntry:
		return jsonx.Tagged("App", v)
	case *DeletionEntry:
		return jsonx.Tagged("Deletion", v)
	case *LinkAddEntry:
		return jsonx.Tagged("LinkAdd", v)
	case *LinkRemoveEntry:
		return jsonx.Tagged("LinkRemove", v)
	case *AgentIDEntry:
		return jsonx.Tagged("AgentId", v)
	case nil:
		return nil, fmt.Errorf("types: nil entry")
	default:
		return nil, fmt.Errorf("types: unsupported entry %T", e)
	}
}

// UnmarshalEntry 从外部标签 JSON 解码条目
func UnmarshalEntry(data []byte) (Entry, error) {
	return entryFamily.Decode(data)
}

// AddressOfEntry 计算条目的内容地址
func AddressOfEntry(e Entry) (Address, error) {
	data, err := MarshalEntry(e)
	if err != nil {
		return "", err
	}
	return AddressOf(data), nil
}
