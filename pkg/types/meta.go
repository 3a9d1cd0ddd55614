package types

import "encoding/json"

// DhtMetaData 元数据存储指令
//
// ContentList 的长度与元素类型取决于 Attribute：
// Link/LinkRemove/CrudLink 恰好一个元素，CrudStatus 取第一个元素。
type DhtMetaData struct {
	DnaAddress      Address           `json:"dna_address"`
	ProviderAgentID Address           `json:"provider_agent_id"`
	EntryAddress    Address           `json:"entry_address"`
	Attribute       string            `json:"attribute"`
	ContentList     []json.RawMessage `json:"content_list"`
}
