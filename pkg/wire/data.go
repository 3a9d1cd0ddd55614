package wire

import (
	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
	"github.com/dep2p/go-dhthold/pkg/types"
)

// ============================================================================
//                              连接控制负载
// ============================================================================

// WireMessageVersion 协议版本号类型
type WireMessageVersion = uint32

// WireVersion 当前协议版本，通过 Hello/HelloResponse 通告
const WireVersion WireMessageVersion = 2

// HelloData 握手响应
type HelloData struct {
	RedundantCount uint64  `json:"redundant_count"`
	Version        uint32  `json:"version"`
	Extra          *string `json:"extra"`
}

// StatusData Hub 状态
type StatusData struct {
	Spaces            uint64 `json:"spaces"`
	Connections       uint64 `json:"connections"`
	JoinedConnections uint64 `json:"joined_connections"`
	RedundantCount    uint64 `json:"redundant_count"`
	Version           uint32 `json:"version"`
}

// ============================================================================
//                              空间与条目负载
// ============================================================================

// BootstrapData 引导请求
type BootstrapData struct {
	NetworkOrSpaceAddress types.Address `json:"network_or_space_address"`
	BootstrapURI          string        `json:"bootstrap_uri"`
}

// SpaceData 加入/离开空间
type SpaceData struct {
	RequestID    string        `json:"request_id"`
	SpaceAddress types.Address `json:"space_address"`
	AgentID      types.Address `json:"agent_id"`
}

// ConnectedData 连接建立通知
type ConnectedData struct {
	RequestID string `json:"request_id"`
	URI       string `json:"uri"`
}

// UnboundData 连接解绑通知
type UnboundData struct {
	URI string `json:"uri"`
}

// DirectMessageData 点对点直接消息
type DirectMessageData struct {
	SpaceAddress types.Address `json:"space_address"`
	RequestID    string        `json:"request_id"`
	ToAgentID    types.Address `json:"to_agent_id"`
	FromAgentID  types.Address `json:"from_agent_id"`
	Content      Opaque        `json:"content"`
}

// EntryAspectData 条目的一个切面
//
// TypeHint 描述 Aspect 的内容：
//   - "content": Aspect 为 EntryWithHeader
//   - "meta":    Aspect 为 DhtMetaData
type EntryAspectData struct {
	AspectAddress types.Address `json:"aspect_address"`
	TypeHint      string        `json:"type_hint"`
	Aspect        Opaque        `json:"aspect"`
	PublishTS     uint64        `json:"publish_ts"`
}

// 切面类型提示
const (
	TypeHintContent = "content"
	TypeHintMeta    = "meta"
)

// EntryData 条目及其全部切面
type EntryData struct {
	EntryAddress types.Address     `json:"entry_address"`
	AspectList   []EntryAspectData `json:"aspect_list"`
}

type entryDataJSON EntryData

// MarshalJSON nil 切面列表编码为 []
func (d EntryData) MarshalJSON() ([]byte, error) {
	if d.AspectList == nil {
		d.AspectList = []EntryAspectData{}
	}
	return jsonx.Marshal(entryDataJSON(d))
}

// UnmarshalJSON 空切面列表解码为 nil
func (d *EntryData) UnmarshalJSON(data []byte) error {
	var raw entryDataJSON
	if err := jsonx.UnmarshalStrict(data, &raw); err != nil {
		return err
	}
	if len(raw.AspectList) == 0 {
		raw.AspectList = nil
	}
	*d = EntryData(raw)
	return nil
}

// ProvidedEntryData 发布条目
type ProvidedEntryData struct {
	SpaceAddress    types.Address `json:"space_address"`
	ProviderAgentID types.Address `json:"provider_agent_id"`
	Entry           EntryData     `json:"entry"`
}

// FetchEntryData 获取条目请求
//
// AspectAddressList 为 nil 表示获取全部切面。
type FetchEntryData struct {
	SpaceAddress      types.Address   `json:"space_address"`
	EntryAddress      types.Address   `json:"entry_address"`
	RequestID         string          `json:"request_id"`
	ProviderAgentID   types.Address   `json:"provider_agent_id"`
	AspectAddressList []types.Address `json:"aspect_address_list,optional"`
}

// FetchEntryResultData 获取条目结果
type FetchEntryResultData struct {
	SpaceAddress    types.Address `json:"space_address"`
	ProviderAgentID types.Address `json:"provider_agent_id"`
	RequestID       string        `json:"request_id"`
	Entry           EntryData     `json:"entry"`
}

// StoreEntryAspectData 存储切面指令
type StoreEntryAspectData struct {
	RequestID       string          `json:"request_id"`
	SpaceAddress    types.Address   `json:"space_address"`
	ProviderAgentID types.Address   `json:"provider_agent_id"`
	EntryAddress    types.Address   `json:"entry_address"`
	EntryAspect     EntryAspectData `json:"entry_aspect"`
}

// DropEntryData 丢弃条目指令
type DropEntryData struct {
	SpaceAddress types.Address `json:"space_address"`
	RequestID    string        `json:"request_id"`
	EntryAddress types.Address `json:"entry_address"`
}

// QueryEntryData 查询条目
type QueryEntryData struct {
	SpaceAddress     types.Address `json:"space_address"`
	EntryAddress     types.Address `json:"entry_address"`
	RequestID        string        `json:"request_id"`
	RequesterAgentID types.Address `json:"requester_agent_id"`
	Query            Opaque        `json:"query"`
}

// QueryEntryResultData 查询结果
type QueryEntryResultData struct {
	SpaceAddress     types.Address `json:"space_address"`
	EntryAddress     types.Address `json:"entry_address"`
	RequestID        string        `json:"request_id"`
	RequesterAgentID types.Address `json:"requester_agent_id"`
	ResponderAgentID types.Address `json:"responder_agent_id"`
	QueryResult      Opaque        `json:"query_result"`
}

// GetListData 条目列表请求
type GetListData struct {
	SpaceAddress    types.Address `json:"space_address"`
	ProviderAgentID types.Address `json:"provider_agent_id"`
	RequestID       string        `json:"request_id"`
}

// EntryListData 条目列表
type EntryListData struct {
	SpaceAddress    types.Address `json:"space_address"`
	ProviderAgentID types.Address `json:"provider_agent_id"`
	RequestID       string        `json:"request_id"`
	AddressMap      AddressMap    `json:"address_map"`
}
