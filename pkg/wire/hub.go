package wire

import (
	"encoding/json"

	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
)

// ============================================================================
//                              Lib3hToClient
// ============================================================================

// Lib3hToClient Hub 主动推送给客户端的请求或通知
type Lib3hToClient interface {
	variant
	lib3hToClient()
}

type (
	// Connected 连接建立
	Connected ConnectedData
	// HandleDropEntry 丢弃条目
	HandleDropEntry DropEntryData
	// HandleFetchEntry 获取本地持有的条目
	HandleFetchEntry FetchEntryData
	// HandleGetAuthoringEntryList 请求本地创作的条目列表
	HandleGetAuthoringEntryList GetListData
	// HandleGetGossipingEntryList 请求本地持有的条目列表
	HandleGetGossipingEntryList GetListData
	// HandleQueryEntry 查询本地条目
	HandleQueryEntry QueryEntryData
	// HandleSendDirectMessage 转发的直接消息
	HandleSendDirectMessage DirectMessageData
	// HandleStoreEntryAspect 存储条目切面
	HandleStoreEntryAspect StoreEntryAspectData
	// DirectMessageResult 对客户端发出的直接消息的回复，线上标签为 SendDirectMessageResult
	DirectMessageResult DirectMessageData
	// Unbound 连接解绑
	Unbound UnboundData
)

func (Connected) variantTag() string                   { return "Connected" }
func (HandleDropEntry) variantTag() string             { return "HandleDropEntry" }
func (HandleFetchEntry) variantTag() string            { return "HandleFetchEntry" }
func (HandleGetAuthoringEntryList) variantTag() string { return "HandleGetAuthoringEntryList" }
func (HandleGetGossipingEntryList) variantTag() string { return "HandleGetGossipingEntryList" }
func (HandleQueryEntry) variantTag() string            { return "HandleQueryEntry" }
func (HandleSendDirectMessage) variantTag() string     { return "HandleSendDirectMessage" }
func (HandleStoreEntryAspect) variantTag() string      { return "HandleStoreEntryAspect" }
func (DirectMessageResult) variantTag() string         { return "SendDirectMessageResult" }
func (Unbound) variantTag() string                     { return "Unbound" }

func (Connected) lib3hToClient()                   {}
func (HandleDropEntry) lib3hToClient()             {}
func (HandleFetchEntry) lib3hToClient()            {}
func (HandleGetAuthoringEntryList) lib3hToClient() {}
func (HandleGetGossipingEntryList) lib3hToClient() {}
func (HandleQueryEntry) lib3hToClient()            {}
func (HandleSendDirectMessage) lib3hToClient()     {}
func (HandleStoreEntryAspect) lib3hToClient()      {}
func (DirectMessageResult) lib3hToClient()         {}
func (Unbound) lib3hToClient()                     {}

var lib3hToClientFamily = jsonx.Family[Lib3hToClient]{
	Name: "Lib3hToClient",
	Payloads: map[string]func(json.RawMessage) (Lib3hToClient, error){
		"Connected":                   jsonx.Payload(func(v Connected) Lib3hToClient { return v }),
		"HandleDropEntry":             jsonx.Payload(func(v HandleDropEntry) Lib3hToClient { return v }),
		"HandleFetchEntry":            jsonx.Payload(func(v HandleFetchEntry) Lib3hToClient { return v }),
		"HandleGetAuthoringEntryList": jsonx.Payload(func(v HandleGetAuthoringEntryList) Lib3hToClient { return v }),
		"HandleGetGossipingEntryList": jsonx.Payload(func(v HandleGetGossipingEntryList) Lib3hToClient { return v }),
		"HandleQueryEntry":            jsonx.Payload(func(v HandleQueryEntry) Lib3hToClient { return v }),
		"HandleSendDirectMessage":     jsonx.Payload(func(v HandleSendDirectMessage) Lib3hToClient { return v }),
		"HandleStoreEntryAspect":      jsonx.Payload(func(v HandleStoreEntryAspect) Lib3hToClient { return v }),
		"SendDirectMessageResult":     jsonx.Payload(func(v DirectMessageResult) Lib3hToClient { return v }),
		"Unbound":                     jsonx.Payload(func(v Unbound) Lib3hToClient { return v }),
	},
}

// ============================================================================
//                              Lib3hToClientResponse
// ============================================================================

// Lib3hToClientResponse 客户端对 Hub 请求的响应
type Lib3hToClientResponse interface {
	variant
	lib3hToClientResponse()
}

type (
	// HandleDropEntryResult 丢弃完成
	HandleDropEntryResult struct{}
	// HandleFetchEntryResult 本地条目
	HandleFetchEntryResult FetchEntryResultData
	// HandleGetAuthoringEntryListResult 创作条目列表
	HandleGetAuthoringEntryListResult EntryListData
	// HandleGetGossipingEntryListResult 持有条目列表
	HandleGetGossipingEntryListResult EntryListData
	// HandleQueryEntryResult 本地查询结果
	HandleQueryEntryResult QueryEntryResultData
	// HandleSendDirectMessageResult 对直接消息的回复
	HandleSendDirectMessageResult DirectMessageData
	// HandleStoreEntryAspectResult 切面已接收
	HandleStoreEntryAspectResult struct{}
)

func (HandleDropEntryResult) variantTag() string { return "HandleDropEntryResult" }
func (HandleFetchEntryResult) variantTag() string {
	return "HandleFetchEntryResult"
}
func (HandleGetAuthoringEntryListResult) variantTag() string {
	return "HandleGetAuthoringEntryListResult"
}
func (HandleGetGossipingEntryListResult) variantTag() string {
	return "HandleGetGossipingEntryListResult"
}
func (HandleQueryEntryResult) variantTag() string { return "HandleQueryEntryResult" }
func (HandleSendDirectMessageResult) variantTag() string {
	return "HandleSendDirectMessageResult"
}
func (HandleStoreEntryAspectResult) variantTag() string { return "HandleStoreEntryAspectResult" }

func (HandleDropEntryResult) unit()        {}
func (HandleStoreEntryAspectResult) unit() {}

func (HandleDropEntryResult) lib3hToClientResponse()             {}
func (HandleFetchEntryResult) lib3hToClientResponse()            {}
func (HandleGetAuthoringEntryListResult) lib3hToClientResponse() {}
func (HandleGetGossipingEntryListResult) lib3hToClientResponse() {}
func (HandleQueryEntryResult) lib3hToClientResponse()            {}
func (HandleSendDirectMessageResult) lib3hToClientResponse()     {}
func (HandleStoreEntryAspectResult) lib3hToClientResponse()      {}

var lib3hToClientResponseFamily = jsonx.Family[Lib3hToClientResponse]{
	Name: "Lib3hToClientResponse",
	Units: map[string]func() Lib3hToClientResponse{
		"HandleDropEntryResult":        func() Lib3hToClientResponse { return HandleDropEntryResult{} },
		"HandleStoreEntryAspectResult": func() Lib3hToClientResponse { return HandleStoreEntryAspectResult{} },
	},
	Payloads: map[string]func(json.RawMessage) (Lib3hToClientResponse, error){
		"HandleFetchEntryResult": jsonx.Payload(func(v HandleFetchEntryResult) Lib3hToClientResponse { return v }),
		"HandleGetAuthoringEntryListResult": jsonx.Payload(func(v HandleGetAuthoringEntryListResult) Lib3hToClientResponse {
			return v
		}),
		"HandleGetGossipingEntryListResult": jsonx.Payload(func(v HandleGetGossipingEntryListResult) Lib3hToClientResponse {
			return v
		}),
		"HandleQueryEntryResult":        jsonx.Payload(func(v HandleQueryEntryResult) Lib3hToClientResponse { return v }),
		"HandleSendDirectMessageResult": jsonx.Payload(func(v HandleSendDirectMessageResult) Lib3hToClientResponse { return v }),
	},
}
