package wire

import (
	"encoding/json"

	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
)

// variant 一个族内的具体变体
type variant interface {
	variantTag() string
}

// unitVariant 无负载变体，编码为字符串
type unitVariant interface {
	variant
	unit()
}

// encodeVariant 编码为外部标签 JSON
func encodeVariant(v variant) ([]byte, error) {
	if v == nil {
		return nil, NewOtherError("nil variant")
	}
	if _, ok := v.(unitVariant); ok {
		return jsonx.Unit(v.variantTag()), nil
	}
	return jsonx.Tagged(v.variantTag(), v)
}

// ============================================================================
//                              ClientToLib3h
// ============================================================================

// ClientToLib3h 客户端发起的请求
type ClientToLib3h interface {
	variant
	clientToLib3h()
}

type (
	// Bootstrap 引导到网络或空间
	Bootstrap BootstrapData
	// FetchEntry 获取条目
	FetchEntry FetchEntryData
	// JoinSpace 加入空间
	JoinSpace SpaceData
	// LeaveSpace 离开空间
	LeaveSpace SpaceData
	// PublishEntry 发布条目
	PublishEntry ProvidedEntryData
	// QueryEntry 查询条目
	QueryEntry QueryEntryData
	// SendDirectMessage 发送直接消息
	SendDirectMessage DirectMessageData
)

func (Bootstrap) variantTag() string         { return "Bootstrap" }
func (FetchEntry) variantTag() string        { return "FetchEntry" }
func (JoinSpace) variantTag() string         { return "JoinSpace" }
func (LeaveSpace) variantTag() string        { return "LeaveSpace" }
func (PublishEntry) variantTag() string      { return "PublishEntry" }
func (QueryEntry) variantTag() string        { return "QueryEntry" }
func (SendDirectMessage) variantTag() string { return "SendDirectMessage" }

func (Bootstrap) clientToLib3h()         {}
func (FetchEntry) clientToLib3h()        {}
func (JoinSpace) clientToLib3h()         {}
func (LeaveSpace) clientToLib3h()        {}
func (PublishEntry) clientToLib3h()      {}
func (QueryEntry) clientToLib3h()        {}
func (SendDirectMessage) clientToLib3h() {}

var clientToLib3hFamily = jsonx.Family[ClientToLib3h]{
	Name: "ClientToLib3h",
	Payloads: map[string]func(json.RawMessage) (ClientToLib3h, error){
		"Bootstrap":         jsonx.Payload(func(v Bootstrap) ClientToLib3h { return v }),
		"FetchEntry":        jsonx.Payload(func(v FetchEntry) ClientToLib3h { return v }),
		"JoinSpace":         jsonx.Payload(func(v JoinSpace) ClientToLib3h { return v }),
		"LeaveSpace":        jsonx.Payload(func(v LeaveSpace) ClientToLib3h { return v }),
		"PublishEntry":      jsonx.Payload(func(v PublishEntry) ClientToLib3h { return v }),
		"QueryEntry":        jsonx.Payload(func(v QueryEntry) ClientToLib3h { return v }),
		"SendDirectMessage": jsonx.Payload(func(v SendDirectMessage) ClientToLib3h { return v }),
	},
}

// ============================================================================
//                              ClientToLib3hResponse
// ============================================================================

// ClientToLib3hResponse 对客户端请求的响应
type ClientToLib3hResponse interface {
	variant
	clientToLib3hResponse()
}

type (
	// BootstrapSuccess 引导成功
	BootstrapSuccess struct{}
	// FetchEntryResult 获取条目结果
	FetchEntryResult FetchEntryResultData
	// JoinSpaceResult 加入空间成功
	JoinSpaceResult struct{}
	// LeaveSpaceResult 离开空间成功
	LeaveSpaceResult struct{}
	// QueryEntryResult 查询结果
	QueryEntryResult QueryEntryResultData
	// SendDirectMessageResult 直接消息的回复
	SendDirectMessageResult DirectMessageData
)

func (BootstrapSuccess) variantTag() string        { return "BootstrapSuccess" }
func (FetchEntryResult) variantTag() string        { return "FetchEntryResult" }
func (JoinSpaceResult) variantTag() string         { return "JoinSpaceResult" }
func (LeaveSpaceResult) variantTag() string        { return "LeaveSpaceResult" }
func (QueryEntryResult) variantTag() string        { return "QueryEntryResult" }
func (SendDirectMessageResult) variantTag() string { return "SendDirectMessageResult" }

func (BootstrapSuccess) unit() {}
func (JoinSpaceResult) unit()  {}
func (LeaveSpaceResult) unit() {}

func (BootstrapSuccess) clientToLib3hResponse()        {}
func (FetchEntryResult) clientToLib3hResponse()        {}
func (JoinSpaceResult) clientToLib3hResponse()         {}
func (LeaveSpaceResult) clientToLib3hResponse()        {}
func (QueryEntryResult) clientToLib3hResponse()        {}
func (SendDirectMessageResult) clientToLib3hResponse() {}

var clientToLib3hResponseFamily = jsonx.Family[ClientToLib3hResponse]{
	Name: "ClientToLib3hResponse",
	Units: map[string]func() ClientToLib3hResponse{
		"BootstrapSuccess": func() ClientToLib3hResponse { return BootstrapSuccess{} },
		"JoinSpaceResult":  func() ClientToLib3hResponse { return JoinSpaceResult{} },
		"LeaveSpaceResult": func() ClientToLib3hResponse { return LeaveSpaceResult{} },
	},
	Payloads: map[string]func(json.RawMessage) (ClientToLib3hResponse, error){
		"FetchEntryResult":        jsonx.Payload(func(v FetchEntryResult) ClientToLib3hResponse { return v }),
		"QueryEntryResult":        jsonx.Payload(func(v QueryEntryResult) ClientToLib3hResponse { return v }),
		"SendDirectMessageResult": jsonx.Payload(func(v SendDirectMessageResult) ClientToLib3hResponse { return v }),
	},
}
