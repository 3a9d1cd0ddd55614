package wire

import (
	"encoding/json"

	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
)

// WireMessage 节点与 Hub 之间交换的协议消息
//
// 封闭变体集合，见包文档。
type WireMessage interface {
	variant
	wireMessage()
}

// ============================================================================
//                              带追踪上下文的信封
// ============================================================================

// ClientToLib3hMessage 客户端请求
type ClientToLib3hMessage struct {
	Data        ClientToLib3h
	SpanContext SpanContext
}

// ClientToLib3hResponseMessage 对客户端请求的响应
type ClientToLib3hResponseMessage struct {
	Data        ClientToLib3hResponse
	SpanContext SpanContext
}

// Lib3hToClientMessage Hub 推送
type Lib3hToClientMessage struct {
	Data        Lib3hToClient
	SpanContext SpanContext
}

// Lib3hToClientResponseMessage 对 Hub 推送的响应
type Lib3hToClientResponseMessage struct {
	Data        Lib3hToClientResponse
	SpanContext SpanContext
}

type spanWrapJSON struct {
	Data        json.RawMessage `json:"data"`
	SpanContext SpanContext     `json:"span_context,optional"`
}

func marshalSpanWrap(data variant, span SpanContext) ([]byte, error) {
	inner, err := encodeVariant(data)
	if err != nil {
		return nil, err
	}
	return jsonx.Marshal(spanWrapJSON{Data: inner, SpanContext: span})
}

func unmarshalSpanWrap[T any](raw []byte, family *jsonx.Family[T]) (T, SpanContext, error) {
	var zero T
	var w spanWrapJSON
	if err := jsonx.UnmarshalStrict(raw, &w); err != nil {
		return zero, nil, err
	}
	if w.Data == nil {
		return zero, nil, NewOtherError("%s: missing field `data`", family.Name)
	}
	data, err := family.Decode(w.Data)
	if err != nil {
		return zero, nil, err
	}
	return data, w.SpanContext, nil
}

// MarshalJSON 编码为 {"data":...,"span_context":...}
func (m ClientToLib3hMessage) MarshalJSON() ([]byte, error) {
	return marshalSpanWrap(m.Data, m.SpanContext)
}

// UnmarshalJSON 解码
func (m *ClientToLib3hMessage) UnmarshalJSON(raw []byte) (err error) {
	m.Data, m.SpanContext, err = unmarshalSpanWrap(raw, &clientToLib3hFamily)
	return err
}

// MarshalJSON 编码为 {"data":...,"span_context":...}
func (m ClientToLib3hResponseMessage) MarshalJSON() ([]byte, error) {
	return marshalSpanWrap(m.Data, m.SpanContext)
}

// UnmarshalJSON 解码
func (m *ClientToLib3hResponseMessage) UnmarshalJSON(raw []byte) (err error) {
	m.Data, m.SpanContext, err = unmarshalSpanWrap(raw, &clientToLib3hResponseFamily)
	return err
}

// MarshalJSON 编码为 {"data":...,"span_context":...}
func (m Lib3hToClientMessage) MarshalJSON() ([]byte, error) {
	return marshalSpanWrap(m.Data, m.SpanContext)
}

// UnmarshalJSON 解码
func (m *Lib3hToClientMessage) UnmarshalJSON(raw []byte) (err error) {
	m.Data, m.SpanContext, err = unmarshalSpanWrap(raw, &lib3hToClientFamily)
	return err
}

// MarshalJSON 编码为 {"data":...,"span_context":...}
func (m Lib3hToClientResponseMessage) MarshalJSON() ([]byte, error) {
	return marshalSpanWrap(m.Data, m.SpanContext)
}

// UnmarshalJSON 解码
func (m *Lib3hToClientResponseMessage) UnmarshalJSON(raw []byte) (err error) {
	m.Data, m.SpanContext, err = unmarshalSpanWrap(raw, &lib3hToClientResponseFamily)
	return err
}

// ============================================================================
//                              其他变体
// ============================================================================

// MultiSend 一次投递的多条 Hub 推送，保持顺序
type MultiSend []Lib3hToClientMessage

// MarshalJSON nil 编码为 []
func (m MultiSend) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("[]"), nil
	}
	return jsonx.Marshal([]Lib3hToClientMessage(m))
}

// UnmarshalJSON 空数组解码为 nil
func (m *MultiSend) UnmarshalJSON(raw []byte) error {
	var list []Lib3hToClientMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}
	if list == nil {
		return NewOtherError("MultiSend: expected array")
	}
	if len(list) == 0 {
		list = nil
	}
	*m = list
	return nil
}

// ErrorMessage 显式错误，线上标签为 Err
type ErrorMessage struct {
	Err WireError
}

// MarshalJSON 编码为 WireError
func (m ErrorMessage) MarshalJSON() ([]byte, error) {
	return m.Err.MarshalJSON()
}

// UnmarshalJSON 解码
func (m *ErrorMessage) UnmarshalJSON(raw []byte) error {
	return m.Err.UnmarshalJSON(raw)
}

type (
	// Ping 存活探测
	Ping struct{}
	// Pong 存活应答
	Pong struct{}
	// Hello 握手，携带协议版本
	Hello WireMessageVersion
	// HelloResponse 握手响应
	HelloResponse HelloData
	// Status 状态查询
	Status struct{}
	// StatusResponse 状态应答
	StatusResponse StatusData
	// Ack 投递确认，携带被确认消息的指纹
	Ack uint64
)

func (ClientToLib3hMessage) variantTag() string         { return "ClientToLib3h" }
func (ClientToLib3hResponseMessage) variantTag() string { return "ClientToLib3hResponse" }
func (Lib3hToClientMessage) variantTag() string         { return "Lib3hToClient" }
func (Lib3hToClientResponseMessage) variantTag() string { return "Lib3hToClientResponse" }
func (MultiSend) variantTag() string                    { return "MultiSend" }
func (ErrorMessage) variantTag() string                 { return "Err" }
func (Ping) variantTag() string                         { return "Ping" }
func (Pong) variantTag() string                         { return "Pong" }
func (Hello) variantTag() string                        { return "Hello" }
func (HelloResponse) variantTag() string                { return "HelloResponse" }
func (Status) variantTag() string                       { return "Status" }
func (StatusResponse) variantTag() string               { return "StatusResponse" }
func (Ack) variantTag() string                          { return "Ack" }

func (Ping) unit()   {}
func (Pong) unit()   {}
func (Status) unit() {}

func (ClientToLib3hMessage) wireMessage()         {}
func (ClientToLib3hResponseMessage) wireMessage() {}
func (Lib3hToClientMessage) wireMessage()         {}
func (Lib3hToClientResponseMessage) wireMessage() {}
func (MultiSend) wireMessage()                    {}
func (ErrorMessage) wireMessage()                 {}
func (Ping) wireMessage()                         {}
func (Pong) wireMessage()                         {}
func (Hello) wireMessage()                        {}
func (HelloResponse) wireMessage()                {}
func (Status) wireMessage()                       {}
func (StatusResponse) wireMessage()               {}
func (Ack) wireMessage()                          {}

var wireMessageFamily = jsonx.Family[WireMessage]{
	Name: "WireMessage",
	Units: map[string]func() WireMessage{
		"Ping":   func() WireMessage { return Ping{} },
		"Pong":   func() WireMessage { return Pong{} },
		"Status": func() WireMessage { return Status{} },
	},
	Payloads: map[string]func(json.RawMessage) (WireMessage, error){
		"ClientToLib3h":         jsonx.Payload(func(v ClientToLib3hMessage) WireMessage { return v }),
		"ClientToLib3hResponse": jsonx.Payload(func(v ClientToLib3hResponseMessage) WireMessage { return v }),
		"Lib3hToClient":         jsonx.Payload(func(v Lib3hToClientMessage) WireMessage { return v }),
		"Lib3hToClientResponse": jsonx.Payload(func(v Lib3hToClientResponseMessage) WireMessage { return v }),
		"MultiSend":             jsonx.Payload(func(v MultiSend) WireMessage { return v }),
		"Err":                   jsonx.Payload(func(v ErrorMessage) WireMessage { return v }),
		"Hello":                 jsonx.Payload(func(v Hello) WireMessage { return v }),
		"HelloResponse":         jsonx.Payload(func(v HelloResponse) WireMessage { return v }),
		"StatusResponse":        jsonx.Payload(func(v StatusResponse) WireMessage { return v }),
		"Ack":                   jsonx.Payload(func(v Ack) WireMessage { return v }),
	},
}
