package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-dhthold/pkg/types"
)

// ============================================================================
// 固定样例
// ============================================================================

func joinSpaceFixture() WireMessage {
	return ClientToLib3hMessage{
		Data: JoinSpace{
			RequestID:    "0123",
			SpaceAddress: "QmABCDEF",
			AgentID:      "Hc345345",
		},
	}
}

// authoringListFixture 的 address_map 按对端重新序列化后的键顺序排列，
// 已知指纹 4395410145282420883 由这一顺序得出
const authoringListFixture = `{"Lib3hToClientResponse":{"data":{"HandleGetAuthoringEntryListResult":{"space_address":"QmQ7guHG2Y3fbtNaLoV1kFex66AqepoCTqQ9XtYYQKAFZK","provider_agent_id":"HcScJxNnN6Bi5d5tda7OHWGKNBgjq9oieP9GQXsmO5Svp8fa3gTK5DJQFwgditr","request_id":"","address_map":{"Qmavdnym3BKrKJxuNoSxLnoPwUBWtqsVhSnQmdmm4FFnyK":["QmPybN5GGibjAno6hmKCWJgM8RRkeo1vga57ZA3QbevrrL"],"QmW22euyQLF7wK8yYhnCZHZq64G7ryQ2TqQ5D3L7vhszg2":["QmWAU3DTuuwdNFPpX3gqEsG7bAttePbJQZjirrh39MfGxR"],"Qmey39PmjYAJ5r5bCKtWe4nMxVcTmTwLE3YN142kVe5CJE":["QmT3mV6mKsh4aEQoJ5J8feUruNGYTTd4FPuPicMxmZf8DY"],"HcScJxNnN6Bi5d5tda7OHWGKNBgjq9oieP9GQXsmO5Svp8fa3gTK5DJQFwgditr":["QmVr1H6B6P6iydnzCF7fh7abDz1yznrjecMwCSMmtGA4EN"]}}},"span_context":[149,217,162,104,57,50,215,185,128,95,199,101,105,81,143,213,10,14,105,185,134,247,194,247,0,0,0,0,0,0,0,0,1,0,0,0,0]}}`

// authoringListAsPublished 同一消息按对端样例文本的键顺序排列
//
// AddressMap 保持线上顺序，键顺序不同的两段文本得到不同的指纹。
const authoringListAsPublished = `{"Lib3hToClientResponse":{"data":{"HandleGetAuthoringEntryListResult":{"space_address":"QmQ7guHG2Y3fbtNaLoV1kFex66AqepoCTqQ9XtYYQKAFZK","provider_agent_id":"HcScJxNnN6Bi5d5tda7OHWGKNBgjq9oieP9GQXsmO5Svp8fa3gTK5DJQFwgditr","request_id":"","address_map":{"Qmey39PmjYAJ5r5bCKtWe4nMxVcTmTwLE3YN142kVe5CJE":["QmT3mV6mKsh4aEQoJ5J8feUruNGYTTd4FPuPicMxmZf8DY"],"HcScJxNnN6Bi5d5tda7OHWGKNBgjq9oieP9GQXsmO5Svp8fa3gTK5DJQFwgditr":["QmVr1H6B6P6iydnzCF7fh7abDz1yznrjecMwCSMmtGA4EN"],"QmW22euyQLF7wK8yYhnCZHZq64G7ryQ2TqQ5D3L7vhszg2":["QmWAU3DTuuwdNFPpX3gqEsG7bAttePbJQZjirrh39MfGxR"],"Qmavdnym3BKrKJxuNoSxLnoPwUBWtqsVhSnQmdmm4FFnyK":["QmPybN5GGibjAno6hmKCWJgM8RRkeo1vga57ZA3QbevrrL"]}}},"span_context":[149,217,162,104,57,50,215,185,128,95,199,101,105,81,143,213,10,14,105,185,134,247,194,247,0,0,0,0,0,0,0,0,1,0,0,0,0]}}`

func strPtr(s string) *string { return &s }

// allMessages 覆盖每个顶层变体和每个嵌套变体
func allMessages() []WireMessage {
	span := SpanContext{1, 2, 3}
	entry := EntryData{
		EntryAddress: "QmEntry",
		AspectList: []EntryAspectData{
			{AspectAddress: "QmAspect", TypeHint: TypeHintContent, Aspect: Opaque("{}"), PublishTS: 42},
		},
	}
	dm := DirectMessageData{SpaceAddress: "QmSpace", RequestID: "r1", ToAgentID: "HcTo", FromAgentID: "HcFrom", Content: Opaque("hello")}
	fetch := FetchEntryData{SpaceAddress: "QmSpace", EntryAddress: "QmEntry", RequestID: "r2", ProviderAgentID: "HcMe"}
	fetchResult := FetchEntryResultData{SpaceAddress: "QmSpace", ProviderAgentID: "HcMe", RequestID: "r3", Entry: entry}
	query := QueryEntryData{SpaceAddress: "QmSpace", EntryAddress: "QmEntry", RequestID: "r4", RequesterAgentID: "HcMe", Query: Opaque("q")}
	queryResult := QueryEntryResultData{SpaceAddress: "QmSpace", EntryAddress: "QmEntry", RequestID: "r5", RequesterAgentID: "HcMe", ResponderAgentID: "HcYou", QueryResult: Opaque("r")}
	list := GetListData{SpaceAddress: "QmSpace", ProviderAgentID: "HcMe", RequestID: "r6"}
	var addrs AddressMap
	addrs.Set("QmB", []types.Address{"QmB1", "QmB2"})
	addrs.Set("QmA", []types.Address{"QmA1"})
	entryList := EntryListData{SpaceAddress: "QmSpace", ProviderAgentID: "HcMe", RequestID: "r7", AddressMap: addrs}
	store := StoreEntryAspectData{RequestID: "r8", SpaceAddress: "QmSpace", ProviderAgentID: "HcMe", EntryAddress: "QmEntry", EntryAspect: entry.AspectList[0]}

	return []WireMessage{
		ClientToLib3hMessage{Data: Bootstrap{NetworkOrSpaceAddress: "QmNet", BootstrapURI: "wss://hub"}, SpanContext: span},
		ClientToLib3hMessage{Data: FetchEntry(fetch)},
		joinSpaceFixture(),
		ClientToLib3hMessage{Data: LeaveSpace{RequestID: "1", SpaceAddress: "QmSpace", AgentID: "HcMe"}},
		ClientToLib3hMessage{Data: PublishEntry{SpaceAddress: "QmSpace", ProviderAgentID: "HcMe", Entry: entry}},
		ClientToLib3hMessage{Data: QueryEntry(query)},
		ClientToLib3hMessage{Data: SendDirectMessage(dm)},

		ClientToLib3hResponseMessage{Data: BootstrapSuccess{}},
		ClientToLib3hResponseMessage{Data: FetchEntryResult(fetchResult)},
		ClientToLib3hResponseMessage{Data: JoinSpaceResult{}, SpanContext: span},
		ClientToLib3hResponseMessage{Data: LeaveSpaceResult{}},
		ClientToLib3hResponseMessage{Data: QueryEntryResult(queryResult)},
		ClientToLib3hResponseMessage{Data: SendDirectMessageResult(dm)},

		Lib3hToClientMessage{Data: Connected{RequestID: "c", URI: "wss://hub"}},
		Lib3hToClientMessage{Data: HandleDropEntry{SpaceAddress: "QmSpace", RequestID: "d", EntryAddress: "QmEntry"}},
		Lib3hToClientMessage{Data: HandleFetchEntry{SpaceAddress: "QmSpace", EntryAddress: "QmEntry", AspectAddressList: []types.Address{"QmAspect"}}},
		Lib3hToClientMessage{Data: HandleGetAuthoringEntryList(list)},
		Lib3hToClientMessage{Data: HandleGetGossipingEntryList(list)},
		Lib3hToClientMessage{Data: HandleQueryEntry(query)},
		Lib3hToClientMessage{Data: HandleSendDirectMessage(dm)},
		Lib3hToClientMessage{Data: HandleStoreEntryAspect(store)},
		Lib3hToClientMessage{Data: DirectMessageResult(dm)},
		Lib3hToClientMessage{Data: Unbound{URI: "wss://hub"}},

		Lib3hToClientResponseMessage{Data: HandleDropEntryResult{}},
		Lib3hToClientResponseMessage{Data: HandleFetchEntryResult(fetchResult)},
		Lib3hToClientResponseMessage{Data: HandleGetAuthoringEntryListResult(entryList)},
		Lib3hToClientResponseMessage{Data: HandleGetGossipingEntryListResult(entryList)},
		Lib3hToClientResponseMessage{Data: HandleQueryEntryResult(queryResult)},
		Lib3hToClientResponseMessage{Data: HandleSendDirectMessageResult(dm)},
		Lib3hToClientResponseMessage{Data: HandleStoreEntryAspectResult{}},

		MultiSend{
			{Data: HandleStoreEntryAspect(store)},
			{Data: HandleFetchEntry(fetch), SpanContext: span},
		},
		ErrorMessage{Err: WireError{Kind: KindOther, Detail: "fake_error"}},
		ErrorMessage{Err: WireError{Kind: KindMessageWhileInLimbo}},
		Ping{},
		Pong{},
		Hello(WireVersion),
		HelloResponse{RedundantCount: 3, Version: WireVersion, Extra: strPtr("extra")},
		HelloResponse{RedundantCount: 0, Version: 1},
		Status{},
		StatusResponse{Spaces: 1, Connections: 2, JoinedConnections: 3, RedundantCount: 4, Version: WireVersion},
		Ack(4422371451693861777),
	}
}

// ============================================================================
// 编码格式测试
// ============================================================================

// TestEncode_Literals 测试与对端约定的字面编码
func TestEncode_Literals(t *testing.T) {
	tests := []struct {
		name     string
		msg      WireMessage
		expected string
	}{
		{"err", ErrorMessage{Err: WireError{Kind: KindOther, Detail: "fake_error"}}, `{"Err":{"Other":"fake_error"}}`},
		{"limbo", ErrorMessage{Err: *ErrMessageWhileInLimbo}, `{"Err":"MessageWhileInLimbo"}`},
		{"hello", Hello(1), `{"Hello":1}`},
		{"ping", Ping{}, `"Ping"`},
		{"pong", Pong{}, `"Pong"`},
		{"status", Status{}, `"Status"`},
		{"ack", Ack(7), `{"Ack":7}`},
		{"hello_response", HelloResponse{RedundantCount: 2, Version: 2}, `{"HelloResponse":{"redundant_count":2,"version":2,"extra":null}}`},
		{
			"join_space",
			joinSpaceFixture(),
			`{"ClientToLib3h":{"data":{"JoinSpace":{"request_id":"0123","space_address":"QmABCDEF","agent_id":"Hc345345"}},"span_context":null}}`,
		},
		{
			"unit_in_envelope",
			Lib3hToClientResponseMessage{Data: HandleStoreEntryAspectResult{}, SpanContext: SpanContext{9}},
			`{"Lib3hToClientResponse":{"data":"HandleStoreEntryAspectResult","span_context":[9]}}`,
		},
		{"empty_multisend", MultiSend(nil), `{"MultiSend":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(Encode(tt.msg)))
		})
	}

	t.Log("✅ 字面编码正确")
}

// TestEncode_NoHTMLEscape 测试编码不转义 HTML 字符
func TestEncode_NoHTMLEscape(t *testing.T) {
	msg := ErrorMessage{Err: WireError{Kind: KindOther, Detail: "<a&b>"}}
	assert.Equal(t, `{"Err":{"Other":"<a&b>"}}`, string(Encode(msg)))
}

// TestEncode_NilPayloadPanics 测试 nil 负载属于编程错误
func TestEncode_NilPayloadPanics(t *testing.T) {
	assert.Panics(t, func() { Encode(ClientToLib3hMessage{}) })
	assert.Panics(t, func() { Encode(nil) })
}

// ============================================================================
// 往返测试
// ============================================================================

// TestRoundTrip_AllVariants 测试所有变体的编解码往返
func TestRoundTrip_AllVariants(t *testing.T) {
	for _, msg := range allMessages() {
		msg := msg
		t.Run(MessageType(msg), func(t *testing.T) {
			data := Encode(msg)

			decoded, err := Decode(data)
			require.NoError(t, err, "data: %s", data)

			assert.Equal(t, msg, decoded)
			assert.Equal(t, CalcHash(msg), CalcHash(decoded))
			assert.Equal(t, string(data), string(Encode(decoded)))
		})
	}

	t.Log("✅ 所有变体往返一致")
}

// TestAddressMap_PreservesOrder 测试 AddressMap 解码保持键顺序
func TestAddressMap_PreservesOrder(t *testing.T) {
	var m AddressMap
	require.NoError(t, m.UnmarshalJSON([]byte(`{"Qmz":["a"],"Qma":[],"Qmm":["b","c"]}`)))

	require.Len(t, m, 3)
	assert.Equal(t, types.Address("Qmz"), m[0].EntryAddress)
	assert.Equal(t, types.Address("Qma"), m[1].EntryAddress)
	assert.Nil(t, m[1].Aspects)
	assert.Equal(t, types.Address("Qmm"), m[2].EntryAddress)

	aspects, ok := m.Get("Qmm")
	assert.True(t, ok)
	assert.Equal(t, []types.Address{"b", "c"}, aspects)

	out, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"Qmz":["a"],"Qma":[],"Qmm":["b","c"]}`, string(out))
}

// ============================================================================
// 指纹测试
// ============================================================================

// TestCalcHash_Fixtures 测试指纹与已知值一致，并在往返后保持不变
func TestCalcHash_Fixtures(t *testing.T) {
	joinSpace := joinSpaceFixture()
	assert.Equal(t, uint64(4422371451693861777), CalcHash(joinSpace))

	decoded, err := Decode(Encode(joinSpace))
	require.NoError(t, err)
	assert.Equal(t, uint64(4422371451693861777), CalcHash(decoded))

	authoring, err := Decode([]byte(authoringListFixture))
	require.NoError(t, err)
	assert.Equal(t, uint64(4395410145282420883), CalcHash(authoring))
	assert.Equal(t, authoringListFixture, string(Encode(authoring)))

	roundTrip, err := Decode(Encode(authoring))
	require.NoError(t, err)
	assert.Equal(t, authoring, roundTrip)
	assert.Equal(t, uint64(4395410145282420883), CalcHash(roundTrip))

	t.Log("✅ 指纹固定样例正确")
}

// TestCalcHash_FollowsWireOrder 测试指纹按线上键顺序计算
func TestCalcHash_FollowsWireOrder(t *testing.T) {
	published, err := Decode([]byte(authoringListAsPublished))
	require.NoError(t, err)
	assert.Equal(t, uint64(13589327773716629335), CalcHash(published))
	assert.Equal(t, authoringListAsPublished, string(Encode(published)))

	roundTrip, err := Decode(Encode(published))
	require.NoError(t, err)
	assert.Equal(t, CalcHash(published), CalcHash(roundTrip))

	reordered, err := Decode([]byte(authoringListFixture))
	require.NoError(t, err)

	entriesOf := func(msg WireMessage) AddressMap {
		data := msg.(Lib3hToClientResponseMessage).Data.(HandleGetAuthoringEntryListResult)
		return data.AddressMap
	}
	assert.ElementsMatch(t, entriesOf(published), entriesOf(reordered))
	assert.NotEqual(t, CalcHash(published), CalcHash(reordered))
}

// TestCalcHash_IgnoresSpanContext 测试追踪上下文不参与指纹
func TestCalcHash_IgnoresSpanContext(t *testing.T) {
	a := Lib3hToClientMessage{Data: Unbound{URI: "x"}}
	b := Lib3hToClientMessage{Data: Unbound{URI: "x"}, SpanContext: NewSpanContext()}
	assert.Equal(t, CalcHash(a), CalcHash(b))

	c := Lib3hToClientMessage{Data: Unbound{URI: "y"}}
	assert.NotEqual(t, CalcHash(a), CalcHash(c))
}

// TestCalcHash_ControlMessages 测试控制消息对完整编码求指纹
func TestCalcHash_ControlMessages(t *testing.T) {
	assert.Equal(t, sdbm([]byte(`"Ping"`)), CalcHash(Ping{}))
	assert.Equal(t, sdbm([]byte(`{"Hello":2}`)), CalcHash(Hello(2)))
	assert.NotEqual(t, CalcHash(Ping{}), CalcHash(Pong{}))
}

// TestSdbm 测试 sdbm 基本性质
func TestSdbm(t *testing.T) {
	assert.Equal(t, uint64(0), sdbm(nil))
	assert.Equal(t, uint64('a'), sdbm([]byte("a")))
	// 'a' + 'b'*... : h1 = 97; h2 = 98 + 97<<6 + 97<<16 - 97
	assert.Equal(t, uint64(98+97<<6+97<<16-97), sdbm([]byte("ab")))
}

// ============================================================================
// 解码错误测试
// ============================================================================

// TestDecode_Errors 测试非法输入返回 Other 错误
func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not_json", `not json`},
		{"empty", ``},
		{"unknown_variant", `{"Bogus":1}`},
		{"unknown_unit", `"Bogus"`},
		{"unit_with_payload", `{"Ping":1}`},
		{"payload_missing", `"Hello"`},
		{"bad_payload_type", `{"Hello":"two"}`},
		{"missing_data", `{"ClientToLib3h":{"span_context":null}}`},
		{"unknown_nested", `{"Lib3hToClient":{"data":{"Nope":{}},"span_context":null}}`},
		{"two_keys", `{"Ping":1,"Pong":2}`},
		{"trailing", `"Ping" "Pong"`},
		{"bad_span", `{"ClientToLib3h":{"data":{"JoinSpace":{}},"span_context":[256]}}`},
		{"missing_fields", `{"ClientToLib3h":{"data":{"JoinSpace":{}},"span_context":null}}`},
		{"partial_fields", `{"ClientToLib3h":{"data":{"JoinSpace":{"request_id":"0123","space_address":"QmABCDEF"}},"span_context":null}}`},
		{"key_case", `{"HelloResponse":{"REDUNDANT_COUNT":1,"version":2,"extra":null}}`},
		{"duplicate_tag", `{"Hello":2,"Hello":3}`},
		{"duplicate_field", `{"Connected":{"request_id":"a","request_id":"b","uri":"wss://hub"}}`},
		{"null_scalar", `{"Hello":null}`},
		{"null_string", `{"Lib3hToClient":{"data":{"Unbound":{"uri":null}},"span_context":null}}`},
		{"null_detail", `{"Err":{"Other":null}}`},
		{"nested_missing", `{"Lib3hToClient":{"data":{"HandleStoreEntryAspect":{"request_id":"r","space_address":"s","provider_agent_id":"p","entry_address":"e","entry_aspect":{"aspect_address":"a","type_hint":"content","aspect":[]}}},"span_context":null}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Decode([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, msg)

			var we *WireError
			require.True(t, errors.As(err, &we))
			assert.Equal(t, KindOther, we.Kind)
			assert.NotEmpty(t, we.Detail)
		})
	}
}

// TestDecode_OptionalFields 测试可缺省字段
func TestDecode_OptionalFields(t *testing.T) {
	msg, err := Decode([]byte(`{"ClientToLib3h":{"data":{"JoinSpace":{"request_id":"0123","space_address":"QmABCDEF","agent_id":"Hc345345"}}}}`))
	require.NoError(t, err)
	assert.Equal(t, joinSpaceFixture(), msg)

	msg, err = Decode([]byte(`{"HelloResponse":{"redundant_count":1,"version":2}}`))
	require.NoError(t, err)
	assert.Equal(t, HelloResponse{RedundantCount: 1, Version: 2}, msg)

	msg, err = Decode([]byte(`{"Lib3hToClient":{"data":{"HandleFetchEntry":{"space_address":"s","entry_address":"e","request_id":"r","provider_agent_id":"p"}},"span_context":null}}`))
	require.NoError(t, err)
	fetch := msg.(Lib3hToClientMessage).Data.(HandleFetchEntry)
	assert.Nil(t, fetch.AspectAddressList)

	msg, err = Decode([]byte(`{"Lib3hToClient":{"data":{"Unbound":{"uri":"wss://hub","extra":1}},"span_context":null}}`))
	require.NoError(t, err, "未知字段被忽略")
	assert.Equal(t, Unbound{URI: "wss://hub"}, msg.(Lib3hToClientMessage).Data)
}

// TestDecode_LossyUTF8 测试非法 UTF-8 被替换后继续解析
func TestDecode_LossyUTF8(t *testing.T) {
	data := []byte("{\"Err\":{\"Other\":\"bad\xff\"}}")

	msg, err := Decode(data)
	require.NoError(t, err)

	em, ok := msg.(ErrorMessage)
	require.True(t, ok)
	assert.Equal(t, "bad\uFFFD", em.Err.Detail)
}

// ============================================================================
// 标签测试
// ============================================================================

// TestMessageType 测试标签覆盖所有变体
func TestMessageType(t *testing.T) {
	tests := []struct {
		msg      WireMessage
		expected string
	}{
		{Ping{}, "Ping"},
		{Pong{}, "Pong"},
		{Status{}, "Status"},
		{StatusResponse{}, "StatusResponse"},
		{Hello(2), "Hello"},
		{HelloResponse{}, "HelloResponse"},
		{ErrorMessage{}, "[Error]"},
		{Ack(1), "[Ack]"},
		{joinSpaceFixture(), "[C>L]JoinSpace"},
		{ClientToLib3hMessage{Data: SendDirectMessage{}}, "[C>L]SendDirectMessage"},
		{ClientToLib3hResponseMessage{Data: BootstrapSuccess{}}, "[C<L]BootstrapSuccess"},
		{Lib3hToClientMessage{Data: HandleGetAuthoringEntryList{}}, "[L>C]HandleGetAuthoringEntryList"},
		{Lib3hToClientMessage{Data: DirectMessageResult{}}, "[L>C]SendDirectMessageResult"},
		{Lib3hToClientResponseMessage{Data: HandleStoreEntryAspectResult{}}, "[L<C]HandleStoreEntryAspectResult"},
		{ClientToLib3hMessage{}, "[C>L]UNEXPECTED_VARIANT"},
		{Lib3hToClientResponseMessage{}, "[L<C]UNEXPECTED_VARIANT"},
		{MultiSend{}, MultiSendEmpty},
		{MultiSend{{Data: HandleFetchEntry{}}, {Data: Unbound{}}}, "[L>C]MultiSend::HandleFetchEntry"},
		{MultiSend{{Data: HandleStoreEntryAspect{}}}, "[L>C]MultiSend::HandleStoreEntryAspect"},
		{MultiSend{{Data: Unbound{}}}, MultiSendUnexpected},
		{MultiSend{{}}, MultiSendUnexpected},
		{nil, "UNEXPECTED_VARIANT"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, MessageType(tt.msg))
		})
	}
}

// TestMessageType_TotalOverAllVariants 测试每个变体都有非空标签
func TestMessageType_TotalOverAllVariants(t *testing.T) {
	for _, msg := range allMessages() {
		label := MessageType(msg)
		assert.NotEmpty(t, label)
		assert.NotContains(t, label, "UNEXPECTED_VARIANT")
	}
}

// ============================================================================
// 握手测试
// ============================================================================

// TestCheckHandshake 测试握手前业务消息被识别为 limbo
func TestCheckHandshake(t *testing.T) {
	for _, msg := range allMessages() {
		err := CheckHandshake(false, msg)
		if IsPayloadBearing(msg) {
			assert.ErrorIs(t, err, ErrMessageWhileInLimbo, MessageType(msg))
		} else {
			assert.NoError(t, err, MessageType(msg))
		}
		assert.NoError(t, CheckHandshake(true, msg))
	}

	assert.True(t, IsPayloadBearing(MultiSend{}))
	assert.False(t, IsPayloadBearing(Hello(2)))
	assert.True(t, IsCompatible(WireVersion))
	assert.False(t, IsCompatible(WireVersion+1))
}

// TestWireError 测试错误类型行为
func TestWireError(t *testing.T) {
	assert.Equal(t, "wire: message while in limbo", ErrMessageWhileInLimbo.Error())

	other := NewOtherError("bad %d", 1)
	assert.Equal(t, "wire: bad 1", other.Error())
	assert.ErrorIs(t, other, NewOtherError("bad 1"))
	assert.False(t, errors.Is(other, ErrMessageWhileInLimbo))
}
