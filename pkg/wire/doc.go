// Package wire 定义节点与 Hub 之间交换的协议信封
//
// WireMessage 是一个封闭的变体集合：
//
//	客户端请求/响应      ClientToLib3hMessage / ClientToLib3hResponseMessage
//	Hub 推送/响应        Lib3hToClientMessage / Lib3hToClientResponseMessage
//	批量推送            MultiSend
//	连接控制            Ping / Pong / Hello / HelloResponse / Status / StatusResponse
//	投递确认            Ack
//	显式错误            ErrorMessage
//
// 四个带负载的族都携带一个不透明的 SpanContext，由发送方附加，
// 本包只负责透传。
//
// # 编码
//
// Encode/Decode 使用外部标签 JSON（"Ping"、{"Hello":2}），
// 结构体字段按声明顺序输出，EntryListData.AddressMap 保持插入顺序，
// 因此同一逻辑值总是得到同一字节序列。
//
// # 指纹
//
// CalcHash 是非密码学的 64 位指纹，用于去重和 Ack 关联，
// 与决定条目身份的内容地址（types.AddressOf）无关。
package wire
