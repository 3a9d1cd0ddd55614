// Package transport 实现与 Hub 之间的 websocket 会话
//
// 会话流程：
//
//  1. 建立 websocket 连接，发送 Hello(WireVersion)
//  2. 收到版本一致的 HelloResponse 后进入已握手状态；
//     此前收到的业务消息以 Err(MessageWhileInLimbo) 回复
//  3. 已握手后，每条 Hub 推送（单条或 MultiSend）按指纹回复 Ack，
//     重复指纹只回 Ack 不再处理
//  4. HandleStoreEntryAspect 按 type_hint 解出条目或元数据交给 Handler，
//     成功后回复 HandleStoreEntryAspectResult
//
// 后台定时发送 Ping，超过 KeepaliveTimeout 未收到任何消息则关闭会话。
package transport
