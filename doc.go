// Package dhthold 是一个 DHT 持有节点
//
// dhthold 通过 websocket 连接 Hub，接收 Hub 推送的存储请求，
// 并把请求派发为后台工作流，写入节点本地的内容寻址存储（CAS）
// 与实体-属性-值索引（EAV）。
//
// # 组成
//
//   - pkg/wire: 节点与 Hub 之间的协议消息及其 JSON 编码
//   - pkg/types: 条目、链头与 DHT 元数据
//   - internal/dispatch: 存储请求分发器，每个请求一个后台工作流
//   - internal/workflow: 持有工作流，基于 CAS 与 EAV
//   - internal/transport: Hub 会话（握手、保活、去重、确认）
//   - internal/conductor: 多实例管理与调试接口
//   - internal/introspect: 本地调试 HTTP 服务
//
// # 快速开始
//
//	cfg, err := config.Load("dhthold.toml")
//	if err != nil {
//	    return err
//	}
//	a, err := app.RunApp(ctx, app.NewBootstrap(cfg))
//	if err != nil {
//	    return err
//	}
//	return a.Wait()
//
// 命令行入口见 cmd/dhthold。
package dhthold
