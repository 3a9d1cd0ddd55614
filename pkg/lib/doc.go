// Package lib 包含基础设施工具库
//
// 本目录包含与业务组件无关的通用工具库：
//
//   - log: 日志封装
//   - jsonx: 外部标签变体的 JSON 编解码辅助
//
// # 与 pkg/ 其他目录的关系
//
// pkg/ 目录包含三类内容：
//
//   - types/: 条目、链头与 DHT 元数据（领域核心）
//   - wire/: 节点与 Hub 之间的协议消息
//   - lib/: 基础设施工具库（本目录）
//
// # 使用示例
//
//	import (
//	    "github.com/dep2p/go-dhthold/pkg/lib/jsonx"
//	    "github.com/dep2p/go-dhthold/pkg/lib/log"
//	)
package lib
