// Package types 定义 DHT 存储节点的公共数据结构
//
// 这是整个系统的最底层包，只依赖 pkg/lib 下的工具包。
// 所有类型都是纯值类型，用于在传输层、分发器与工作流之间传递数据。
//
// # 文件组织
//
//   - address.go   - Address 内容地址
//   - entry.go     - Entry 条目（封闭变体集合）
//   - header.go    - ChainHeader / EntryWithHeader
//   - crud.go      - CrudStatus 生命周期状态
//   - attribute.go - Attribute 元数据类型
//   - meta.go      - DhtMetaData 元数据存储指令
//   - errors.go    - 公共错误定义
//
// # 编码约定
//
// 所有类型的 JSON 编码与网络对端保持一致：
// 联合类型使用外部标签（{"App":[...]}），元组使用 JSON 数组。
package types
