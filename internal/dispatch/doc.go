// Package dispatch 将入站的存储请求分类并派发到持有工作流
//
// 两类请求：
//
//   - HandleStoreEntry：按条目种类派发，App → hold-entry，Deletion → hold-entry-removal
//   - HandleStoreMeta：按属性派发，link / link_remove / crud-status / crud-link
//
// 每次成功分类向任务池提交一个独立任务后立即返回，不等待工作流完成。
// 工作流返回的错误在任务内记录为 "err/net/dht: ..." 并丢弃，不回传给网络层。
// 无法识别的条目种类与属性静默忽略。content_list 形状错误返回 *MalformedMetaError。
package dispatch
