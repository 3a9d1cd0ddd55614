package types

import "strings"

// Attribute 非条目 DHT 状态的元数据种类
type Attribute string

// 分发器识别的元数据种类；其他取值一律忽略
const (
	AttributeLink       Attribute = "link"
	AttributeLinkRemove Attribute = "link_remove"
	AttributeCrudStatus Attribute = "crud-status"
	AttributeCrudLink   Attribute = "crud-link"
)

// String 返回属性字符串
func (a Attribute) String() string {
	return string(a)
}

// LinkTagAttribute 链接在 EAV 索引中的属性名：link__{type}__{tag}
func LinkTagAttribute(linkType, tag string) Attribute {
	return Attribute("link__" + linkType + "__" + tag)
}

// RemovedLinkAttribute 被移除链接在 EAV 索引中的属性名：removed_link__{type}__{tag}
func RemovedLinkAttribute(linkType, tag string) Attribute {
	return Attribute("removed_link__" + linkType + "__" + tag)
}

// IsLinkAttribute 是否为链接索引属性
func (a Attribute) IsLinkAttribute() bool {
	return strings.HasPrefix(string(a), "link__")
}
