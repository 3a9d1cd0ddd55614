package types

import (
	"github.com/multiformats/go-multihash"
)

// Address 内容地址
//
// 条目或链接目标的不透明标识，值相等即地址相等。
// 由内容计算得到的地址为 sha2-256 multihash 的 base58 编码（"Qm..."）。
type Address string

// String 返回地址字符串
func (a Address) String() string {
	return string(a)
}

// IsEmpty 检查地址是否为空
func (a Address) IsEmpty() bool {
	return a == ""
}

// Validate 校验地址非空
func (a Address) Validate() error {
	if a.IsEmpty() {
		return ErrEmptyAddress
	}
	return nil
}

// AddressOf 计算内容地址
//
// 与消息指纹（wire.CalcHash）无关：这里使用密码学哈希，
// 结果决定条目身份。
func AddressOf(content []byte) Address {
	mh, err := multihash.Sum(content, multihash.SHA2_256, -1)
	if err != nil {
		// SHA2_256 为内置算法，Sum 不会失败
		panic(err)
	}
	return Address(mh.B58String())
}
