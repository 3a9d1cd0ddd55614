package types

import (
	"encoding/json"
	"fmt"
)

// CrudStatus 叠加在不可变条目上的生命周期状态
type CrudStatus uint8

const (
	// CrudLive 有效
	CrudLive CrudStatus = 1 << iota
	// CrudRejected 校验未通过
	CrudRejected
	// CrudDeleted 已删除
	CrudDeleted
	// CrudModified 已被更新
	CrudModified
	// CrudLocked 已锁定
	CrudLocked
)

var crudStatusNames = map[CrudStatus]string{
	CrudLive:     "Live",
	CrudRejected: "Rejected",
	CrudDeleted:  "Deleted",
	CrudModified: "Modified",
	CrudLocked:   "Locked",
}

// String 返回状态名
func (s CrudStatus) String() string {
	if name, ok := crudStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("CrudStatus(%d)", uint8(s))
}

// ParseCrudStatus 从名称解析状态
func ParseCrudStatus(name string) (CrudStatus, error) {
	for status, n := range crudStatusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCrudStatus, name)
}

// MarshalJSON 编码为状态名字符串
func (s CrudStatus) MarshalJSON() ([]byte, error) {
	name, ok := crudStatusNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCrudStatus, uint8(s))
	}
	return json.Marshal(name)
}

// UnmarshalJSON 从状态名字符串解码
func (s *CrudStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	status, err := ParseCrudStatus(name)
	if err != nil {
		return err
	}
	*s = status
	return nil
}
