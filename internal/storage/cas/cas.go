// Package cas 提供内容寻址存储
//
// 每条记录以内容地址为键，值为 {"type":...,"content":...}。
// 地址由 types.AddressOf 对内容字节计算，相同内容总是落在同一个键上，
// 重复写入是幂等的。
package cas

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dep2p/go-dhthold/internal/storage/engine"
	"github.com/dep2p/go-dhthold/internal/storage/kv"
	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
	"github.com/dep2p/go-dhthold/pkg/types"
)

// HeaderType 链头记录的类型名
const HeaderType = "ChainHeader"

// ErrNotFound 地址不存在
var ErrNotFound = errors.New("cas: address not found")

// Record 一条内容记录
type Record struct {
	// Type 内容类型：条目种类名或 HeaderType
	Type string `json:"type"`

	// Content 原始 JSON 内容
	Content json.RawMessage `json:"content"`
}

// Store 内容寻址存储
type Store struct {
	kv *kv.Store
}

// New 在给定命名空间上创建 Store
func New(store *kv.Store) *Store {
	return &Store{kv: store}
}

// Add 写入内容并返回其地址
func (s *Store) Add(typ string, content []byte) (types.Address, error) {
	addr := types.AddressOf(content)
	if err := s.kv.PutJSON([]byte(addr), Record{Type: typ, Content: content}); err != nil {
		return "", fmt.Errorf("cas: put %s: %w", addr, err)
	}
	return addr, nil
}

// AddEntry 写入条目
func (s *Store) AddEntry(e types.Entry) (types.Address, error) {
	data, err := types.MarshalEntry(e)
	if err != nil {
		return "", err
	}
	return s.Add(e.Kind().String(), data)
}

// AddHeader 写入链头
func (s *Store) AddHeader(h types.ChainHeader) (types.Address, error) {
	data, err := jsonx.Marshal(h)
	if err != nil {
		return "", err
	}
	return s.Add(HeaderType, data)
}

// Get 读取记录
func (s *Store) Get(addr types.Address) (Record, error) {
	if err := addr.Validate(); err != nil {
		return Record{}, err
	}
	var rec Record
	if err := s.kv.GetJSON([]byte(addr), &rec); err != nil {
		if engine.IsNotFound(err) {
			return Record{}, fmt.Errorf("%w: %s", ErrNotFound, addr)
		}
		return Record{}, err
	}
	return rec, nil
}

// GetEntry 读取并解码条目
func (s *Store) GetEntry(addr types.Address) (types.Entry, error) {
	rec, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	if rec.Type == HeaderType {
		return nil, fmt.Errorf("cas: %s holds a header, not an entry", addr)
	}
	return types.UnmarshalEntry(rec.Content)
}

// Contains 地址是否存在
func (s *Store) Contains(addr types.Address) (bool, error) {
	if err := addr.Validate(); err != nil {
		return false, err
	}
	return s.kv.Has([]byte(addr))
}

// Addresses 返回全部地址（按键序）
func (s *Store) Addresses() ([]types.Address, error) {
	keys, err := s.kv.Keys(nil)
	if err != nil {
		return nil, err
	}
	out := make([]types.Address, len(keys))
	for i, k := range keys {
		out[i] = types.Address(k)
	}
	return out, nil
}

// Count 记录数量
func (s *Store) Count() (int64, error) {
	return s.kv.Count(nil)
}
