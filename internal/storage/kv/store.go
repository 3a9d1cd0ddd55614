// Package kv 提供带前缀隔离的 KV 存储
//
// 键空间约定：
//
//	i/<instance>/c/   - CAS 内容
//	i/<instance>/e/   - EAV 索引
//
// 使用示例：
//
//	inst := kv.New(eng, []byte("i/app1/"))
//	cas := inst.SubStore([]byte("c/"))
//	cas.Put([]byte("QmAbc"), data) // 实际键: i/app1/c/QmAbc
package kv

import (
	"encoding/json"

	"github.com/dep2p/go-dhthold/internal/storage/engine"
	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
)

// Store 带前缀隔离的 KV 存储
//
// 所有键自动添加前缀，不同前缀的 Store 共享同一个引擎但互不可见。
type Store struct {
	engine engine.Engine
	prefix []byte
}

// New 创建 Store
func New(eng engine.Engine, prefix []byte) *Store {
	return &Store{
		engine: eng,
		prefix: append([]byte(nil), prefix...),
	}
}

func (s *Store) prefixKey(key []byte) []byte {
	prefixed := make([]byte, len(s.prefix)+len(key))
	copy(prefixed, s.prefix)
	copy(prefixed[len(s.prefix):], key)
	return prefixed
}

func (s *Store) stripPrefix(key []byte) []byte {
	if len(key) < len(s.prefix) {
		return key
	}
	return key[len(s.prefix):]
}

// ============================================================================
//                              基础操作
// ============================================================================

// Get 获取指定键的值
func (s *Store) Get(key []byte) ([]byte, error) {
	return s.engine.Get(s.prefixKey(key))
}

// Put 设置键值对
func (s *Store) Put(key, value []byte) error {
	return s.engine.Put(s.prefixKey(key), value)
}

// Delete 删除指定键
func (s *Store) Delete(key []byte) error {
	return s.engine.Delete(s.prefixKey(key))
}

// Has 检查键是否存在
func (s *Store) Has(key []byte) (bool, error) {
	return s.engine.Has(s.prefixKey(key))
}

// GetJSON 获取并反序列化 JSON 值
func (s *Store) GetJSON(key []byte, v any) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// PutJSON 序列化并存储 JSON 值
func (s *Store) PutJSON(key []byte, v any) error {
	data, err := jsonx.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(key, data)
}

// ============================================================================
//                              前缀迭代
// ============================================================================

// PrefixScan 按键序扫描 subPrefix 下的所有键值对
//
// 回调返回 false 时停止。回调收到的 key 已去除 Store 自身的前缀。
func (s *Store) PrefixScan(subPrefix []byte, fn func(key, value []byte) bool) error {
	iter := s.engine.NewPrefixIterator(s.prefixKey(subPrefix))
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if !fn(s.stripPrefix(iter.Key()), iter.Value()) {
			break
		}
	}
	return iter.Error()
}

// Keys 返回 subPrefix 下的所有键
func (s *Store) Keys(subPrefix []byte) ([][]byte, error) {
	var keys [][]byte
	err := s.PrefixScan(subPrefix, func(key, _ []byte) bool {
		keys = append(keys, key)
		return true
	})
	return keys, err
}

// Count 统计 subPrefix 下的键数量
func (s *Store) Count(subPrefix []byte) (int64, error) {
	var count int64
	err := s.PrefixScan(subPrefix, func(_, _ []byte) bool {
		count++
		return true
	})
	return count, err
}

// DeletePrefix 删除 subPrefix 下的所有键
func (s *Store) DeletePrefix(subPrefix []byte) error {
	keys, err := s.Keys(subPrefix)
	if err != nil {
		return err
	}

	batch := s.NewBatch()
	for _, key := range keys {
		batch.Delete(key)
	}
	return batch.Write()
}

// ============================================================================
//                              批量操作
// ============================================================================

// Batch 带前缀的批量操作
type Batch struct {
	store *Store
	batch engine.Batch
}

// NewBatch 创建批量操作
func (s *Store) NewBatch() *Batch {
	return &Batch{
		store: s,
		batch: s.engine.NewBatch(),
	}
}

// Put 添加写入操作
func (b *Batch) Put(key, value []byte) {
	b.batch.Put(b.store.prefixKey(key), value)
}

// Delete 添加删除操作
func (b *Batch) Delete(key []byte) {
	b.batch.Delete(b.store.prefixKey(key))
}

// PutJSON 添加 JSON 写入操作
func (b *Batch) PutJSON(key []byte, v any) error {
	data, err := jsonx.Marshal(v)
	if err != nil {
		return err
	}
	b.Put(key, data)
	return nil
}

// Write 原子性执行全部操作
func (b *Batch) Write() error {
	return b.batch.Write()
}

// Reset 丢弃全部操作
func (b *Batch) Reset() {
	b.batch.Reset()
}

// Size 操作数量
func (b *Batch) Size() int {
	return b.batch.Size()
}

// ============================================================================
//                              辅助方法
// ============================================================================

// Prefix 返回当前 Store 的前缀
func (s *Store) Prefix() []byte {
	return s.prefix
}

// SubStore 在当前前缀后追加子前缀，得到新的 Store
func (s *Store) SubStore(subPrefix []byte) *Store {
	return New(s.engine, s.prefixKey(subPrefix))
}
