// Package eav 提供实体-属性-值索引
//
// 每行记录 (entity, attribute, value, index)。index 为单调递增的写入序号，
// 同一实体同一属性的多行按 index 排序，最新一行即为当前值。
//
// 键布局：
//
//	<entity> 0x00 <attribute> 0x00 <index:20 位十进制> 0x00 <value>
package eav

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dep2p/go-dhthold/internal/storage/kv"
	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
	"github.com/dep2p/go-dhthold/pkg/types"
)

const sep = 0x00

var (
	// ErrEmptyEntity 实体为空
	ErrEmptyEntity = errors.New("eav: empty entity")

	// ErrEmptyAttribute 属性为空
	ErrEmptyAttribute = errors.New("eav: empty attribute")

	// ErrCorruptRow 行内容无法解码
	ErrCorruptRow = errors.New("eav: corrupt row")
)

// Row 一行索引
type Row struct {
	Entity    types.Address   `json:"entity"`
	Attribute types.Attribute `json:"attribute"`
	Value     string          `json:"value"`
	Index     int64           `json:"index"`
}

// Query 查询条件，零值字段不参与过滤
type Query struct {
	Entity types.Address

	// Attribute 精确匹配
	Attribute types.Attribute

	// AttributePrefix 前缀匹配，与 Attribute 同时设置时以 Attribute 为准
	AttributePrefix string

	Value string
}

func (q Query) match(r Row) bool {
	if q.Entity != "" && r.Entity != q.Entity {
		return false
	}
	switch {
	case q.Attribute != "":
		if r.Attribute != q.Attribute {
			return false
		}
	case q.AttributePrefix != "":
		if !bytes.HasPrefix([]byte(r.Attribute), []byte(q.AttributePrefix)) {
			return false
		}
	}
	return q.Value == "" || r.Value == q.Value
}

// Store EAV 索引
type Store struct {
	kv *kv.Store

	mu        sync.Mutex
	lastIndex int64
	now       func() time.Time
}

// New 在给定命名空间上创建 Store
func New(store *kv.Store) *Store {
	return &Store{kv: store, now: time.Now}
}

// nextIndex 返回严格递增的写入序号（纳秒时间戳，冲突时顺延）
func (s *Store) nextIndex() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.now().UnixNano()
	if idx <= s.lastIndex {
		idx = s.lastIndex + 1
	}
	s.lastIndex = idx
	return idx
}

func encodeKey(r Row) []byte {
	var buf bytes.Buffer
	buf.WriteString(string(r.Entity))
	buf.WriteByte(sep)
	buf.WriteString(string(r.Attribute))
	buf.WriteByte(sep)
	fmt.Fprintf(&buf, "%020d", r.Index)
	buf.WriteByte(sep)
	buf.WriteString(r.Value)
	return buf.Bytes()
}

func entityPrefix(entity types.Address) []byte {
	return append([]byte(entity), sep)
}

func attributePrefix(entity types.Address, attr types.Attribute) []byte {
	p := entityPrefix(entity)
	p = append(p, attr...)
	return append(p, sep)
}

// Add 追加一行，Index 为 0 时自动分配；返回写入的行
func (s *Store) Add(r Row) (Row, error) {
	if r.Entity == "" {
		return Row{}, ErrEmptyEntity
	}
	if r.Attribute == "" {
		return Row{}, ErrEmptyAttribute
	}
	if r.Index == 0 {
		r.Index = s.nextIndex()
	}
	if err := s.kv.PutJSON(encodeKey(r), r); err != nil {
		return Row{}, fmt.Errorf("eav: add %s/%s: %w", r.Entity, r.Attribute, err)
	}
	return r, nil
}

// Fetch 返回满足条件的行，按 (entity, attribute, index) 排序
func (s *Store) Fetch(q Query) ([]Row, error) {
	var prefix []byte
	switch {
	case q.Entity != "" && q.Attribute != "":
		prefix = attributePrefix(q.Entity, q.Attribute)
	case q.Entity != "":
		prefix = append(entityPrefix(q.Entity), q.AttributePrefix...)
	}

	var (
		rows    []Row
		scanErr error
	)
	err := s.kv.PrefixScan(prefix, func(_, value []byte) bool {
		var r Row
		if err := jsonx.Unmarshal(value, &r); err != nil {
			scanErr = fmt.Errorf("%w: %v", ErrCorruptRow, err)
			return false
		}
		if q.match(r) {
			rows = append(rows, r)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if scanErr != nil {
		return nil, scanErr
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Entity != b.Entity {
			return a.Entity < b.Entity
		}
		if a.Attribute != b.Attribute {
			return a.Attribute < b.Attribute
		}
		return a.Index < b.Index
	})
	return rows, nil
}

// Latest 返回实体某属性的最新一行
func (s *Store) Latest(entity types.Address, attr types.Attribute) (Row, bool, error) {
	rows, err := s.Fetch(Query{Entity: entity, Attribute: attr})
	if err != nil || len(rows) == 0 {
		return Row{}, false, err
	}
	return rows[len(rows)-1], true, nil
}

// Remove 删除实体某属性的全部行，返回删除的行数
func (s *Store) Remove(entity types.Address, attr types.Attribute) (int, error) {
	if entity == "" {
		return 0, ErrEmptyEntity
	}
	if attr == "" {
		return 0, ErrEmptyAttribute
	}
	prefix := attributePrefix(entity, attr)
	n, err := s.kv.Count(prefix)
	if err != nil {
		return 0, err
	}
	if err := s.kv.DeletePrefix(prefix); err != nil {
		return 0, err
	}
	return int(n), nil
}

// Count 行数量
func (s *Store) Count() (int64, error) {
	return s.kv.Count(nil)
}
