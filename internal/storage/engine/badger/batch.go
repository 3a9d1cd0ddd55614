package badger

import (
	"github.com/dgraph-io/badger/v4"

	"github.com/dep2p/go-dhthold/internal/storage/engine"
)

// WriteBatch BadgerDB 批量写入
type WriteBatch struct {
	db    *Engine
	batch *badger.WriteBatch
	count int
	err   error
}

// Put 添加写入操作
func (b *WriteBatch) Put(key, value []byte) {
	if len(key) == 0 {
		b.recordErr(engine.ErrEmptyKey)
		return
	}
	b.recordErr(b.batch.Set(key, value))
	b.count++
}

// Delete 添加删除操作
func (b *WriteBatch) Delete(key []byte) {
	if len(key) == 0 {
		b.recordErr(engine.ErrEmptyKey)
		return
	}
	b.recordErr(b.batch.Delete(key))
	b.count++
}

func (b *WriteBatch) recordErr(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}

// Write 原子性写入全部操作
//
// 暂存阶段的错误（如空键）在此返回，此时不写入任何内容。
func (b *WriteBatch) Write() error {
	if b.db.closed.Load() {
		return engine.ErrClosed
	}
	if b.db.config.ReadOnly {
		return engine.ErrReadOnly
	}
	if b.err != nil {
		err := b.err
		b.Reset()
		return convertError(err)
	}

	if err := b.batch.Flush(); err != nil {
		return convertError(err)
	}
	b.db.stats.numWrites.Add(int64(b.count))

	b.batch = b.db.db.NewWriteBatch()
	b.count = 0
	return nil
}

// Reset 丢弃全部待写入操作
func (b *WriteBatch) Reset() {
	b.batch.Cancel()
	b.batch = b.db.db.NewWriteBatch()
	b.count = 0
	b.err = nil
}

// Size 待写入操作数量
func (b *WriteBatch) Size() int {
	return b.count
}

var _ engine.Batch = (*WriteBatch)(nil)
