package badger

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-dhthold/internal/storage/engine"
)

// testEngine 在临时目录中打开引擎，测试结束后自动关闭
func testEngine(t *testing.T) *Engine {
	t.Helper()

	cfg := engine.DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	cfg.GCInterval = 0
	e, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Start())

	t.Cleanup(func() {
		assert.NoError(t, e.Close())
	})
	return e
}

func TestEngine_PutGetDelete(t *testing.T) {
	e := testEngine(t)

	require.NoError(t, e.Put([]byte("k"), []byte("v")))

	got, err := e.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	ok, err := e.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, e.Delete([]byte("k")))
	_, err = e.Get([]byte("k"))
	assert.ErrorIs(t, err, engine.ErrNotFound)

	ok, err = e.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, e.Delete([]byte("never-existed")))
}

func TestEngine_EmptyKey(t *testing.T) {
	e := testEngine(t)

	_, err := e.Get(nil)
	assert.ErrorIs(t, err, engine.ErrEmptyKey)
	assert.ErrorIs(t, e.Put(nil, []byte("v")), engine.ErrEmptyKey)
	assert.ErrorIs(t, e.Delete([]byte{}), engine.ErrEmptyKey)
}

func TestEngine_Batch(t *testing.T) {
	e := testEngine(t)
	require.NoError(t, e.Put([]byte("old"), []byte("x")))

	b := e.NewBatch()
	for i := 0; i < 10; i++ {
		b.Put([]byte(fmt.Sprintf("b/%02d", i)), []byte{byte(i)})
	}
	b.Delete([]byte("old"))
	assert.Equal(t, 11, b.Size())

	require.NoError(t, b.Write())
	assert.Equal(t, 0, b.Size())

	got, err := e.Get([]byte("b/07"))
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, got)

	_, err = e.Get([]byte("old"))
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

func TestEngine_BatchEmptyKeyWritesNothing(t *testing.T) {
	e := testEngine(t)

	b := e.NewBatch()
	b.Put([]byte("a"), []byte("1"))
	b.Put(nil, []byte("2"))

	assert.ErrorIs(t, b.Write(), engine.ErrEmptyKey)
	ok, err := e.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngine_BatchReset(t *testing.T) {
	e := testEngine(t)

	b := e.NewBatch()
	b.Put([]byte("a"), []byte("1"))
	b.Reset()
	assert.Equal(t, 0, b.Size())
	require.NoError(t, b.Write())

	ok, err := e.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngine_PrefixIterator(t *testing.T) {
	e := testEngine(t)

	for _, k := range []string{"a/1", "a/2", "a/3", "b/1", "ab"} {
		require.NoError(t, e.Put([]byte(k), []byte("v-"+k)))
	}

	iter := e.NewPrefixIterator([]byte("a/"))
	defer iter.Close()

	var keys []string
	for iter.First(); iter.Valid(); iter.Next() {
		keys = append(keys, string(iter.Key()))
		assert.Equal(t, "v-"+string(iter.Key()), string(iter.Value()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"a/1", "a/2", "a/3"}, keys)

	iter.Close()
	assert.False(t, iter.Valid())
}

func TestEngine_Stats(t *testing.T) {
	e := testEngine(t)

	require.NoError(t, e.Put([]byte("a"), []byte("1")))
	require.NoError(t, e.Put([]byte("b"), []byte("2")))
	_, _ = e.Get([]byte("a"))

	stats := e.Stats()
	assert.Equal(t, int64(2), stats.KeyCount)
	assert.Equal(t, int64(2), stats.NumWrites)
	assert.Equal(t, int64(1), stats.NumReads)
}

func TestEngine_Closed(t *testing.T) {
	cfg := engine.DefaultConfig(filepath.Join(t.TempDir(), "closed.db"))
	e, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	_, err = e.Get([]byte("k"))
	assert.ErrorIs(t, err, engine.ErrClosed)
	assert.ErrorIs(t, e.Put([]byte("k"), nil), engine.ErrClosed)
	assert.ErrorIs(t, e.Start(), engine.ErrClosed)
}

func TestEngine_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	e, err := New(engine.DefaultConfig(path))
	require.NoError(t, err)
	require.NoError(t, e.Put([]byte("k"), []byte("v")))
	require.NoError(t, e.Close())

	e, err = New(engine.DefaultConfig(path))
	require.NoError(t, err)
	defer e.Close()

	got, err := e.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, engine.DefaultConfig("").Validate(), engine.ErrInvalidConfig)

	cfg := engine.DefaultConfig("/tmp/x")
	cfg.GCDiscardRatio = 1
	assert.ErrorIs(t, cfg.Validate(), engine.ErrInvalidConfig)

	_, err := New(nil)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}
