package taskpool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_SubmitReturnsBeforeTaskCompletes(t *testing.T) {
	p := New(Config{})
	release := make(chan struct{})
	done := make(chan struct{})

	err := p.Submit(context.Background(), "slow", func(context.Context) {
		<-release
		close(done)
	})
	require.NoError(t, err)

	select {
	case <-done:
		t.Fatal("Submit 不应等待任务完成")
	default:
	}
	assert.Equal(t, int64(1), p.InFlight())

	close(release)
	require.NoError(t, p.Close(context.Background()))
	<-done
	assert.Equal(t, int64(0), p.InFlight())

	t.Log("✅ Submit 立即返回")
}

func TestPool_UnboundedAcceptsMany(t *testing.T) {
	p := New(Config{MaxInFlight: 0})
	release := make(chan struct{})
	var ran atomic.Int32

	for i := 0; i < 100; i++ {
		require.NoError(t, p.Submit(context.Background(), "t", func(context.Context) {
			<-release
			ran.Add(1)
		}))
	}
	close(release)
	require.NoError(t, p.Close(context.Background()))
	assert.Equal(t, int32(100), ran.Load())
}

func TestPool_SaturatedRejects(t *testing.T) {
	p := New(Config{MaxInFlight: 2})
	release := make(chan struct{})
	block := func(context.Context) { <-release }

	require.NoError(t, p.Submit(context.Background(), "a", block))
	require.NoError(t, p.Submit(context.Background(), "b", block))
	assert.ErrorIs(t, p.Submit(context.Background(), "c", block), ErrSaturated)

	close(release)
	require.NoError(t, p.Close(context.Background()))

	t.Log("✅ 达到上限后拒绝新任务")
}

func TestPool_SlotReleasedAfterCompletion(t *testing.T) {
	p := New(Config{MaxInFlight: 1})
	done := make(chan struct{})

	require.NoError(t, p.Submit(context.Background(), "first", func(context.Context) { close(done) }))
	<-done

	require.Eventually(t, func() bool {
		return p.Submit(context.Background(), "second", func(context.Context) {}) == nil
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, p.Close(context.Background()))
}

func TestPool_PanicIsContained(t *testing.T) {
	got := make(chan *PanicError, 1)
	p := New(Config{}, WithPanicHandler(func(err *PanicError) { got <- err }))

	require.NoError(t, p.Submit(context.Background(), "boom", func(context.Context) {
		panic("kaboom")
	}))

	select {
	case err := <-got:
		assert.Equal(t, "boom", err.Task)
		assert.Equal(t, "kaboom", err.Value)
		assert.Contains(t, err.Error(), "kaboom")
	case <-time.After(time.Second):
		t.Fatal("panic 回调未触发")
	}
	require.NoError(t, p.Close(context.Background()))
}

func TestPool_ClosedRejects(t *testing.T) {
	p := New(Config{})
	require.NoError(t, p.Close(context.Background()))

	err := p.Submit(context.Background(), "late", func(context.Context) {})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestPool_CloseHonorsContext(t *testing.T) {
	p := New(Config{})
	release := make(chan struct{})
	defer close(release)

	require.NoError(t, p.Submit(context.Background(), "stuck", func(context.Context) { <-release }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Close(ctx), context.DeadlineExceeded)
}

func TestPool_PassesContext(t *testing.T) {
	type key struct{}
	p := New(Config{})
	got := make(chan any, 1)

	ctx := context.WithValue(context.Background(), key{}, "v")
	require.NoError(t, p.Submit(ctx, "ctx", func(ctx context.Context) { got <- ctx.Value(key{}) }))
	assert.Equal(t, "v", <-got)
	require.NoError(t, p.Close(context.Background()))
}
