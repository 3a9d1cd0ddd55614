package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-dhthold/internal/taskpool"
	"github.com/dep2p/go-dhthold/pkg/types"
)

// ============================================================================
//                              测试替身
// ============================================================================

type call struct {
	workflow string
	ewh      types.EntryWithHeader
	addr     types.Address
	status   types.CrudStatus
	link     *types.Address
}

// stubWorkflows 记录调用；block 非 nil 时每个调用等待其关闭
type stubWorkflows struct {
	mu    sync.Mutex
	calls []call
	err   error
	block chan struct{}
	panic bool
}

func (s *stubWorkflows) record(c call) error {
	if s.block != nil {
		<-s.block
	}
	if s.panic {
		panic("workflow exploded")
	}
	s.mu.Lock()
	s.calls = append(s.calls, c)
	s.mu.Unlock()
	return s.err
}

func (s *stubWorkflows) Calls() []call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]call(nil), s.calls...)
}

func (s *stubWorkflows) HoldEntry(_ context.Context, ewh types.EntryWithHeader) error {
	return s.record(call{workflow: WorkflowHoldEntry, ewh: ewh})
}

func (s *stubWorkflows) HoldEntryRemoval(_ context.Context, ewh types.EntryWithHeader) error {
	return s.record(call{workflow: WorkflowHoldEntryRemoval, ewh: ewh})
}

func (s *stubWorkflows) HoldLink(_ context.Context, ewh types.EntryWithHeader) error {
	return s.record(call{workflow: WorkflowHoldLink, ewh: ewh})
}

func (s *stubWorkflows) RemoveLink(_ context.Context, ewh types.EntryWithHeader) error {
	return s.record(call{workflow: WorkflowRemoveLink, ewh: ewh})
}

func (s *stubWorkflows) CrudStatus(_ context.Context, addr types.Address, status types.CrudStatus) error {
	return s.record(call{workflow: WorkflowCrudStatus, addr: addr, status: status})
}

func (s *stubWorkflows) CrudLink(_ context.Context, addr types.Address, link *types.Address) error {
	return s.record(call{workflow: WorkflowCrudLink, addr: addr, link: link})
}

type recLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recLogger) Log(msg string) {
	l.mu.Lock()
	l.msgs = append(l.msgs, msg)
	l.mu.Unlock()
}

func (l *recLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.msgs...)
}

type fixture struct {
	wf   *stubWorkflows
	log  *recLogger
	pool *taskpool.Pool
	d    *Dispatcher
}

func newFixture(t *testing.T, cfg taskpool.Config) *fixture {
	t.Helper()
	f := &fixture{wf: &stubWorkflows{}, log: &recLogger{}, pool: taskpool.New(cfg)}
	d, err := New(f.wf, f.log, f.pool, WithInstance("test"))
	require.NoError(t, err)
	f.d = d
	return f
}

// drain 等待所有已提交任务结束
func (f *fixture) drain(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.pool.Close(ctx))
}

func appEntry() types.EntryWithHeader {
	return types.EntryWithHeader{
		Entry:  &types.AppEntry{Type: "post", Value: "hello"},
		Header: types.ChainHeader{EntryType: "post", Timestamp: "2019-01-01T00:00:00+00:00"},
	}
}

func linkEntry() types.EntryWithHeader {
	return types.EntryWithHeader{
		Entry: &types.LinkAddEntry{LinkData: types.LinkData{
			Link: types.Link{Base: "QmBase", Target: "QmTarget", LinkType: "follows", Tag: "t"},
		}},
		Header: types.ChainHeader{EntryType: "%link"},
	}
}

func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

// ============================================================================
//                              条目请求
// ============================================================================

func TestHandleStoreEntry_Routes(t *testing.T) {
	tests := []struct {
		name     string
		entry    types.Entry
		workflow string
	}{
		{"app", &types.AppEntry{Type: "post", Value: "v"}, WorkflowHoldEntry},
		{"deletion", &types.DeletionEntry{DeletedEntryAddress: "QmGone"}, WorkflowHoldEntryRemoval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, taskpool.Config{})
			ewh := types.EntryWithHeader{Entry: tt.entry}

			require.NoError(t, f.d.HandleStoreEntry(context.Background(), ewh))
			f.drain(t)

			calls := f.wf.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.workflow, calls[0].workflow)
			assert.Equal(t, ewh, calls[0].ewh)
			assert.Empty(t, f.log.Messages())
		})
	}
}

func TestHandleStoreEntry_IgnoresOtherKinds(t *testing.T) {
	for _, entry := range []types.Entry{
		&types.LinkAddEntry{},
		&types.LinkRemoveEntry{},
		&types.AgentIDEntry{Nick: "bob"},
		nil,
	} {
		f := newFixture(t, taskpool.Config{})
		require.NoError(t, f.d.HandleStoreEntry(context.Background(), types.EntryWithHeader{Entry: entry}))
		f.drain(t)

		assert.Empty(t, f.wf.Calls())
		assert.Empty(t, f.log.Messages())
	}
	t.Log("✅ 非 App/Deletion 条目不派发、不记录")
}

func TestHandleStoreEntry_ReturnsBeforeCompletion(t *testing.T) {
	f := newFixture(t, taskpool.Config{})
	f.wf.block = make(chan struct{})

	done := make(chan error, 1)
	go func() { done <- f.d.HandleStoreEntry(context.Background(), appEntry()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("HandleStoreEntry 等待了工作流完成")
	}
	assert.Empty(t, f.wf.Calls())
	assert.Equal(t, int64(1), f.pool.InFlight())

	close(f.wf.block)
	f.drain(t)
	assert.Len(t, f.wf.Calls(), 1)
}

func TestHandleStoreEntry_CancelledRequestStillRuns(t *testing.T) {
	f := newFixture(t, taskpool.Config{})
	f.wf.block = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, f.d.HandleStoreEntry(ctx, appEntry()))
	cancel()
	close(f.wf.block)
	f.drain(t)

	assert.Len(t, f.wf.Calls(), 1)
}

// ============================================================================
//                              元数据请求
// ============================================================================

func TestHandleStoreMeta_Routes(t *testing.T) {
	link := linkEntry()
	target := types.Address("QmReplacement")

	tests := []struct {
		name     string
		meta     types.DhtMetaData
		workflow string
		logLine  string
		check    func(t *testing.T, c call)
	}{
		{
			name:     "link",
			meta:     types.DhtMetaData{EntryAddress: "QmBase", Attribute: "link", ContentList: []json.RawMessage{rawJSON(t, link)}},
			workflow: WorkflowHoldLink,
			logLine:  "debug/net/handle: HandleStoreMeta: got LINK. processing...",
			check: func(t *testing.T, c call) {
				assert.Equal(t, link, c.ewh)
			},
		},
		{
			name:     "link removal",
			meta:     types.DhtMetaData{EntryAddress: "QmBase", Attribute: "link_remove", ContentList: []json.RawMessage{rawJSON(t, link)}},
			workflow: WorkflowRemoveLink,
			logLine:  "debug/net/handle: HandleStoreMeta: got LINK REMOVAL. processing...",
			check: func(t *testing.T, c call) {
				assert.Equal(t, link, c.ewh)
			},
		},
		{
			name: "crud status",
			meta: types.DhtMetaData{EntryAddress: "QmE", Attribute: "crud-status", ContentList: []json.RawMessage{
				json.RawMessage(`"Deleted"`), json.RawMessage(`"Live"`),
			}},
			workflow: WorkflowCrudStatus,
			logLine:  "debug/net/handle: HandleStoreMeta: got CRUD STATUS. processing...",
			check: func(t *testing.T, c call) {
				assert.Equal(t, types.Address("QmE"), c.addr)
				assert.Equal(t, types.CrudDeleted, c.status)
			},
		},
		{
			name:     "crud link",
			meta:     types.DhtMetaData{EntryAddress: "QmE", Attribute: "crud-link", ContentList: []json.RawMessage{rawJSON(t, target)}},
			workflow: WorkflowCrudLink,
			logLine:  "debug/net/handle: HandleStoreMeta: got CRUD LINK. processing...",
			check: func(t *testing.T, c call) {
				assert.Equal(t, types.Address("QmE"), c.addr)
				require.NotNil(t, c.link)
				assert.Equal(t, target, *c.link)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, taskpool.Config{})

			require.NoError(t, f.d.HandleStoreMeta(context.Background(), tt.meta))
			f.drain(t)

			calls := f.wf.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.workflow, calls[0].workflow)
			tt.check(t, calls[0])
			assert.Equal(t, []string{tt.logLine}, f.log.Messages())
		})
	}
}

func TestHandleStoreMeta_UnknownAttribute(t *testing.T) {
	f := newFixture(t, taskpool.Config{})
	meta := types.DhtMetaData{
		EntryAddress: "QmE",
		Attribute:    "link__follows__t",
		ContentList:  []json.RawMessage{json.RawMessage(`"x"`)},
	}

	require.NoError(t, f.d.HandleStoreMeta(context.Background(), meta))
	f.drain(t)

	assert.Empty(t, f.wf.Calls())
	assert.Empty(t, f.log.Messages())
}

func TestHandleStoreMeta_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		meta  types.DhtMetaData
		count int
		cause bool
	}{
		{"link empty", types.DhtMetaData{Attribute: "link"}, 0, false},
		{"link two elements", types.DhtMetaData{Attribute: "link", ContentList: []json.RawMessage{
			json.RawMessage(`{}`), json.RawMessage(`{}`),
		}}, 2, false},
		{"link undecodable", types.DhtMetaData{Attribute: "link", ContentList: []json.RawMessage{
			json.RawMessage(`{"header":{}}`),
		}}, 1, true},
		{"crud status empty", types.DhtMetaData{Attribute: "crud-status"}, 0, false},
		{"crud status unknown name", types.DhtMetaData{Attribute: "crud-status", ContentList: []json.RawMessage{
			json.RawMessage(`"Zombie"`),
		}}, 1, true},
		{"crud link not a string", types.DhtMetaData{Attribute: "crud-link", ContentList: []json.RawMessage{
			json.RawMessage(`42`),
		}}, 1, true},
		{"crud link null", types.DhtMetaData{Attribute: "crud-link", ContentList: []json.RawMessage{
			json.RawMessage(`null`),
		}}, 1, true},
		{"crud link empty address", types.DhtMetaData{Attribute: "crud-link", ContentList: []json.RawMessage{
			json.RawMessage(`""`),
		}}, 1, true},
		{"crud link raw empty", types.DhtMetaData{Attribute: "crud-link", ContentList: []json.RawMessage{
			json.RawMessage(``),
		}}, 1, true},
		{"crud status null", types.DhtMetaData{Attribute: "crud-status", ContentList: []json.RawMessage{
			json.RawMessage(`null`),
		}}, 1, true},
		{"link null", types.DhtMetaData{Attribute: "link", ContentList: []json.RawMessage{
			json.RawMessage(`null`),
		}}, 1, true},
		{"link removal null", types.DhtMetaData{Attribute: "link_remove", ContentList: []json.RawMessage{
			json.RawMessage(`null`),
		}}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, taskpool.Config{})

			err := f.d.HandleStoreMeta(context.Background(), tt.meta)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedMeta)

			var mErr *MalformedMetaError
			require.ErrorAs(t, err, &mErr)
			assert.Equal(t, tt.meta.Attribute, mErr.Attribute)
			assert.Equal(t, tt.count, mErr.Count)
			assert.Equal(t, tt.cause, mErr.Err != nil)

			f.drain(t)
			assert.Empty(t, f.wf.Calls())

			msgs := f.log.Messages()
			require.Len(t, msgs, 2)
			assert.Contains(t, msgs[1], "err/net/handle: HandleStoreMeta: ")
		})
	}
}

// ============================================================================
//                              错误隔离
// ============================================================================

func TestWorkflowErrorIsLoggedAndDropped(t *testing.T) {
	f := newFixture(t, taskpool.Config{})
	f.wf.err = errors.New("storage offline")

	require.NoError(t, f.d.HandleStoreEntry(context.Background(), appEntry()))
	f.drain(t)

	assert.Equal(t, []string{"err/net/dht: storage offline"}, f.log.Messages())
	t.Log("✅ 工作流错误仅记录，不回传")
}

func TestWorkflowPanicIsContained(t *testing.T) {
	f := newFixture(t, taskpool.Config{})
	f.wf.panic = true

	require.NoError(t, f.d.HandleStoreEntry(context.Background(), appEntry()))
	f.drain(t)

	msgs := f.log.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "err/net/dht: hold-entry panicked: workflow exploded")
}

func TestSaturatedPoolRejects(t *testing.T) {
	f := newFixture(t, taskpool.Config{MaxInFlight: 1})
	f.wf.block = make(chan struct{})

	require.NoError(t, f.d.HandleStoreEntry(context.Background(), appEntry()))
	err := f.d.HandleStoreEntry(context.Background(), appEntry())
	assert.ErrorIs(t, err, taskpool.ErrSaturated)

	close(f.wf.block)
	f.drain(t)
	assert.Len(t, f.wf.Calls(), 1)
}

func TestClosedPoolRejects(t *testing.T) {
	f := newFixture(t, taskpool.Config{})
	f.drain(t)

	err := f.d.HandleStoreEntry(context.Background(), appEntry())
	assert.ErrorIs(t, err, taskpool.ErrClosed)
}

func TestConcurrentRequests(t *testing.T) {
	f := newFixture(t, taskpool.Config{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.d.HandleStoreEntry(context.Background(), appEntry()))
		}()
	}
	wg.Wait()
	f.drain(t)

	assert.Len(t, f.wf.Calls(), 50)
}

func TestNew_RequiresWorkflowsAndPool(t *testing.T) {
	pool := taskpool.New(taskpool.Config{})
	t.Cleanup(func() { _ = pool.Close(context.Background()) })

	_, err := New(nil, nil, pool)
	assert.ErrorIs(t, err, ErrNilWorkflows)

	_, err = New(&stubWorkflows{}, nil, nil)
	assert.ErrorIs(t, err, ErrNilPool)

	d, err := New(&stubWorkflows{}, nil, pool)
	require.NoError(t, err)
	assert.NoError(t, d.HandleStoreEntry(context.Background(), appEntry()))
	require.NoError(t, pool.Close(context.Background()))
}
