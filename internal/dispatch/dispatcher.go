package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dep2p/go-dhthold/internal/taskpool"
	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
	"github.com/dep2p/go-dhthold/pkg/types"
)

// ============================================================================
//                              协作方接口
// ============================================================================

// Workflows 六个持有工作流
//
// 每个方法接收解码后的负载与执行上下文，返回 nil 或错误。
type Workflows interface {
	HoldEntry(ctx context.Context, ewh types.EntryWithHeader) error
	HoldEntryRemoval(ctx context.Context, ewh types.EntryWithHeader) error
	HoldLink(ctx context.Context, ewh types.EntryWithHeader) error
	RemoveLink(ctx context.Context, ewh types.EntryWithHeader) error
	CrudStatus(ctx context.Context, addr types.Address, status types.CrudStatus) error
	CrudLink(ctx context.Context, addr types.Address, link *types.Address) error
}

// Logger 单参数日志接口，log.LazyLogger 满足该接口
type Logger interface {
	Log(msg string)
}

// Submitter 后台任务提交，*taskpool.Pool 满足该接口
type Submitter interface {
	Submit(ctx context.Context, name string, task taskpool.Task) error
}

// 工作流名称，同时用作任务名与指标标签
const (
	WorkflowHoldEntry        = "hold-entry"
	WorkflowHoldEntryRemoval = "hold-entry-removal"
	WorkflowHoldLink         = "hold-link"
	WorkflowRemoveLink       = "remove-link"
	WorkflowCrudStatus       = "crud-status"
	WorkflowCrudLink         = "crud-link"
)

// ============================================================================
//                              Dispatcher
// ============================================================================

// Dispatcher 存储请求分发器
//
// 无内部状态，可被多个 goroutine 并发调用。
type Dispatcher struct {
	workflows Workflows
	logger    Logger
	pool      Submitter
	instance  string
}

// Option 分发器选项
type Option func(*Dispatcher)

// WithInstance 设置实例名，用于指标标签
func WithInstance(name string) Option {
	return func(d *Dispatcher) {
		d.instance = name
	}
}

// New 创建分发器
//
// pool 由调用方持有并负责 Close，关闭时等待在途工作流结束。
func New(workflows Workflows, logger Logger, pool Submitter, opts ...Option) (*Dispatcher, error) {
	if workflows == nil {
		return nil, ErrNilWorkflows
	}
	if pool == nil {
		return nil, ErrNilPool
	}
	d := &Dispatcher{
		workflows: workflows,
		logger:    logger,
		pool:      pool,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// HandleStoreEntry 处理条目存储请求
//
// App 派发到 hold-entry，Deletion 派发到 hold-entry-removal，
// 其他种类返回 nil 且不派发、不记录日志。
func (d *Dispatcher) HandleStoreEntry(ctx context.Context, ewh types.EntryWithHeader) error {
	switch ewh.Entry.(type) {
	case *types.AppEntry:
		return d.spawn(ctx, WorkflowHoldEntry, func(ctx context.Context) error {
			return d.workflows.HoldEntry(ctx, ewh)
		})
	case *types.DeletionEntry:
		return d.spawn(ctx, WorkflowHoldEntryRemoval, func(ctx context.Context) error {
			return d.workflows.HoldEntryRemoval(ctx, ewh)
		})
	default:
		return nil
	}
}

// HandleStoreMeta 处理元数据存储请求
//
// 仅识别 link、link_remove、crud-status、crud-link 四种属性，
// 其他属性返回 nil 且不派发、不记录日志。
func (d *Dispatcher) HandleStoreMeta(ctx context.Context, meta types.DhtMetaData) error {
	addr := meta.EntryAddress

	switch types.Attribute(meta.Attribute) {
	case types.AttributeLink:
		d.log("debug/net/handle: HandleStoreMeta: got LINK. processing...")
		ewh, err := singleElement[types.EntryWithHeader](meta)
		if err != nil {
			return d.malformed(err)
		}
		return d.spawn(ctx, WorkflowHoldLink, func(ctx context.Context) error {
			return d.workflows.HoldLink(ctx, ewh)
		})

	case types.AttributeLinkRemove:
		d.log("debug/net/handle: HandleStoreMeta: got LINK REMOVAL. processing...")
		ewh, err := singleElement[types.EntryWithHeader](meta)
		if err != nil {
			return d.malformed(err)
		}
		return d.spawn(ctx, WorkflowRemoveLink, func(ctx context.Context) error {
			return d.workflows.RemoveLink(ctx, ewh)
		})

	case types.AttributeCrudStatus:
		d.log("debug/net/handle: HandleStoreMeta: got CRUD STATUS. processing...")
		status, err := firstElement[types.CrudStatus](meta)
		if err != nil {
			return d.malformed(err)
		}
		return d.spawn(ctx, WorkflowCrudStatus, func(ctx context.Context) error {
			return d.workflows.CrudStatus(ctx, addr, status)
		})

	case types.AttributeCrudLink:
		d.log("debug/net/handle: HandleStoreMeta: got CRUD LINK. processing...")
		link, err := singleElement[types.Address](meta)
		if err != nil {
			return d.malformed(err)
		}
		return d.spawn(ctx, WorkflowCrudLink, func(ctx context.Context) error {
			return d.workflows.CrudLink(ctx, addr, &link)
		})

	default:
		return nil
	}
}

// ============================================================================
//                              内部方法
// ============================================================================

// spawn 提交工作流调用任务
//
// 任务使用不可取消的 ctx 子上下文：请求方返回后工作流仍运行至结束。
// 工作流错误与 panic 在任务内记录并丢弃。
func (d *Dispatcher) spawn(ctx context.Context, workflow string, run func(context.Context) error) error {
	taskCtx := context.WithoutCancel(ctx)
	err := d.pool.Submit(taskCtx, workflow, func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				recordFailed(d.instance, workflow)
				d.log(fmt.Sprintf("err/net/dht: %s panicked: %v", workflow, r))
			}
		}()

		if err := run(ctx); err != nil {
			recordFailed(d.instance, workflow)
			d.log(fmt.Sprintf("err/net/dht: %v", err))
			return
		}
		recordCompleted(d.instance, workflow)
	})
	if err != nil {
		recordRejected(d.instance, workflow)
		return fmt.Errorf("dispatch: submit %s: %w", workflow, err)
	}
	recordDispatched(d.instance, workflow)
	return nil
}

func (d *Dispatcher) malformed(err *MalformedMetaError) error {
	recordMalformed(d.instance, err.Attribute)
	d.log(fmt.Sprintf("err/net/handle: HandleStoreMeta: %v", err))
	return err
}

func (d *Dispatcher) log(msg string) {
	if d.logger != nil {
		d.logger.Log(msg)
	}
}

// singleElement 要求 content_list 恰好一个元素并解码
func singleElement[T any](meta types.DhtMetaData) (T, *MalformedMetaError) {
	var zero T
	if len(meta.ContentList) != 1 {
		return zero, &MalformedMetaError{Attribute: meta.Attribute, Count: len(meta.ContentList)}
	}
	return decodeElement[T](meta, meta.ContentList[0])
}

// firstElement 解码 content_list 第一个元素，其余元素忽略
func firstElement[T any](meta types.DhtMetaData) (T, *MalformedMetaError) {
	var zero T
	if len(meta.ContentList) == 0 {
		return zero, &MalformedMetaError{Attribute: meta.Attribute, Count: 0}
	}
	return decodeElement[T](meta, meta.ContentList[0])
}

// decodeElement 严格解码单个元素，null、空串地址等零值视为无法解码
func decodeElement[T any](meta types.DhtMetaData, raw json.RawMessage) (T, *MalformedMetaError) {
	var v T
	fail := func(err error) (T, *MalformedMetaError) {
		var zero T
		return zero, &MalformedMetaError{Attribute: meta.Attribute, Count: len(meta.ContentList), Err: err}
	}
	if err := jsonx.UnmarshalStrict(raw, &v); err != nil {
		return fail(err)
	}
	if val, ok := any(v).(interface{ Validate() error }); ok {
		if err := val.Validate(); err != nil {
			return fail(err)
		}
	}
	return v, nil
}
