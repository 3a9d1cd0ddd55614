// Package workflow 实现持有 DHT 数据的工作流
//
// Holder 把分发器派发的请求落到内容寻址存储 (CAS) 与 EAV 索引上：
//
//   - HoldEntry          写入条目与链头，标记 Live
//   - HoldEntryRemoval   写入删除条目，标记被删条目 Deleted 并建立 crud-link
//   - HoldLink           在链接 base 上写入 link__{type}__{tag} 行
//   - RemoveLink         在链接 base 上写入 removed_link__{type}__{tag} 行
//   - CrudStatus         写入 crud-status 行
//   - CrudLink           写入或清除 crud-link 行
//
// 不做冲突消解：同一属性的多行并存，读取时取最新一行。
package workflow

import (
	"context"
	"fmt"

	"github.com/dep2p/go-dhthold/internal/storage/cas"
	"github.com/dep2p/go-dhthold/internal/storage/eav"
	"github.com/dep2p/go-dhthold/pkg/lib/log"
	"github.com/dep2p/go-dhthold/pkg/types"
)

var logger = log.Logger("workflow")

// Holder 基于 CAS 与 EAV 的工作流实现
type Holder struct {
	cas *cas.Store
	eav *eav.Store
}

// New 创建 Holder
func New(c *cas.Store, e *eav.Store) *Holder {
	return &Holder{cas: c, eav: e}
}

// CAS 返回底层内容存储
func (h *Holder) CAS() *cas.Store { return h.cas }

// EAV 返回底层索引
func (h *Holder) EAV() *eav.Store { return h.eav }

// ============================================================================
//                              条目工作流
// ============================================================================

// HoldEntry 持有条目
func (h *Holder) HoldEntry(_ context.Context, ewh types.EntryWithHeader) error {
	addr, err := h.store(ewh)
	if err != nil {
		return fmt.Errorf("hold-entry: %w", err)
	}
	if err := h.setStatus(addr, types.CrudLive); err != nil {
		return fmt.Errorf("hold-entry: %w", err)
	}
	logger.Debug("持有条目", "address", addr, "kind", ewh.Entry.Kind())
	return nil
}

// HoldEntryRemoval 持有删除条目
func (h *Holder) HoldEntryRemoval(_ context.Context, ewh types.EntryWithHeader) error {
	del, ok := ewh.Entry.(*types.DeletionEntry)
	if !ok {
		return unexpected("hold-entry-removal", ewh.Entry)
	}
	if err := del.DeletedEntryAddress.Validate(); err != nil {
		return fmt.Errorf("hold-entry-removal: %w", err)
	}

	addr, err := h.store(ewh)
	if err != nil {
		return fmt.Errorf("hold-entry-removal: %w", err)
	}
	if err := h.setStatus(del.DeletedEntryAddress, types.CrudDeleted); err != nil {
		return fmt.Errorf("hold-entry-removal: %w", err)
	}
	if err := h.CrudLink(context.Background(), del.DeletedEntryAddress, &addr); err != nil {
		return fmt.Errorf("hold-entry-removal: %w", err)
	}
	logger.Debug("持有删除", "deleted", del.DeletedEntryAddress, "deletion", addr)
	return nil
}

// ============================================================================
//                              链接工作流
// ============================================================================

// HoldLink 持有链接
func (h *Holder) HoldLink(_ context.Context, ewh types.EntryWithHeader) error {
	add, ok := ewh.Entry.(*types.LinkAddEntry)
	if !ok {
		return unexpected("hold-link", ewh.Entry)
	}
	link := add.Link
	if err := link.Base.Validate(); err != nil {
		return fmt.Errorf("hold-link: base: %w", err)
	}

	addr, err := h.store(ewh)
	if err != nil {
		return fmt.Errorf("hold-link: %w", err)
	}
	if _, err := h.eav.Add(eav.Row{
		Entity:    link.Base,
		Attribute: types.LinkTagAttribute(link.LinkType, link.Tag),
		Value:     string(addr),
	}); err != nil {
		return fmt.Errorf("hold-link: %w", err)
	}
	logger.Debug("持有链接", "base", link.Base, "target", link.Target, "type", link.LinkType)
	return nil
}

// RemoveLink 持有链接移除
func (h *Holder) RemoveLink(_ context.Context, ewh types.EntryWithHeader) error {
	rm, ok := ewh.Entry.(*types.LinkRemoveEntry)
	if !ok {
		return unexpected("remove-link", ewh.Entry)
	}
	link := rm.Link.Link
	if err := link.Base.Validate(); err != nil {
		return fmt.Errorf("remove-link: base: %w", err)
	}

	if _, err := h.store(ewh); err != nil {
		return fmt.Errorf("remove-link: %w", err)
	}
	attr := types.RemovedLinkAttribute(link.LinkType, link.Tag)
	for _, removed := range rm.Removed {
		if _, err := h.eav.Add(eav.Row{Entity: link.Base, Attribute: attr, Value: string(removed)}); err != nil {
			return fmt.Errorf("remove-link: %w", err)
		}
	}
	logger.Debug("移除链接", "base", link.Base, "removed", len(rm.Removed))
	return nil
}

// ============================================================================
//                              CRUD 元数据
// ============================================================================

// CrudStatus 记录条目的生命周期状态
func (h *Holder) CrudStatus(_ context.Context, addr types.Address, status types.CrudStatus) error {
	if err := h.setStatus(addr, status); err != nil {
		return fmt.Errorf("crud-status: %w", err)
	}
	return nil
}

// CrudLink 记录条目的替代者，link 为 nil 时清除
func (h *Holder) CrudLink(_ context.Context, addr types.Address, link *types.Address) error {
	if err := addr.Validate(); err != nil {
		return fmt.Errorf("crud-link: %w", err)
	}
	if link == nil {
		if _, err := h.eav.Remove(addr, types.AttributeCrudLink); err != nil {
			return fmt.Errorf("crud-link: %w", err)
		}
		return nil
	}
	if err := link.Validate(); err != nil {
		return fmt.Errorf("crud-link: link: %w", err)
	}
	if _, err := h.eav.Add(eav.Row{Entity: addr, Attribute: types.AttributeCrudLink, Value: string(*link)}); err != nil {
		return fmt.Errorf("crud-link: %w", err)
	}
	return nil
}

// ============================================================================
//                              内部方法
// ============================================================================

// store 写入条目与链头，返回条目地址
func (h *Holder) store(ewh types.EntryWithHeader) (types.Address, error) {
	if ewh.Entry == nil {
		return "", ErrNilEntry
	}
	want, err := types.AddressOfEntry(ewh.Entry)
	if err != nil {
		return "", err
	}
	if declared := ewh.Header.EntryAddress; declared != "" && declared != want {
		return "", fmt.Errorf("%w: header says %s, content is %s", ErrAddressMismatch, declared, want)
	}

	addr, err := h.cas.AddEntry(ewh.Entry)
	if err != nil {
		return "", err
	}
	if _, err := h.cas.AddHeader(ewh.Header); err != nil {
		return "", err
	}
	return addr, nil
}

func (h *Holder) setStatus(addr types.Address, status types.CrudStatus) error {
	if err := addr.Validate(); err != nil {
		return err
	}
	_, err := h.eav.Add(eav.Row{Entity: addr, Attribute: types.AttributeCrudStatus, Value: status.String()})
	return err
}

func unexpected(workflow string, e types.Entry) error {
	if e == nil {
		return fmt.Errorf("%s: %w", workflow, ErrNilEntry)
	}
	return fmt.Errorf("%s: %w: %s", workflow, ErrUnexpectedEntry, e.Kind())
}
