package workflow

import (
	"github.com/dep2p/go-dhthold/internal/storage/eav"
	"github.com/dep2p/go-dhthold/pkg/types"
)

// StatusOf 返回条目的最新 CRUD 状态
func (h *Holder) StatusOf(addr types.Address) (types.CrudStatus, bool, error) {
	row, ok, err := h.eav.Latest(addr, types.AttributeCrudStatus)
	if err != nil || !ok {
		return 0, false, err
	}
	status, err := types.ParseCrudStatus(row.Value)
	if err != nil {
		return 0, false, err
	}
	return status, true, nil
}

// CrudLinkOf 返回条目的最新替代者地址
func (h *Holder) CrudLinkOf(addr types.Address) (types.Address, bool, error) {
	row, ok, err := h.eav.Latest(addr, types.AttributeCrudLink)
	if err != nil || !ok {
		return "", false, err
	}
	return types.Address(row.Value), true, nil
}

// Links 返回 base 上仍然有效的 LinkAdd 条目地址（按写入顺序）
func (h *Holder) Links(base types.Address, linkType, tag string) ([]types.Address, error) {
	added, err := h.eav.Fetch(eav.Query{Entity: base, Attribute: types.LinkTagAttribute(linkType, tag)})
	if err != nil {
		return nil, err
	}
	removed, err := h.eav.Fetch(eav.Query{Entity: base, Attribute: types.RemovedLinkAttribute(linkType, tag)})
	if err != nil {
		return nil, err
	}

	gone := make(map[string]struct{}, len(removed))
	for _, r := range removed {
		gone[r.Value] = struct{}{}
	}
	var out []types.Address
	seen := make(map[string]struct{}, len(added))
	for _, r := range added {
		if _, ok := gone[r.Value]; ok {
			continue
		}
		if _, ok := seen[r.Value]; ok {
			continue
		}
		seen[r.Value] = struct{}{}
		out = append(out, types.Address(r.Value))
	}
	return out, nil
}
