package transport

import (
	"fmt"

	"github.com/dep2p/go-dhthold/pkg/lib/jsonx"
	"github.com/dep2p/go-dhthold/pkg/types"
	"github.com/dep2p/go-dhthold/pkg/wire"
)

// storeAspect 解出切面负载并交给 Handler，成功后回复 HandleStoreEntryAspectResult
//
// 失败只记录日志，不向 Hub 回复。
func (s *Session) storeAspect(span wire.SpanContext, data wire.StoreEntryAspectData) {
	if err := s.dispatchAspect(data.EntryAspect); err != nil {
		s.rejected.Add(1)
		logger.Warn("存储切面失败",
			"request", data.RequestID,
			"entry", data.EntryAddress,
			"type_hint", data.EntryAspect.TypeHint,
			"error", err)
		return
	}
	s.stored.Add(1)
	s.reply(wire.Lib3hToClientResponseMessage{
		Data:        wire.HandleStoreEntryAspectResult{},
		SpanContext: span,
	})
}

func (s *Session) dispatchAspect(aspect wire.EntryAspectData) error {
	switch aspect.TypeHint {
	case wire.TypeHintContent:
		var ewh types.EntryWithHeader
		if err := jsonx.Unmarshal(aspect.Aspect, &ewh); err != nil {
			return fmt.Errorf("decode content aspect: %w", err)
		}
		return s.handler.HandleStoreEntry(s.ctx, ewh)
	case wire.TypeHintMeta:
		var meta types.DhtMetaData
		if err := jsonx.Unmarshal(aspect.Aspect, &meta); err != nil {
			return fmt.Errorf("decode meta aspect: %w", err)
		}
		return s.handler.HandleStoreMeta(s.ctx, meta)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTypeHint, aspect.TypeHint)
	}
}
