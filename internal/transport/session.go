package transport

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/multierr"

	"github.com/dep2p/go-dhthold/pkg/lib/log"
	"github.com/dep2p/go-dhthold/pkg/types"
	"github.com/dep2p/go-dhthold/pkg/wire"
)

var logger = log.Logger("transport")

// Handler 存储请求的接收方，dispatch.Dispatcher 满足该接口
type Handler interface {
	HandleStoreEntry(ctx context.Context, ewh types.EntryWithHeader) error
	HandleStoreMeta(ctx context.Context, meta types.DhtMetaData) error
}

// Stats 会话统计
type Stats struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Handshaken  bool   `json:"handshaken"`
	HubVersion  uint32 `json:"hub_version"`
	Received    int64  `json:"received"`
	Duplicates  int64  `json:"duplicates"`
	Stored      int64  `json:"stored"`
	Rejected    int64  `json:"rejected"`
	PendingAcks int    `json:"pending_acks"`
}

// Option 会话选项
type Option func(*Session)

// WithClock 替换时钟（测试使用 clock.NewMock）
func WithClock(c clock.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithDialer 替换 websocket 拨号器
func WithDialer(d *websocket.Dialer) Option {
	return func(s *Session) {
		s.dialer = d
	}
}

// ============================================================================
//                              Session
// ============================================================================

// Session 与 Hub 的一条 websocket 会话
type Session struct {
	id      string
	cfg     Config
	handler Handler
	clock   clock.Clock
	dialer  *websocket.Dialer
	conn    *websocket.Conn

	// seen 已处理的 Hub 推送指纹
	seen *lru.Cache[uint64, struct{}]

	writeMu sync.Mutex

	handshaken    atomic.Bool
	hubVersion    atomic.Uint32
	handshakeOnce sync.Once
	handshakeCh   chan error

	pendingMu sync.Mutex
	pending   map[uint64]time.Time

	lastSeen   atomic.Int64
	received   atomic.Int64
	duplicates atomic.Int64
	stored     atomic.Int64
	rejected   atomic.Int64

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	closed  atomic.Bool
	errOnce sync.Once
	err     error
}

// Dial 连接 Hub 并完成握手
func Dial(ctx context.Context, cfg Config, handler Handler, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seen, err := lru.New[uint64, struct{}](cfg.DedupSize)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:          uuid.NewString(),
		cfg:         cfg,
		handler:     handler,
		clock:       clock.New(),
		seen:        seen,
		handshakeCh: make(chan error, 1),
		pending:     make(map[uint64]time.Time),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dialer == nil {
		d := *websocket.DefaultDialer
		d.HandshakeTimeout = cfg.HandshakeTimeout
		s.dialer = &d
	}

	logger.Info("连接 Hub", "url", cfg.URL, "session", log.TruncateID(s.id, 8))
	conn, _, err := s.dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	s.conn = conn
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.lastSeen.Store(s.clock.Now().UnixNano())

	s.wg.Add(1)
	go s.readLoop()

	if err := s.write(wire.Hello(wire.WireVersion)); err != nil {
		_ = s.Close()
		return nil, err
	}
	if err := s.awaitHandshake(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	if cfg.KeepaliveInterval > 0 {
		ticker := s.clock.Ticker(cfg.KeepaliveInterval)
		s.wg.Add(1)
		go s.keepalive(ticker)
	}

	logger.Info("Hub 握手完成", "session", log.TruncateID(s.id, 8), "version", s.hubVersion.Load())
	return s, nil
}

func (s *Session) awaitHandshake(ctx context.Context) error {
	timer := s.clock.Timer(s.cfg.HandshakeTimeout)
	defer timer.Stop()

	select {
	case err := <-s.handshakeCh:
		return err
	case <-timer.C:
		return ErrHandshakeTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) finishHandshake(err error) {
	s.handshakeOnce.Do(func() {
		s.handshakeCh <- err
	})
}

// ID 会话 ID
func (s *Session) ID() string { return s.id }

// Done 会话结束时关闭
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

// Err 会话异常结束的原因
func (s *Session) Err() error {
	<-s.ctx.Done()
	return s.err
}

// Handshaken 是否已完成握手
func (s *Session) Handshaken() bool { return s.handshaken.Load() }

// Stats 返回会话统计
func (s *Session) Stats() Stats {
	s.pendingMu.Lock()
	pending := len(s.pending)
	s.pendingMu.Unlock()

	return Stats{
		ID:          s.id,
		URL:         s.cfg.URL,
		Handshaken:  s.handshaken.Load(),
		HubVersion:  s.hubVersion.Load(),
		Received:    s.received.Load(),
		Duplicates:  s.duplicates.Load(),
		Stored:      s.stored.Load(),
		Rejected:    s.rejected.Load(),
		PendingAcks: pending,
	}
}

// ============================================================================
//                              发送
// ============================================================================

// Send 发送消息
//
// 握手完成前只允许发送连接控制消息。ClientToLib3h 请求在收到对应 Ack 前计入待确认。
func (s *Session) Send(msg wire.WireMessage) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := wire.CheckHandshake(s.handshaken.Load(), msg); err != nil {
		return err
	}
	if _, ok := msg.(wire.ClientToLib3hMessage); ok {
		s.pendingMu.Lock()
		s.pending[wire.CalcHash(msg)] = s.clock.Now()
		s.pendingMu.Unlock()
	}
	return s.write(msg)
}

// JoinSpace 以 agent 身份加入空间
func (s *Session) JoinSpace(space, agent types.Address) error {
	return s.Send(wire.ClientToLib3hMessage{
		Data: wire.JoinSpace{
			RequestID:    uuid.NewString(),
			SpaceAddress: space,
			AgentID:      agent,
		},
		SpanContext: wire.NewSpanContext(),
	})
}

func (s *Session) write(msg wire.WireMessage) error {
	data := wire.Encode(msg)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// 写超时作用于真实 I/O，使用墙钟
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *Session) reply(msg wire.WireMessage) {
	if err := s.write(msg); err != nil && !s.closed.Load() {
		logger.Warn("回复 Hub 失败", "type", wire.MessageType(msg), "error", err)
	}
}

// ============================================================================
//                              接收
// ============================================================================

func (s *Session) readLoop() {
	defer s.wg.Done()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if !s.closed.Load() {
				logger.Warn("Hub 连接中断", "session", log.TruncateID(s.id, 8), "error", err)
			}
			s.fail(err)
			return
		}
		s.lastSeen.Store(s.clock.Now().UnixNano())
		s.handleFrame(data)
	}
}

func (s *Session) handleFrame(data []byte) {
	msg, err := wire.Decode(data)
	if err != nil {
		logger.Warn("解码 Hub 消息失败", "error", err)
		var we *wire.WireError
		if errors.As(err, &we) {
			s.reply(wire.ErrorMessage{Err: *we})
		}
		return
	}
	s.handle(msg)
}

func (s *Session) handle(msg wire.WireMessage) {
	if err := wire.CheckHandshake(s.handshaken.Load(), msg); err != nil {
		logger.Debug("握手前收到业务消息", "type", wire.MessageType(msg))
		s.reply(wire.ErrorMessage{Err: *wire.ErrMessageWhileInLimbo})
		return
	}

	switch m := msg.(type) {
	case wire.Hello:
		s.reply(wire.HelloResponse{Version: wire.WireVersion})
		s.completeHandshake(uint32(m))
	case wire.HelloResponse:
		s.completeHandshake(m.Version)
	case wire.Ping:
		s.reply(wire.Pong{})
	case wire.Pong:
		// lastSeen 已在读循环中更新
	case wire.Status:
		s.reply(wire.StatusResponse{Version: wire.WireVersion})
	case wire.Ack:
		s.pendingMu.Lock()
		delete(s.pending, uint64(m))
		s.pendingMu.Unlock()
	case wire.ErrorMessage:
		logger.Warn("Hub 返回错误", "error", &m.Err)
	case wire.Lib3hToClientMessage:
		s.deliver(msg, wire.MultiSend{m})
	case wire.MultiSend:
		s.deliver(msg, m)
	default:
		logger.Debug("忽略消息", "type", wire.MessageType(msg))
	}
}

func (s *Session) completeHandshake(version uint32) {
	s.hubVersion.Store(version)
	if !wire.IsCompatible(version) {
		logger.Warn("Hub 协议版本不一致", "local", wire.WireVersion, "remote", version)
		s.finishHandshake(ErrIncompatibleVersion)
		return
	}
	s.handshaken.Store(true)
	s.finishHandshake(nil)
}

// deliver 确认并处理一次 Hub 投递，重复投递只确认
func (s *Session) deliver(msg wire.WireMessage, batch wire.MultiSend) {
	hash := wire.CalcHash(msg)
	s.reply(wire.Ack(hash))

	if _, dup := s.seen.Get(hash); dup {
		s.duplicates.Add(1)
		logger.Debug("重复投递", "type", wire.MessageType(msg), "hash", hash)
		return
	}
	s.seen.Add(hash, struct{}{})

	for _, m := range batch {
		s.received.Add(1)
		s.handleHubRequest(m)
	}
}

func (s *Session) handleHubRequest(m wire.Lib3hToClientMessage) {
	switch d := m.Data.(type) {
	case wire.HandleStoreEntryAspect:
		s.storeAspect(m.SpanContext, wire.StoreEntryAspectData(d))
	default:
		logger.Debug("未处理的 Hub 推送", "type", wire.MessageType(m))
	}
}

// ============================================================================
//                              生命周期
// ============================================================================

func (s *Session) keepalive(ticker *clock.Ticker) {
	defer s.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if s.cfg.KeepaliveTimeout > 0 {
				idle := s.clock.Since(time.Unix(0, s.lastSeen.Load()))
				if idle > s.cfg.KeepaliveTimeout {
					logger.Warn("Hub 心跳超时", "session", log.TruncateID(s.id, 8), "idle", idle)
					s.fail(ErrKeepaliveTimeout)
					return
				}
			}
			if err := s.write(wire.Ping{}); err != nil {
				logger.Debug("发送 Ping 失败", "error", err)
			}
		}
	}
}

// fail 记录首个失败原因并终止会话
func (s *Session) fail(err error) {
	s.errOnce.Do(func() {
		if !s.closed.Load() {
			s.err = err
		}
	})
	s.finishHandshake(err)
	s.cancel()
	_ = s.conn.Close()
}

// Close 关闭会话并等待后台 goroutine 退出
func (s *Session) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	failed := s.ctx.Err() != nil
	s.cancel()

	if failed {
		_ = s.conn.Close()
		s.wg.Wait()
		return nil
	}

	var errs error
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil &&
		!errors.Is(err, websocket.ErrCloseSent) {
		errs = multierr.Append(errs, err)
	}
	if err := s.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		errs = multierr.Append(errs, err)
	}
	s.wg.Wait()

	logger.Info("Hub 会话已关闭", "session", log.TruncateID(s.id, 8))
	return errs
}
