// Package introspect 提供本地自省 HTTP 服务
//
// 该服务运行在本地端口，提供 JSON 格式的诊断信息，用于调试和监控。
// 默认绑定到 127.0.0.1，不暴露到网络。
//
// 端点：
//   - GET /debug/instances                          - 实例列表
//   - GET /debug/instances/{id}/state               - 实例状态快照
//   - GET /debug/instances/{id}/cas/{address}       - CAS 记录的类型与内容
//   - GET /metrics                                  - Prometheus 指标
//   - GET /health                                   - 健康检查
//   - GET /debug/pprof/*                            - Go pprof 端点
package introspect

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dep2p/go-dhthold/internal/conductor"
	"github.com/dep2p/go-dhthold/internal/storage/cas"
	"github.com/dep2p/go-dhthold/pkg/lib/log"
	"github.com/dep2p/go-dhthold/pkg/types"
)

var logger = log.Logger("introspect")

// DefaultAddr 默认监听地址
const DefaultAddr = "127.0.0.1:6060"

// Debugger 实例调试接口，由 *conductor.Conductor 实现
type Debugger interface {
	RunningInstances() []string
	StateDumpForInstance(id string) (*conductor.StateDump, error)
	GetTypeAndContentFromCAS(addr types.Address, id string) (string, string, error)
}

// Config 服务配置
type Config struct {
	// Addr 监听地址，默认 "127.0.0.1:6060"
	Addr string

	// Debugger 必需的调试接口
	Debugger Debugger

	// Metrics 指标处理器，默认 promhttp.Handler()
	Metrics http.Handler
}

// Server 本地自省 HTTP 服务
type Server struct {
	debugger Debugger
	metrics  http.Handler
	addr     string

	server   *http.Server
	listener net.Listener

	running bool
	mu      sync.Mutex
}

// New 创建自省服务
func New(cfg Config) *Server {
	addr := cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	return &Server{
		debugger: cfg.Debugger,
		metrics:  metrics,
		addr:     addr,
	}
}

// Handler 返回服务的路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /debug/instances", s.handleInstances)
	mux.HandleFunc("GET /debug/instances/{id}/state", s.handleState)
	mux.HandleFunc("GET /debug/instances/{id}/cas/{address}", s.handleCAS)

	mux.Handle("GET /metrics", s.metrics)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}

// Start 启动服务
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("自省服务异常退出", "error", err)
		}
	}()

	s.running = true
	logger.Info("自省服务已启动", "addr", listener.Addr().String())
	return nil
}

// Stop 停止服务
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logger.Error("关闭自省服务失败", "error", err)
		return err
	}

	s.running = false
	logger.Info("自省服务已停止")
	return nil
}

// Addr 返回实际监听地址
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// ============================================================================
//                              HTTP 处理器
// ============================================================================

// InstancesResponse 实例列表响应
type InstancesResponse struct {
	Instances []string `json:"instances"`
}

// CASResponse CAS 记录响应
type CASResponse struct {
	Address types.Address   `json:"address"`
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

func (s *Server) handleInstances(w http.ResponseWriter, _ *http.Request) {
	if !s.available(w) {
		return
	}
	s.writeJSON(w, InstancesResponse{Instances: s.debugger.RunningInstances()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	dump, err := s.debugger.StateDumpForInstance(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, dump)
}

func (s *Server) handleCAS(w http.ResponseWriter, r *http.Request) {
	if !s.available(w) {
		return
	}
	addr := types.Address(r.PathValue("address"))
	typ, content, err := s.debugger.GetTypeAndContentFromCAS(addr, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, CASResponse{Address: addr, Type: typ, Content: json.RawMessage(content)})
}

// handleHealth 处理健康检查请求
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	health := struct {
		Status    string    `json:"status"`
		Instances int       `json:"instances"`
		Timestamp time.Time `json:"timestamp"`
	}{
		Status:    "ok",
		Timestamp: time.Now(),
	}

	if s.debugger == nil {
		health.Status = "degraded"
	} else {
		health.Instances = len(s.debugger.RunningInstances())
	}

	s.writeJSON(w, health)
}

// ============================================================================
//                              辅助方法
// ============================================================================

func (s *Server) available(w http.ResponseWriter) bool {
	if s.debugger == nil {
		http.Error(w, "Conductor not available", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// writeError 按错误类型选择状态码
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, conductor.ErrInstanceNotFound), errors.Is(err, cas.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrEmptyAddress):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

// writeJSON 写入 JSON 响应
func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		logger.Error("JSON 编码失败", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
