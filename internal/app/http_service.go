package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// HTTPService HTTP 服务封装
type HTTPService struct {
	name       string
	server     *http.Server
	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// NewHTTPService 创建 HTTP 服务。
// 请求上下文派生自服务级 context，Stop 时先取消它，让订单推送等长连接先行退出。
func NewHTTPService(addr string, handler http.Handler) *HTTPService {
	baseCtx, cancel := context.WithCancel(context.Background())
	return &HTTPService{
		name:       "http",
		baseCtx:    baseCtx,
		cancelBase: cancel,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext: func(net.Listener) context.Context {
				return baseCtx
			},
		},
	}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	if s == nil || s.name == "" {
		return "http"
	}
	return s.name
}

// Start 启动服务
func (s *HTTPService) Start(_ context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 停止服务
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	if s.cancelBase != nil {
		s.cancelBase()
	}
	return s.server.Shutdown(ctx)
}
