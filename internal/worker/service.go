package worker

import (
	"context"
	"errors"
	"time"

	"github.com/atelier-next/internal/config"
	"github.com/atelier-next/internal/logger"
	"github.com/atelier-next/internal/queue"

	"github.com/hibiken/asynq"
)

const sessionCleanupInterval = time.Hour

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.AuthService != nil {
		go s.runSessionCleanupLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runSessionCleanupLoop 定期清理过期会话
func (s *Service) runSessionCleanupLoop(ctx context.Context) {
	if s == nil || s.consumer == nil {
		return
	}
	runOnce := func() {
		if s.consumer.AuthService != nil {
			if count, err := s.consumer.AuthService.CleanupExpiredSessions(); err != nil {
				logger.Warnw("worker_admin_session_cleanup_failed", "error", err)
			} else if count > 0 {
				logger.Infow("worker_admin_session_cleanup", "removed", count)
			}
		}
		if s.consumer.ShopAuthService != nil {
			if count, err := s.consumer.ShopAuthService.CleanupExpiredSessions(); err != nil {
				logger.Warnw("worker_shop_session_cleanup_failed", "error", err)
			} else if count > 0 {
				logger.Infow("worker_shop_session_cleanup", "removed", count)
			}
		}
	}
	runOnce()

	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
