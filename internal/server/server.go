package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"tinyserve/internal/admin"
	"tinyserve/internal/config"
	"tinyserve/internal/pool"
	"tinyserve/internal/resolver"
)

// shutdownTimeout はシャットダウン時にワーカーの終了を待つ時間
const shutdownTimeout = 5 * time.Second

// Server は接続を受け付けてワーカープールに渡すディスパッチャー
type Server struct {
	config   *config.Config
	resolver *resolver.Resolver
	handler  *Handler
	pool     *pool.Pool
	admin    *admin.API
	log      zerolog.Logger

	mu       sync.RWMutex
	listener net.Listener
	running  bool
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	whitelist := resolver.NewWhitelist(cfg.Static.Whitelist...)
	res := resolver.New(cfg.Static.Root, whitelist, cfg.Static.TemplatePath)

	p, err := pool.New(cfg.Pool.Size, logger)
	if err != nil {
		return nil, fmt.Errorf("ワーカープールの作成に失敗: %w", err)
	}

	s := &Server{
		config:   cfg,
		resolver: res,
		handler:  NewHandler(res, cfg.Static.Placeholder, logger),
		pool:     p,
		log:      logger.With().Str("component", "server").Logger(),
	}

	if cfg.Admin.Enabled {
		s.admin = admin.New(s, logger)
	}

	return s, nil
}

// Listen は設定されたアドレスでリッスンを開始する
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.config.ServerAddress())
	if err != nil {
		return nil, fmt.Errorf("リッスンに失敗: %w", err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	return ln, nil
}

// Start はサーバーを起動し、シグナルかコンテキストのキャンセルまで動作する
func (s *Server) Start(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// サーバーを別ゴルーチンで起動
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(ctx, ln)
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		s.log.Info().Str("signal", sig.String()).Msg("シグナルを受信しました")
		cancel()
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// Serve はリスナーで接続を受け付け続ける
//
// ctx がキャンセルされるとリスナーを閉じてシャットダウンし nil を返す。
// 受け付けの失敗は致命的なエラーとして返す。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.running = true
	s.mu.Unlock()

	if s.admin != nil {
		if err := s.startAdmin(); err != nil {
			s.setStopped()
			ln.Close()
			return err
		}
	}

	stop := context.AfterFunc(ctx, func() {
		ln.Close()
	})
	defer stop()

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("root", s.config.Static.Root).
		Int("workers", s.pool.Size()).
		Msg("ファイル配信サーバーを起動しました")

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return s.shutdown()
			}
			acceptErr := fmt.Errorf("接続の受け付けに失敗: %w", err)
			if err := s.stopServices(); err != nil {
				return errors.Join(acceptErr, err)
			}
			return acceptErr
		}

		if err := s.pool.Submit(func() { s.handler.Serve(conn) }); err != nil {
			s.log.Error().Err(err).Msg("接続をワーカーに渡せませんでした")
			conn.Close()
		}
	}
}

// startAdmin は管理APIを別リスナーで起動する
func (s *Server) startAdmin() error {
	ln, err := net.Listen("tcp", s.config.AdminAddress())
	if err != nil {
		return fmt.Errorf("管理APIのリッスンに失敗: %w", err)
	}

	go func() {
		if err := s.admin.Serve(ln); err != nil {
			s.log.Error().Err(err).Msg("管理APIが異常終了しました")
		}
	}()
	return nil
}

// shutdown はキューに残った接続を処理してから停止する
func (s *Server) shutdown() error {
	s.log.Info().Msg("サーバーをシャットダウンしています...")

	if err := s.stopServices(); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	s.log.Info().Msg("サーバーが正常にシャットダウンされました")
	return nil
}

// stopServices は管理APIとワーカープールを停止する
func (s *Server) stopServices() error {
	s.setStopped()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if s.admin != nil {
		if err := s.admin.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.pool.Stop(ctx); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (s *Server) setStopped() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// Addr はリッスン中のアドレスを返す（未起動なら nil）
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Running は接続を受け付けているかを返す
func (s *Server) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Info は管理APIに公開する配信設定を返す
func (s *Server) Info() admin.ServerInfo {
	addr := s.config.ServerAddress()
	if a := s.Addr(); a != nil {
		addr = a.String()
	}

	return admin.ServerInfo{
		Address:      addr,
		Root:         s.resolver.Root(),
		TemplatePath: s.config.Static.TemplatePath,
		Whitelist:    s.resolver.Whitelist().Paths(),
	}
}

// PoolStats はワーカープールの状態を返す
func (s *Server) PoolStats() pool.Stats {
	return s.pool.Stats()
}
