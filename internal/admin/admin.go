package admin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// API は管理APIサーバー
type API struct {
	engine     *gin.Engine
	httpServer *http.Server
	log        zerolog.Logger
}

// New は新しいAPIを作成する
func New(provider StatusProvider, logger zerolog.Logger) *API {
	gin.SetMode(gin.ReleaseMode)

	log := logger.With().Str("component", "admin").Logger()

	engine := gin.New()
	engine.Use(gin.Recovery(), accessLog(log))

	h := &handlers{provider: provider, now: time.Now}
	engine.GET("/health", h.healthCheck)
	engine.GET("/api/status", h.getStatus)
	engine.GET("/api/openapi.yaml", h.getOpenAPI)

	return &API{
		engine: engine,
		httpServer: &http.Server{
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log,
	}
}

// Handler はルーティング済みのハンドラーを返す
func (a *API) Handler() http.Handler {
	return a.engine
}

// Serve はリスナーで管理APIを提供する（Shutdown後は nil を返す）
func (a *API) Serve(ln net.Listener) error {
	a.log.Info().Str("addr", ln.Addr().String()).Msg("管理APIを起動しています")

	if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("管理APIの起動に失敗: %w", err)
	}
	return nil
}

// Shutdown は管理APIをグレースフルに停止する
func (a *API) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("管理APIのシャットダウンに失敗: %w", err)
	}
	a.log.Info().Msg("管理APIを停止しました")
	return nil
}

// accessLog はリクエストをzerologで記録するミドルウェア
func accessLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("管理APIリクエスト")
	}
}
