package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tinyserve/internal/pool"
)

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ServerInfo は配信設定の情報
type ServerInfo struct {
	Address      string   `json:"address"`
	Root         string   `json:"root"`
	TemplatePath string   `json:"template_path"`
	Whitelist    []string `json:"whitelist"`
}

// StatusResponse はステータス確認のレスポンス
type StatusResponse struct {
	Status    string     `json:"status"`
	Server    ServerInfo `json:"server"`
	Pool      pool.Stats `json:"pool"`
	Timestamp time.Time  `json:"timestamp"`
}

// StatusProvider は管理APIに公開する状態を提供する
type StatusProvider interface {
	Running() bool
	Info() ServerInfo
	PoolStats() pool.Stats
}

type handlers struct {
	provider StatusProvider
	now      func() time.Time
}

// healthCheck はヘルスチェックエンドポイント
func (h *handlers) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now(),
	})
}

// getStatus はステータス確認エンドポイント
func (h *handlers) getStatus(c *gin.Context) {
	status := "stopped"
	if h.provider.Running() {
		status = "running"
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:    status,
		Server:    h.provider.Info(),
		Pool:      h.provider.PoolStats(),
		Timestamp: h.now(),
	})
}

// getOpenAPI はOpenAPIドキュメントを返す
func (h *handlers) getOpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", OpenAPIDocument())
}
