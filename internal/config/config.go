package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"tinyserve/internal/logging"
	"tinyserve/internal/resolver"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig   `yaml:"server"`
	Static StaticConfig   `yaml:"static"`
	Pool   PoolConfig     `yaml:"pool"`
	Admin  AdminConfig    `yaml:"admin"`
	Log    logging.Config `yaml:"log"`
}

// ServerConfig はファイル配信サーバーの設定
//
// 読み込み・書き込みタイムアウトは持たない。
type ServerConfig struct {
	Host string `yaml:"host"`                            // リッスンするホスト
	Port int    `yaml:"port" validate:"min=1,max=65535"` // リッスンするポート番号
}

// StaticConfig は配信するファイルの設定
type StaticConfig struct {
	Root         string   `yaml:"root" validate:"required"`                              // ルートディレクトリ
	Whitelist    []string `yaml:"whitelist" validate:"required,min=1,dive,startswith=/"` // 配信を許可するパス
	TemplatePath string   `yaml:"template_path"`                                         // プレースホルダー置換を行うパス
	Placeholder  string   `yaml:"placeholder" validate:"required"`                       // 置換するトークン
}

// PoolConfig はワーカープールの設定
type PoolConfig struct {
	Size int `yaml:"size" validate:"min=1"` // 同時に処理する接続数の上限
}

// AdminConfig は管理APIの設定
type AdminConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port" validate:"min=0,max=65535"`
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Static: StaticConfig{
			Root:         "./public",
			Whitelist:    slices.Clone(resolver.DefaultPaths),
			TemplatePath: resolver.DefaultTemplatePath,
			Placeholder:  "{time}",
		},
		Pool: PoolConfig{
			Size: 64,
		},
		Admin: AdminConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    9090,
		},
		Log: logging.Config{
			Level: "info",
		},
	}
}

// Load は設定を読み込む
//
// デフォルト値、YAMLファイル（path が空でなければ）、環境変数の順に適用する。
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// loadFile はYAMLファイルの内容で設定を上書きする
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("設定ファイルの解析に失敗: %w", err)
	}

	return nil
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() {
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("PORT", c.Server.Port)
	c.Static.Root = getEnvOrDefault("ROOT_DIR", c.Static.Root)
	c.Pool.Size = getEnvAsIntOrDefault("POOL_SIZE", c.Pool.Size)
	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Admin.Port = getEnvAsIntOrDefault("ADMIN_PORT", c.Admin.Port)
	c.Admin.Enabled = getEnvAsBoolOrDefault("ADMIN_ENABLED", c.Admin.Enabled)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("無効な設定値 %s=%v (%s)", fe.Namespace(), fe.Value(), fe.Tag())
		}
		return err
	}

	// テンプレートは配信対象でなければならない
	if c.Static.TemplatePath != "" && !slices.Contains(c.Static.Whitelist, c.Static.TemplatePath) {
		return fmt.Errorf("テンプレートパス %s がホワイトリストに含まれていません", c.Static.TemplatePath)
	}

	if c.Admin.Enabled && c.Admin.Port != 0 && c.Admin.Port == c.Server.Port {
		return fmt.Errorf("管理APIのポートがサーバーのポートと重複しています: %d", c.Admin.Port)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AdminAddress は管理APIのリッスンアドレスを返す
func (c *Config) AdminAddress() string {
	return fmt.Sprintf("%s:%d", c.Admin.Host, c.Admin.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault は環境変数を真偽値として取得し、解釈できない場合はデフォルト値を返す
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}
