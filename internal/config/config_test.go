package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestConfigLoad は設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	// 設定を読み込む
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	// サーバー設定の検証
	if cfg.Server.Host == "" {
		t.Error("サーバーホストが設定されていません")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		t.Errorf("無効なポート番号: %d", cfg.Server.Port)
	}

	// 配信設定の検証
	if cfg.Static.Root != "./public" {
		t.Errorf("ルートディレクトリが不正です: %s", cfg.Static.Root)
	}
	if len(cfg.Static.Whitelist) != 11 {
		t.Errorf("ホワイトリストの件数が不正です: %d", len(cfg.Static.Whitelist))
	}
	if cfg.Static.TemplatePath != "/classic.html" {
		t.Errorf("テンプレートパスが不正です: %s", cfg.Static.TemplatePath)
	}
	if cfg.Static.Placeholder != "{time}" {
		t.Errorf("プレースホルダーが不正です: %s", cfg.Static.Placeholder)
	}

	// デフォルト値の検証
	if cfg.Pool.Size != 64 {
		t.Errorf("ワーカー数のデフォルトが不正です: %d", cfg.Pool.Size)
	}
	if cfg.Admin.Enabled {
		t.Error("管理APIはデフォルトで無効であるべきです")
	}
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name      string
		modify    func(c *Config)
		expectErr bool
	}{
		{
			name:      "正常な設定",
			modify:    func(c *Config) {},
			expectErr: false,
		},
		{
			name:      "無効なポート番号",
			modify:    func(c *Config) { c.Server.Port = 99999 },
			expectErr: true,
		},
		{
			name:      "ワーカー数0",
			modify:    func(c *Config) { c.Pool.Size = 0 },
			expectErr: true,
		},
		{
			name:      "ルートディレクトリなし",
			modify:    func(c *Config) { c.Static.Root = "" },
			expectErr: true,
		},
		{
			name:      "空のホワイトリスト",
			modify:    func(c *Config) { c.Static.Whitelist = []string{} },
			expectErr: true,
		},
		{
			name:      "スラッシュで始まらないパス",
			modify:    func(c *Config) { c.Static.Whitelist = append(c.Static.Whitelist, "index.html") },
			expectErr: true,
		},
		{
			name:      "ホワイトリスト外のテンプレート",
			modify:    func(c *Config) { c.Static.TemplatePath = "/missing.html" },
			expectErr: true,
		},
		{
			name:      "テンプレートなし",
			modify:    func(c *Config) { c.Static.TemplatePath = "" },
			expectErr: false,
		},
		{
			name:      "プレースホルダーなし",
			modify:    func(c *Config) { c.Static.Placeholder = "" },
			expectErr: true,
		},
		{
			name:      "無効なログレベル",
			modify:    func(c *Config) { c.Log.Level = "trace" },
			expectErr: true,
		},
		{
			name: "管理APIのポート重複",
			modify: func(c *Config) {
				c.Admin.Enabled = true
				c.Admin.Port = c.Server.Port
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.expectErr && err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
			if !tc.expectErr && err != nil {
				t.Errorf("予期しないエラーが発生しました: %v", err)
			}
		})
	}
}

// TestServerAddress はサーバーアドレスの生成をテストする
func TestServerAddress(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Host: "192.168.1.100",
			Port: 9090,
		},
		Admin: AdminConfig{
			Host: "127.0.0.1",
			Port: 9091,
		},
	}

	if actual := cfg.ServerAddress(); actual != "192.168.1.100:9090" {
		t.Errorf("サーバーアドレスが一致しません: got %s, want 192.168.1.100:9090", actual)
	}
	if actual := cfg.AdminAddress(); actual != "127.0.0.1:9091" {
		t.Errorf("管理APIアドレスが一致しません: got %s, want 127.0.0.1:9091", actual)
	}
}

// TestEnvironmentVariables は環境変数の処理をテストする
func TestEnvironmentVariables(t *testing.T) {
	t.Setenv("SERVER_HOST", "test.example.com")
	t.Setenv("PORT", "9999")
	t.Setenv("ROOT_DIR", "/srv/www")
	t.Setenv("POOL_SIZE", "8")
	t.Setenv("ADMIN_ENABLED", "true")
	t.Setenv("ADMIN_PORT", "9998")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.Server.Host != "test.example.com" {
		t.Errorf("環境変数のホストが反映されていません: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("環境変数のポートが反映されていません: got %d", cfg.Server.Port)
	}
	if cfg.Static.Root != "/srv/www" {
		t.Errorf("環境変数のルートが反映されていません: got %s", cfg.Static.Root)
	}
	if cfg.Pool.Size != 8 {
		t.Errorf("環境変数のワーカー数が反映されていません: got %d", cfg.Pool.Size)
	}
	if !cfg.Admin.Enabled || cfg.Admin.Port != 9998 {
		t.Errorf("環境変数の管理API設定が反映されていません: %+v", cfg.Admin)
	}
}

// TestAdminEnabledEnv は ADMIN_ENABLED の真偽値の解釈をテストする
func TestAdminEnabledEnv(t *testing.T) {
	testCases := []struct {
		value  string
		expect bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"On", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"off", false},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("ADMIN_ENABLED", tc.value)

			cfg, err := Load("")
			if err != nil {
				t.Fatalf("設定の読み込みに失敗しました: %v", err)
			}
			if cfg.Admin.Enabled != tc.expect {
				t.Errorf("Got %v, want %v", cfg.Admin.Enabled, tc.expect)
			}
		})
	}

	// 解釈できない値はデフォルトのまま
	t.Setenv("ADMIN_ENABLED", "maybe")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}
	if cfg.Admin.Enabled != Default().Admin.Enabled {
		t.Errorf("Got %v, want default %v", cfg.Admin.Enabled, Default().Admin.Enabled)
	}
}

// TestLoadFile はYAMLファイルからの読み込みをテストする
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  host: 127.0.0.1
  port: 8181
static:
  root: ./site
  whitelist:
    - /index.html
    - /about.html
  template_path: /about.html
  placeholder: "{now}"
pool:
  size: 4
log:
  level: debug
  pretty: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if cfg.ServerAddress() != "127.0.0.1:8181" {
		t.Errorf("アドレスが反映されていません: %s", cfg.ServerAddress())
	}
	if strings.Join(cfg.Static.Whitelist, ",") != "/index.html,/about.html" {
		t.Errorf("ホワイトリストが反映されていません: %v", cfg.Static.Whitelist)
	}
	if cfg.Static.TemplatePath != "/about.html" || cfg.Static.Placeholder != "{now}" {
		t.Errorf("テンプレート設定が反映されていません: %+v", cfg.Static)
	}
	if cfg.Pool.Size != 4 {
		t.Errorf("ワーカー数が反映されていません: %d", cfg.Pool.Size)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Pretty {
		t.Errorf("ログ設定が反映されていません: %+v", cfg.Log)
	}
	// ファイルに記載のない項目はデフォルトのまま
	if cfg.Admin.Port != 9090 {
		t.Errorf("管理APIのデフォルトが失われています: %d", cfg.Admin.Port)
	}
}

// TestLoadFile_Errors は読み込み失敗をテストする
func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("存在しないファイルでエラーが発生しませんでした")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("server: [unterminated"), 0o644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
	}
	if _, err := Load(broken); err == nil {
		t.Error("不正なYAMLでエラーが発生しませんでした")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("pool:\n  size: -1\n"), 0o644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("検証エラーが発生しませんでした")
	}
}
