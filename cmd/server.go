// Package main はtinyserveサーバーコマンドの実装です
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tinyserve/internal/config"
	"tinyserve/internal/logging"
	"tinyserve/internal/server"
)

func main() {
	// コマンドラインオプション
	var (
		configPath = flag.String("config", "", "設定ファイル (YAML)")
		host       = flag.String("host", "", "サーバーのホスト (デフォルト: 0.0.0.0)")
		port       = flag.Int("port", 0, "サーバーのポート (デフォルト: 8080)")
		root       = flag.String("root", "", "配信するディレクトリ (デフォルト: ./public)")
		poolSize   = flag.Int("pool", 0, "ワーカー数 (デフォルト: 64)")
		help       = flag.Bool("help", false, "ヘルプを表示")
	)

	flag.Parse()

	// ヘルプ表示
	if *help {
		fmt.Println("tinyserve")
		fmt.Println()
		fmt.Println("使用方法:")
		fmt.Println("  server [オプション]")
		fmt.Println()
		fmt.Println("オプション:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	bootLogger := logging.New(logging.Config{Level: "info"}, os.Stderr)

	// 設定を読み込む
	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("設定の読み込みに失敗しました")
	}

	// コマンドラインオプションで設定を上書き
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *root != "" {
		cfg.Static.Root = *root
	}
	if *poolSize != 0 {
		cfg.Pool.Size = *poolSize
	}
	if err := cfg.Validate(); err != nil {
		bootLogger.Fatal().Err(err).Msg("オプションが不正です")
	}

	logger := logging.New(cfg.Log, os.Stderr)

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("サーバーの作成に失敗しました")
	}

	// サーバーを起動
	logger.Info().Str("addr", cfg.ServerAddress()).Msg("tinyserve を起動します")
	if err := srv.Start(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("サーバーが異常終了しました")
	}
}
