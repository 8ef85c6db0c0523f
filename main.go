package main

import (
	"context"
	"os"

	"tinyserve/internal/config"
	"tinyserve/internal/logging"
	"tinyserve/internal/server"
)

func main() {
	// 設定を読み込む
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logger := logging.New(logging.Config{Level: "info"}, os.Stderr)
		logger.Fatal().Err(err).Msg("設定の読み込みに失敗しました")
	}

	logger := logging.New(cfg.Log, os.Stderr)

	// サーバーを作成
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("サーバーの作成に失敗しました")
	}

	// サーバーを起動
	if err := srv.Start(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("サーバーが異常終了しました")
	}
}
