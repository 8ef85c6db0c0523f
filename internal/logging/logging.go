// Package logging はzerologロガーの生成を担う
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Config はログ出力の設定
type Config struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"` // ログレベル
	Pretty bool   `yaml:"pretty"`                                       // 人間向けのコンソール出力
}

// New は設定に従ってロガーを作成する
func New(cfg Config, w io.Writer) zerolog.Logger {
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
