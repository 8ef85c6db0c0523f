package server

import (
	"strings"
	"time"
)

// timestampLayout はゾーンを含まないISO-8601形式（小数秒の末尾ゼロは省略）
const timestampLayout = "2006-01-02T15:04:05.999999999"

// FormatTimestamp はテンプレートに埋め込む現在時刻の文字列を返す
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// RenderTemplate はプレースホルダーをすべてタイムスタンプに置き換える
func RenderTemplate(text, placeholder string, now time.Time) string {
	if placeholder == "" {
		return text
	}
	return strings.ReplaceAll(text, placeholder, FormatTimestamp(now))
}
