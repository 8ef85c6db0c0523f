package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedRequest はリクエストラインが不正な場合に返される
var ErrMalformedRequest = errors.New("不正なリクエストライン")

// Request はリクエストラインを分解した結果
type Request struct {
	Method  string // メソッド（検証しない）
	Path    string // 要求されたパス
	Version string // プロトコルバージョン（検証しない）
}

// ReadRequest は入力から1行だけ読み込み、リクエストとして解釈する
//
// 行が存在しない場合（即座にEOF）は ErrMalformedRequest を返す。
// それ以外の読み込みエラーはI/O障害としてラップして返す。
func ReadRequest(r *bufio.Reader) (*Request, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("リクエストラインの読み込みに失敗: %w", err)
		}
		// 改行なしで閉じられた最終行はそのまま扱う
		if line == "" {
			return nil, ErrMalformedRequest
		}
	}

	return ParseRequestLine(strings.TrimRight(line, "\r\n"))
}

// ParseRequestLine はリクエストラインを空白で分割する
func ParseRequestLine(line string) (*Request, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nil, ErrMalformedRequest
	}

	return &Request{
		Method:  fields[0],
		Path:    fields[1],
		Version: fields[2],
	}, nil
}
